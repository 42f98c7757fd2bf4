package proto

import "encoding/binary"

// PointerButton identifies a pointer transition.
type PointerButton uint8

const (
	PointerDown PointerButton = iota + 1
	PointerUp
)

func (b PointerButton) String() string {
	switch b {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - i16: x (framebuffer pixels)
//   - i16: y (framebuffer pixels)
//   - u8: button transition
func PointerPayload(x, y int16, b PointerButton) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(x))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(y))
	buf[4] = byte(b)
	return buf
}

func DecodePointerPayload(b []byte) (x, y int16, btn PointerButton, ok bool) {
	if len(b) != 5 {
		return 0, 0, 0, false
	}
	btn = PointerButton(b[4])
	if btn != PointerDown && btn != PointerUp {
		return 0, 0, 0, false
	}
	x = int16(binary.LittleEndian.Uint16(b[0:2]))
	y = int16(binary.LittleEndian.Uint16(b[2:4]))
	return x, y, btn, true
}
