//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// poll reports left mouse button and first-touch transitions. Coordinates are
// already in framebuffer pixels because Layout returns the framebuffer size.
func (p *hostPointer) poll() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.down = true
		p.inject(PointerEvent{X: x, Y: y, Press: true})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && p.down {
		x, y := ebiten.CursorPosition()
		p.down = false
		p.inject(PointerEvent{X: x, Y: y})
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		p.inject(PointerEvent{X: x, Y: y, Press: true})
		p.inject(PointerEvent{X: x, Y: y})
	}
}
