package calculator

import (
	"unicode/utf8"

	"sparkcalc/sparkos/calc"
)

type keyKind uint8

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyDelete
	keyEsc
	keyUp
	keyDown
	keyOther
)

type key struct {
	kind keyKind
	r    rune
}

// nextKey decodes one key from a VT100 byte stream. ok is false when b holds
// an incomplete sequence that needs more bytes.
func nextKey(b []byte) (consumed int, k key, ok bool) {
	if len(b) == 0 {
		return 0, key{}, false
	}

	if b[0] == 0x1b {
		return parseEscapeKey(b)
	}

	switch b[0] {
	case '\r', '\n':
		return 1, key{kind: keyEnter}, true
	case 0x7f, 0x08:
		return 1, key{kind: keyBackspace}, true
	}

	if b[0] < 0x20 {
		return 1, key{kind: keyOther}, true
	}
	if !utf8.FullRune(b) {
		return 0, key{}, false
	}
	r, sz := utf8.DecodeRune(b)
	if r == utf8.RuneError && sz == 1 {
		return 1, key{kind: keyOther}, true
	}
	return sz, key{kind: keyRune, r: r}, true
}

func parseEscapeKey(b []byte) (consumed int, k key, ok bool) {
	if len(b) < 2 || b[1] != '[' {
		return 1, key{kind: keyEsc}, true
	}
	if len(b) < 3 {
		return 0, key{}, false
	}

	switch b[2] {
	case 'A':
		return 3, key{kind: keyUp}, true
	case 'B':
		return 3, key{kind: keyDown}, true
	case 'C', 'D', 'H', 'F':
		return 3, key{kind: keyOther}, true
	}

	// CSI <digits> ~
	i := 2
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i == len(b) {
		return 0, key{}, false
	}
	if i == 2 || b[i] != '~' {
		return 1, key{kind: keyEsc}, true
	}
	if string(b[2:i]) == "3" {
		return i + 1, key{kind: keyDelete}, true
	}
	return i + 1, key{kind: keyOther}, true
}

// commandForKey maps a typed key to its calculator command. Only the keys the
// keypad also offers are mapped.
func commandForKey(k key) (calc.Command, bool) {
	switch k.kind {
	case keyEnter:
		return calc.Equals(), true
	case keyBackspace:
		return calc.Backspace(), true
	case keyRune:
	default:
		return calc.Command{}, false
	}

	switch r := k.r; {
	case r >= '0' && r <= '9':
		return calc.Digit(r), true
	case r == '.' || r == ',':
		return calc.Decimal(), true
	case r == '+' || r == '-' || r == '*' || r == '/':
		return calc.Operator(r), true
	case r == '%' || r == '(' || r == ')':
		return calc.Symbol(r), true
	}
	return calc.Command{}, false
}
