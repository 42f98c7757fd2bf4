// Package calcsym extends a tinyfont font with the calculator keypad symbols
// that the stock Adafruit-style fonts lack: π √ ± ⌫.
package calcsym

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font draws symbol runes from its own 6x8 bitmaps, scaled and centered in a
// digit-wide cell, and delegates every other rune to Base.
//
// Concurrent access is not safe due to internal glyph reuse.
type Font struct {
	Base  tinyfont.Fonter
	Scale int

	g glyph
}

// New returns a Font over base. Scale values below 1 are treated as 1.
func New(base tinyfont.Fonter, scale int) *Font {
	if scale < 1 {
		scale = 1
	}
	return &Font{Base: base, Scale: scale}
}

func (f *Font) GetYAdvance() uint8 { return f.Base.GetYAdvance() }

func (f *Font) GetGlyph(r rune) tinyfont.Glypher {
	idx := symbolIndex(r)
	if idx < 0 {
		return f.Base.GetGlyph(r)
	}
	f.g = glyph{r: r, rows: symbols[idx].rows, scale: f.Scale, cell: int(f.Base.GetGlyph('0').Info().XAdvance)}
	return &f.g
}

// Has reports whether r is drawn from the symbol table.
func Has(r rune) bool { return symbolIndex(r) >= 0 }

type glyph struct {
	r     rune
	rows  [8]byte
	scale int
	cell  int
}

func (g *glyph) pad() int {
	w := 6 * g.scale
	if g.cell <= w {
		return 0
	}
	return (g.cell - w) / 2
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	s := int16(g.scale)
	left := x + int16(g.pad())
	for row := 0; row < 8; row++ {
		b := g.rows[row]
		// Bits are stored as 0b00xxxxxx (bit5 = leftmost pixel).
		for col := 0; col < 6; col++ {
			if b&(0x20>>col) == 0 {
				continue
			}
			px := left + int16(col)*s
			py := y - int16(8-row)*s + 1
			for dy := int16(0); dy < s; dy++ {
				for dx := int16(0); dx < s; dx++ {
					display.SetPixel(px+dx, py+dy, c)
				}
			}
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	w := 6 * g.scale
	adv := g.cell
	if adv < w {
		adv = w
	}
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    uint8(w),
		Height:   uint8(8 * g.scale),
		XAdvance: uint8(adv),
		XOffset:  int8(g.pad()),
		YOffset:  int8(1 - 8*g.scale),
	}
}

type symbol struct {
	r    rune
	rows [8]byte
}

var symbols = []symbol{
	{'π', [8]byte{0x00, 0x3F, 0x12, 0x12, 0x12, 0x12, 0x12, 0x00}},
	{'√', [8]byte{0x07, 0x04, 0x04, 0x04, 0x24, 0x14, 0x0C, 0x04}},
	{'±', [8]byte{0x00, 0x08, 0x08, 0x3E, 0x08, 0x08, 0x00, 0x3E}},
	{'⌫', [8]byte{0x00, 0x0F, 0x11, 0x2B, 0x25, 0x2B, 0x11, 0x0F}},
}

func symbolIndex(r rune) int {
	for i := range symbols {
		if symbols[i].r == r {
			return i
		}
	}
	return -1
}
