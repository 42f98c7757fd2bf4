package calcsym

import (
	"image/color"
	"testing"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

type pixelSet map[[2]int16]bool

func (p pixelSet) Size() (x, y int16)                { return 100, 100 }
func (p pixelSet) SetPixel(x, y int16, c color.RGBA) { p[[2]int16{x, y}] = true }
func (p pixelSet) Display() error                    { return nil }

var _ drivers.Displayer = pixelSet{}

// boxFont is a base font whose every glyph is a 10px-wide, 12px-tall box.
type boxFont struct{ g boxGlyph }

type boxGlyph struct{ r rune }

func (g *boxGlyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	display.SetPixel(x, y, c)
}

func (g *boxGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{Rune: g.r, Width: 8, Height: 12, XAdvance: 10, YOffset: -10}
}

func (f *boxFont) GetGlyph(r rune) tinyfont.Glypher { f.g.r = r; return &f.g }
func (f *boxFont) GetYAdvance() uint8               { return 14 }

func TestSymbolGlyphScaled(t *testing.T) {
	f := New(&boxFont{}, 2)
	g := f.GetGlyph('±')
	info := g.Info()
	if info.Width != 12 || info.Height != 16 || info.XAdvance != 12 {
		t.Fatalf("unexpected info: %+v", info)
	}

	px := pixelSet{}
	g.Draw(px, 0, 20, color.RGBA{A: 255})

	bits := 0
	for _, row := range symbols[symbolIndex('±')].rows {
		for col := 0; col < 6; col++ {
			if row&(0x20>>col) != 0 {
				bits++
			}
		}
	}
	if len(px) != bits*4 {
		t.Fatalf("drew %d pixels, want %d", len(px), bits*4)
	}
	for p := range px {
		if p[1] > 20 || p[1] < 20-16+1 {
			t.Fatalf("pixel %v outside the glyph rows", p)
		}
	}
}

func TestSymbolCenteredInDigitCell(t *testing.T) {
	f := New(&boxFont{}, 1)
	info := f.GetGlyph('π').Info()
	if info.XAdvance != 10 || info.XOffset != 2 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestOtherRunesDelegate(t *testing.T) {
	f := New(&boxFont{}, 3)
	if info := f.GetGlyph('7').Info(); info.Rune != '7' || info.XAdvance != 10 {
		t.Fatalf("expected base glyph, got %+v", info)
	}
	if f.GetYAdvance() != 14 {
		t.Fatal("expected base YAdvance")
	}
	if !Has('⌫') || Has('x') {
		t.Fatal("unexpected symbol table")
	}
}

func TestLineMetrics(t *testing.T) {
	h, off, err := LineMetrics(&boxFont{})
	if err != nil {
		t.Fatalf("LineMetrics: %v", err)
	}
	if h != 14 || off != 10 {
		t.Fatalf("got height=%d offset=%d", h, off)
	}
	if _, _, err := LineMetrics(nil); err == nil {
		t.Fatal("expected error for nil font")
	}
}
