package calculator

import (
	"image/color"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/fonts/calcsym"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorBG        = color.RGBA{R: 0x12, G: 0x12, B: 0x14, A: 0xFF}
	colorFG        = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	colorDim       = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	colorError     = color.RGBA{R: 0xFF, G: 0x60, B: 0x60, A: 0xFF}
	colorDisplayBG = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	colorDigit     = color.RGBA{R: 0x3A, G: 0x3A, B: 0x3E, A: 0xFF}
	colorOperator  = color.RGBA{R: 0x55, G: 0x4A, B: 0x2A, A: 0xFF}
	colorFunction  = color.RGBA{R: 0x2A, G: 0x3C, B: 0x55, A: 0xFF}
	colorControl   = color.RGBA{R: 0x52, G: 0x2E, B: 0x2E, A: 0xFF}
	colorEquals    = color.RGBA{R: 0x2E, G: 0x6B, B: 0x3A, A: 0xFF}
	colorTab       = color.RGBA{R: 0x26, G: 0x26, B: 0x2A, A: 0xFF}
	colorTabOn     = color.RGBA{R: 0x3C, G: 0x5C, B: 0x8A, A: 0xFF}
	colorPressed   = color.RGBA{R: 0x80, G: 0x80, B: 0x88, A: 0xFF}
	colorBorder    = color.RGBA{R: 0x55, G: 0x55, B: 0x5A, A: 0xFF}
)

type fbDisplay struct {
	fb hal.Framebuffer
}

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *fbDisplay) SetScroll(line int16) {}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// fonts holds the per-task font instances. calcsym fonts reuse one glyph, so
// they are not shared between tasks.
type fonts struct {
	display tinyfont.Fonter
	button  tinyfont.Fonter
	small   tinyfont.Fonter
}

func newFonts() fonts {
	return fonts{
		display: calcsym.New(&freemono.Bold18pt7b, 3),
		button:  calcsym.New(&freemono.Bold9pt7b, 2),
		small:   calcsym.New(&proggy.TinySZ8pt7b, 1),
	}
}

// ascent is the height of a digit above the baseline.
func ascent(f tinyfont.Fonter) int16 {
	return -int16(f.GetGlyph('0').Info().YOffset)
}

func textWidth(f tinyfont.Fonter, s string) int16 {
	_, w := tinyfont.LineWidth(f, s)
	return int16(w)
}

// fitTail drops leading runes until s fits in width. The end of a long
// expression is the part being edited.
func fitTail(f tinyfont.Fonter, s string, width int16) string {
	rs := []rune(s)
	for len(rs) > 1 && textWidth(f, string(rs)) > width {
		rs = rs[1:]
	}
	return string(rs)
}

func (t *Task) render() {
	if t.fb == nil || t.d == nil {
		return
	}
	w, h := int16(t.fb.Width()), int16(t.fb.Height())
	if w <= 0 || h <= 0 {
		return
	}
	t.screen = layoutScreen(t.st, w, h)

	_ = t.d.FillRectangle(0, 0, w, h, colorBG)
	t.renderDisplay()
	for _, b := range t.screen.buttons {
		if t.st.HistoryVisible && b.kind != buttonTab {
			continue
		}
		t.renderButton(b, b.label == t.pressed)
	}
	if t.st.HistoryVisible {
		t.panel.render(t.screen.panel, t.st.HistoryLines())
	}

	_ = t.fb.Present()
}

func (t *Task) renderDisplay() {
	r := t.screen.display
	_ = t.d.FillRectangle(r.x, r.y, r.w, r.h, colorDisplayBG)
	_ = t.d.FillRectangle(t.screen.annot.x, t.screen.annot.y, t.screen.annot.w, t.screen.annot.h, colorDisplayBG)

	pad := int16(margin)
	if t.st.Annotation != "" {
		a := t.screen.annot
		c := colorDim
		if t.st.Phase() == calc.PhaseError {
			c = colorError
		}
		s := fitTail(t.fonts.small, t.st.Annotation, a.w-2*pad)
		x := a.x + a.w - pad - textWidth(t.fonts.small, s)
		y := a.y + (a.h+ascent(t.fonts.small))/2
		tinyfont.WriteLine(t.d, t.fonts.small, x, y, s, c)
	}

	c := colorFG
	if t.st.Phase() == calc.PhaseError {
		c = colorError
	}
	s := fitTail(t.fonts.display, t.st.Buffer, r.w-2*pad)
	x := r.x + r.w - pad - textWidth(t.fonts.display, s)
	y := r.y + (r.h+ascent(t.fonts.display))/2
	tinyfont.WriteLine(t.d, t.fonts.display, x, y, s, c)
}

func (t *Task) renderButton(b button, pressed bool) {
	bg := buttonColor(b)
	if pressed {
		bg = colorPressed
	}
	_ = t.d.FillRectangle(b.r.x, b.r.y, b.r.w, b.r.h, bg)

	f := t.fonts.button
	if b.kind == buttonTab {
		f = t.fonts.small
	}
	tw := textWidth(f, b.label)
	x := b.r.x + (b.r.w-tw)/2
	y := b.r.y + (b.r.h+ascent(f))/2
	tinyfont.WriteLine(t.d, f, x, y, b.label, colorFG)
}

func buttonColor(b button) color.RGBA {
	switch b.kind {
	case buttonOperator:
		return colorOperator
	case buttonFunction:
		return colorFunction
	case buttonControl:
		return colorControl
	case buttonEquals:
		return colorEquals
	case buttonTab:
		if b.active {
			return colorTabOn
		}
		return colorTab
	default:
		return colorDigit
	}
}
