package calculator

import (
	"image/color"
	"strings"

	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/fonts/calcsym"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"
)

// subDisplay exposes a rectangle of the framebuffer as a display with its own
// origin, so a tinyterm terminal can be confined to the history panel.
type subDisplay struct {
	base *fbDisplay
	r    rect
}

func (d *subDisplay) Size() (x, y int16) { return d.r.w, d.r.h }

func (d *subDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.r.w || y >= d.r.h {
		return
	}
	d.base.SetPixel(d.r.x+x, d.r.y+y, c)
}

// Display is a no-op: the task presents the whole frame once.
func (d *subDisplay) Display() error { return nil }

func (d *subDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0, y0 := max16(x, 0), max16(y, 0)
	x1, y1 := min16(x+width, d.r.w), min16(y+height, d.r.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	return d.base.FillRectangle(d.r.x+x0, d.r.y+y0, x1-x0, y1-y0, c)
}

func (d *subDisplay) SetScroll(line int16) {}

func (d *subDisplay) SetRotation(rotation drivers.Rotation) error { return nil }

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

// historyPanel lists recent evaluations, most recent first.
type historyPanel struct {
	d    *fbDisplay
	font tinyfont.Fonter

	fontHeight int16
	fontOffset int16
	charWidth  int16

	term *tinyterm.Terminal
	sub  *subDisplay
}

func newHistoryPanel(d *fbDisplay, font tinyfont.Fonter) *historyPanel {
	p := &historyPanel{d: d, font: font, fontHeight: 10, fontOffset: 6}
	if h, off, err := calcsym.LineMetrics(font); err == nil {
		p.fontHeight, p.fontOffset = h, off
	}
	_, cw := tinyfont.LineWidth(font, "0")
	p.charWidth = int16(cw)
	p.sub = &subDisplay{base: d}
	p.term = tinyterm.NewTerminal(p.sub)
	return p
}

func (p *historyPanel) render(r rect, lines []string) {
	_ = p.d.FillRectangle(r.x, r.y, r.w, r.h, colorBorder)
	inner := rect{x: r.x + 1, y: r.y + 1, w: r.w - 2, h: r.h - 2}
	_ = p.d.FillRectangle(inner.x, inner.y, inner.w, inner.h, colorDisplayBG)

	title := rect{x: inner.x + 4, y: inner.y + 2, w: inner.w - 8, h: p.fontHeight + 4}
	tinyfont.WriteLine(p.d, p.font, title.x, title.y+p.fontOffset, panelTitle, colorDim)

	p.sub.r = rect{x: title.x, y: title.y + title.h, w: title.w, h: inner.y + inner.h - (title.y + title.h) - 2}
	if p.sub.r.h < p.fontHeight || p.charWidth <= 0 {
		return
	}
	p.term.Configure(&tinyterm.Config{
		Font:              p.font,
		FontHeight:        p.fontHeight,
		FontOffset:        p.fontOffset,
		UseSoftwareScroll: true,
	})
	rows := p.rows(lines)
	_, _ = p.term.Write([]byte(p.text(rows)))
	p.drawErrors(rows)
}

// historyRow is one panel row, already clipped to the panel width.
type historyRow struct {
	text   string
	failed bool
}

// rows clips lines to the panel: at most one line per row, each cut to the
// column count.
func (p *historyPanel) rows(lines []string) []historyRow {
	cols := int(p.sub.r.w / p.charWidth)
	n := int(p.sub.r.h / p.fontHeight)
	if len(lines) > n {
		lines = lines[:n]
	}
	out := make([]historyRow, 0, len(lines))
	for _, line := range lines {
		rs := []rune(line)
		if len(rs) > cols {
			rs = rs[:cols]
		}
		out = append(out, historyRow{
			text:   string(rs),
			failed: strings.HasSuffix(line, " = "+calc.ErrorMarker),
		})
	}
	return out
}

// text is what the terminal prints. Failed rows stay blank; drawErrors paints
// them. The final row has no newline so the terminal never scrolls.
func (p *historyPanel) text(rows []historyRow) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\r\n")
		}
		if !row.failed {
			b.WriteString(row.text)
		}
	}
	return b.String()
}

// drawErrors paints failed rows in the error color at the terminal's row
// positions.
func (p *historyPanel) drawErrors(rows []historyRow) {
	for i, row := range rows {
		if !row.failed {
			continue
		}
		y := int16(i)*p.fontHeight + p.fontOffset
		tinyfont.WriteLine(p.sub, p.font, 0, y, row.text, colorError)
	}
}
