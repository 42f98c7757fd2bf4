package calculator

import "sparkcalc/sparkos/calc"

const (
	margin     = 6
	gap        = 4
	topBarH    = 28
	annotH     = 16
	displayH   = 48
	gridCols   = 4
	panelTitle = "History"
)

// Keypad rows, top to bottom.
var (
	scientificRows = [][]string{
		{"sin", "cos", "tan", "π"},
		{"log", "ln", "√", "^"},
		{"(", ")", "!", "e"},
		{"deg", "rad", "abs", "exp"},
	}
	standardRows = [][]string{
		{"MC", "MR", "M+", "M-"},
		{"C", "⌫", "%", "/"},
		{"7", "8", "9", "*"},
		{"4", "5", "6", "-"},
		{"1", "2", "3", "+"},
		{"±", "0", ".", "="},
	}
)

type buttonKind uint8

const (
	buttonDigit buttonKind = iota
	buttonOperator
	buttonFunction
	buttonControl
	buttonEquals
	buttonTab
)

type rect struct {
	x, y, w, h int16
}

func (r rect) contains(x, y int16) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type button struct {
	label  string
	cmd    calc.Command
	kind   buttonKind
	r      rect
	active bool
}

// screen is the geometry of one frame.
type screen struct {
	annot   rect
	display rect
	grid    rect
	panel   rect
	buttons []button
}

// layoutScreen places the top bar, the display and the keypad for s on a
// w x h framebuffer.
func layoutScreen(s calc.State, w, h int16) screen {
	var sc screen

	tabW := (w - 2*margin - 2*gap) / 3
	tabs := []struct {
		label string
		cmd   calc.Command
		on    bool
		show  bool
	}{
		{"Standard", calc.SetMode(calc.ModeStandard), s.Mode == calc.ModeStandard, true},
		{"Scientific", calc.SetMode(calc.ModeScientific), s.Mode == calc.ModeScientific, true},
		{"Hist", calc.ToggleHistory(), s.HistoryVisible, s.HistoryAvailable},
	}
	for i, tb := range tabs {
		if !tb.show {
			continue
		}
		sc.buttons = append(sc.buttons, button{
			label:  tb.label,
			cmd:    tb.cmd,
			kind:   buttonTab,
			r:      rect{x: margin + int16(i)*(tabW+gap), y: 2, w: tabW, h: topBarH - 4},
			active: tb.on,
		})
	}

	sc.annot = rect{x: margin, y: topBarH + 2, w: w - 2*margin, h: annotH}
	sc.display = rect{x: margin, y: sc.annot.y + annotH, w: w - 2*margin, h: displayH}

	gridY := sc.display.y + displayH + gap
	sc.grid = rect{x: margin, y: gridY, w: w - 2*margin, h: h - gridY - margin}
	sc.panel = sc.grid

	rows := standardRows
	if s.Mode == calc.ModeScientific {
		rows = append(append([][]string{}, scientificRows...), standardRows...)
	}
	cellW := (sc.grid.w - gap*(gridCols-1)) / gridCols
	cellH := (sc.grid.h - gap*int16(len(rows)-1)) / int16(len(rows))
	for ri, row := range rows {
		for ci, label := range row {
			cmd, ok := calc.ParseLabel(label)
			if !ok {
				continue
			}
			sc.buttons = append(sc.buttons, button{
				label: label,
				cmd:   cmd,
				kind:  kindOf(cmd),
				r: rect{
					x: sc.grid.x + int16(ci)*(cellW+gap),
					y: sc.grid.y + int16(ri)*(cellH+gap),
					w: cellW,
					h: cellH,
				},
			})
		}
	}
	return sc
}

func kindOf(c calc.Command) buttonKind {
	switch c.Kind {
	case calc.CmdDigit, calc.CmdDecimal, calc.CmdToggleSign:
		return buttonDigit
	case calc.CmdOperator:
		return buttonOperator
	case calc.CmdEquals:
		return buttonEquals
	case calc.CmdScientific, calc.CmdSymbol:
		return buttonFunction
	default:
		return buttonControl
	}
}

// hitTest returns the index of the button under (x, y), or -1. While the
// history panel is open only the top bar is live.
func (sc screen) hitTest(x, y int16, panelOpen bool) int {
	if panelOpen && sc.panel.contains(x, y) {
		return -1
	}
	for i, b := range sc.buttons {
		if b.r.contains(x, y) {
			return i
		}
	}
	return -1
}
