package calc

import (
	"fmt"
	"unicode/utf8"
)

// Effects reports what a transition did beyond the new State.
type Effects struct {
	// Entry is the history entry recorded by Equals.
	Entry *Entry
	// Err is the failure that put the display into the error state.
	Err error
	// Ignored is a failure swallowed without any visible change (M+/M- on a non-numeric buffer).
	Ignored error
}

// Apply runs one command against s and returns the resulting state.
//
// Apply is pure: s is not modified, and the same inputs always produce the same outputs.
func Apply(s State, c Command) (next State, fx Effects) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %s: %v", ErrInternal, c, r)
			next, fx = s.fail(err, ""), Effects{Err: err}
		}
	}()

	if c.Kind != CmdToggleHistory {
		s.HistoryVisible = false
	}

	switch c.Kind {
	case CmdDigit:
		if c.Rune < '0' || c.Rune > '9' {
			return s.invalid(c)
		}
		return s.insert(string(c.Rune)), fx
	case CmdDecimal:
		return s.insert("."), fx
	case CmdSymbol:
		if !isSymbol(c.Rune) {
			return s.invalid(c)
		}
		return s.insert(string(c.Rune)), fx
	case CmdOperator:
		if !isOperator(c.Rune) {
			return s.invalid(c)
		}
		return s.operator(c.Rune), fx
	case CmdClear:
		s.Buffer = "0"
		s.Annotation = ""
		return s, fx
	case CmdBackspace:
		return s.backspace(), fx
	case CmdToggleSign:
		v, err := ParseNumeric(s.Buffer)
		if err != nil {
			return s.fail(err, ""), Effects{Err: err}
		}
		s.Buffer = FormatNumber(-v)
		return s, fx
	case CmdMemory:
		return s.memory(c.Mem)
	case CmdScientific:
		return s.scientific(c.Func)
	case CmdEquals:
		return s.equals()
	case CmdToggleHistory:
		if s.HistoryAvailable {
			s.HistoryVisible = !s.HistoryVisible
		}
		return s, fx
	case CmdSetMode:
		if c.Mode != ModeStandard && c.Mode != ModeScientific {
			return s.invalid(c)
		}
		s.Mode = c.Mode
		return s, fx
	}
	return s.invalid(c)
}

func (s State) invalid(c Command) (State, Effects) {
	err := fmt.Errorf("%w: unsupported command %s", ErrInternal, c)
	return s.fail(err, ""), Effects{Err: err}
}

func (s State) fail(err error, context string) State {
	s.Buffer = ErrorMarker
	s.Annotation = ErrorKind(err)
	if context != "" {
		s.Annotation = context + ": " + s.Annotation
	}
	return s
}

// fresh returns the buffer text new input is appended to.
func (s State) fresh() string {
	if s.Phase() == PhaseBuilding {
		return s.Buffer
	}
	return ""
}

func (s State) insert(text string) State {
	if s.Phase() == PhaseError {
		s.Annotation = ""
	}
	s.Buffer = s.fresh() + text
	return s
}

func (s State) operator(op rune) State {
	existing := s.Buffer
	switch s.Phase() {
	case PhaseZero:
		existing = ""
	case PhaseError:
		existing = "0"
	}
	if last, sz := utf8.DecodeLastRuneInString(existing); isOperator(last) {
		if last == op {
			return s
		}
		existing = existing[:len(existing)-sz]
	}
	s.Buffer = existing + string(op)
	s.Annotation = s.Buffer
	return s
}

func (s State) backspace() State {
	if s.Phase() == PhaseError {
		s.Buffer = "0"
		s.Annotation = ""
		return s
	}
	_, sz := utf8.DecodeLastRuneInString(s.Buffer)
	s.Buffer = s.Buffer[:len(s.Buffer)-sz]
	if s.Buffer == "" {
		s.Buffer = "0"
	}
	return s
}

func (s State) memory(op MemoryOp) (State, Effects) {
	switch op {
	case MemClear:
		s.Memory = 0
	case MemRecall:
		s.Buffer = FormatNumber(s.Memory)
	case MemAdd, MemSubtract:
		v, err := ParseNumeric(s.Buffer)
		if err != nil {
			return s, Effects{Ignored: fmt.Errorf("%s: %w", op, err)}
		}
		if op == MemSubtract {
			v = -v
		}
		s.Memory += v
	default:
		err := fmt.Errorf("%w: memory op %d", ErrInternal, op)
		return s.fail(err, ""), Effects{Err: err}
	}
	s.Annotation = op.String()
	return s, Effects{}
}

func (s State) scientific(f Func) (State, Effects) {
	label := f.String() + "(" + s.Buffer + ")"
	x := 0.0
	if f.UsesInput() {
		v, err := ParseNumeric(s.Buffer)
		if err != nil {
			return s.fail(err, label), Effects{Err: err}
		}
		x = v
	}
	r, err := ApplyFunc(f, x)
	if err != nil {
		return s.fail(err, label), Effects{Err: err}
	}
	s.Buffer = FormatNumber(r)
	s.Annotation = label
	return s, Effects{}
}

func (s State) equals() (State, Effects) {
	expr := s.Buffer
	result, err := EvaluateText(expr)
	e := Entry{Expr: expr, Result: result, Err: err}
	s.History = s.History.Append(e)
	s.HistoryAvailable = true
	if err != nil {
		return s.fail(err, ""), Effects{Entry: &e, Err: err}
	}
	s.Buffer = result
	s.Annotation = ""
	return s, Effects{Entry: &e}
}
