package calc

import (
	"errors"
	"math"
	"testing"
)

func run(t *testing.T, s State, cmds ...Command) (State, Effects) {
	t.Helper()
	var fx Effects
	for _, c := range cmds {
		s, fx = Apply(s, c)
		if s.Buffer == "" {
			t.Fatalf("Apply(%s) left an empty buffer", c)
		}
	}
	return s, fx
}

func labels(t *testing.T, ls ...string) []Command {
	t.Helper()
	out := make([]Command, 0, len(ls))
	for _, l := range ls {
		c, ok := ParseLabel(l)
		if !ok {
			t.Fatalf("ParseLabel(%q) ok=false", l)
		}
		out = append(out, c)
	}
	return out
}

func TestApply_DuplicateOperatorSuppressed(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), labels(t, "5", "+", "+")...)
	if s.Buffer != "5+" || s.Annotation != "5+" {
		t.Fatalf("buffer=%q annotation=%q, want 5+ / 5+", s.Buffer, s.Annotation)
	}

	s, _ = run(t, s, Operator('*'))
	if s.Buffer != "5*" || s.Annotation != "5*" {
		t.Fatalf("buffer=%q annotation=%q, want 5* / 5*", s.Buffer, s.Annotation)
	}
}

func TestApply_LeadingZeroReplaced(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), labels(t, "0", "7")...)
	if s.Buffer != "7" {
		t.Fatalf("buffer=%q, want 7", s.Buffer)
	}
	s, _ = run(t, NewState(ModeStandard), labels(t, "(", "π")...)
	if s.Buffer != "(π" {
		t.Fatalf("buffer=%q, want (π", s.Buffer)
	}
	s, _ = run(t, NewState(ModeStandard), labels(t, "-", "5")...)
	if s.Buffer != "-5" || s.Annotation != "-" {
		t.Fatalf("buffer=%q annotation=%q, want -5 / -", s.Buffer, s.Annotation)
	}
}

func TestApply_OperatorOnZeroStartsExpression(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), labels(t, "-", "7", "%", "3", "=")...)
	if s.Buffer != "2" {
		t.Fatalf("buffer=%q, want 2", s.Buffer)
	}
	if lines := s.HistoryLines(); len(lines) != 1 || lines[0] != "-7%3 = 2" {
		t.Fatalf("history=%q, want [-7%%3 = 2]", lines)
	}

	// After an error the operator still starts from zero.
	s, _ = run(t, NewState(ModeStandard), labels(t, "1", "/", "0", "=", "+", "4")...)
	if s.Buffer != "0+4" {
		t.Fatalf("buffer=%q, want 0+4", s.Buffer)
	}
}

func TestApply_BackspaceNeverEmpty(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), Digit('5'), Backspace())
	if s.Buffer != "0" {
		t.Fatalf("buffer=%q, want 0", s.Buffer)
	}
	s, _ = run(t, NewState(ModeStandard), Digit('2'), Symbol('π'), Backspace())
	if s.Buffer != "2" {
		t.Fatalf("buffer=%q, want 2", s.Buffer)
	}
	s, _ = run(t, NewState(ModeStandard), Backspace(), Backspace())
	if s.Buffer != "0" {
		t.Fatalf("buffer=%q, want 0", s.Buffer)
	}
}

func TestApply_DivideByZeroShowsMarker(t *testing.T) {
	s, fx := run(t, NewState(ModeStandard), labels(t, "1", "/", "0", "=")...)
	if s.Buffer != ErrorMarker || s.Phase() != PhaseError {
		t.Fatalf("buffer=%q phase=%s, want %q error", s.Buffer, s.Phase(), ErrorMarker)
	}
	if !errors.Is(fx.Err, ErrDivideByZero) {
		t.Fatalf("fx.Err=%v, want ErrDivideByZero", fx.Err)
	}
	if s.Annotation != "division by zero" {
		t.Fatalf("annotation=%q, want %q", s.Annotation, "division by zero")
	}
	if fx.Entry == nil || fx.Entry.String() != "1/0 = Error" {
		t.Fatalf("fx.Entry=%v, want 1/0 = Error", fx.Entry)
	}
}

func TestApply_ErrorClearedByNextEntry(t *testing.T) {
	errState, _ := run(t, NewState(ModeStandard), labels(t, "1", "/", "0", "=")...)

	s, _ := run(t, errState, Digit('8'))
	if s.Buffer != "8" || s.Annotation != "" {
		t.Fatalf("after digit: buffer=%q annotation=%q, want 8 / empty", s.Buffer, s.Annotation)
	}
	s, _ = run(t, errState, Operator('+'))
	if s.Buffer != "0+" {
		t.Fatalf("after operator: buffer=%q, want 0+", s.Buffer)
	}
	s, _ = run(t, errState, Backspace())
	if s.Buffer != "0" {
		t.Fatalf("after backspace: buffer=%q, want 0", s.Buffer)
	}
}

func TestApply_FactorialOfNegative(t *testing.T) {
	s, fx := run(t, NewState(ModeScientific), Operator('-'), Digit('3'))
	if s.Buffer != "-3" {
		t.Fatalf("buffer=%q, want -3", s.Buffer)
	}

	s = NewState(ModeScientific)
	s, _ = run(t, s, Digit('3'), ToggleSign())
	if s.Buffer != "-3" {
		t.Fatalf("buffer=%q, want -3", s.Buffer)
	}
	s, fx = run(t, s, Scientific(FuncFactorial))
	if s.Buffer != ErrorMarker {
		t.Fatalf("buffer=%q, want %q", s.Buffer, ErrorMarker)
	}
	if !errors.Is(fx.Err, ErrDomain) {
		t.Fatalf("fx.Err=%v, want ErrDomain", fx.Err)
	}
	if s.History.Len() != 0 {
		t.Fatalf("history len=%d, scientific ops must not record history", s.History.Len())
	}
}

func TestApply_SineUsesDegrees(t *testing.T) {
	s, fx := run(t, NewState(ModeScientific), Digit('9'), Digit('0'), Scientific(FuncSin))
	if fx.Err != nil {
		t.Fatalf("fx.Err=%v", fx.Err)
	}
	v, err := ParseNumeric(s.Buffer)
	if err != nil || math.Abs(v-1) > 1e-12 {
		t.Fatalf("sin(90) buffer=%q, want 1", s.Buffer)
	}
	if s.Annotation != "sin(90)" {
		t.Fatalf("annotation=%q, want sin(90)", s.Annotation)
	}
}

func TestApply_ConstantEIgnoresInput(t *testing.T) {
	s, fx := run(t, NewState(ModeScientific), Digit('2'), Operator('+'), Scientific(FuncE))
	if fx.Err != nil {
		t.Fatalf("fx.Err=%v", fx.Err)
	}
	if s.Buffer != FormatNumber(math.E) {
		t.Fatalf("buffer=%q, want %q", s.Buffer, FormatNumber(math.E))
	}
}

func TestApply_ScientificOnExpressionFails(t *testing.T) {
	s, fx := run(t, NewState(ModeScientific), Digit('2'), Operator('+'), Digit('3'), Scientific(FuncCos))
	if s.Buffer != ErrorMarker || !errors.Is(fx.Err, ErrNotNumeric) {
		t.Fatalf("buffer=%q err=%v, want marker + ErrNotNumeric", s.Buffer, fx.Err)
	}
	if s.Annotation != "cos(2+3): not a number" {
		t.Fatalf("annotation=%q", s.Annotation)
	}
}

func TestApply_HistoryMostRecentFirst(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), labels(t, "2", "+", "2", "=", "C", "3", "*", "3", "=")...)
	got := s.HistoryLines()
	want := []string{"3*3 = 9", "2+2 = 4"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("HistoryLines()=%q, want %q", got, want)
	}
	if s.Buffer != "9" {
		t.Fatalf("buffer=%q, want 9", s.Buffer)
	}
}

func TestApply_ModeToggleKeepsBufferAndMemory(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), Digit('4'), Memory(MemAdd), Digit('2'))
	before := s
	s, _ = run(t, s, SetMode(ModeScientific))
	if s.Mode != ModeScientific {
		t.Fatalf("mode=%s, want scientific", s.Mode)
	}
	s, _ = run(t, s, SetMode(ModeStandard))
	if s.Buffer != before.Buffer || s.Memory != before.Memory {
		t.Fatalf("buffer=%q memory=%v, want %q %v", s.Buffer, s.Memory, before.Buffer, before.Memory)
	}
}

func TestApply_MemoryRegister(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), Digit('5'), Memory(MemAdd))
	if s.Memory != 5 || s.Annotation != "M+" {
		t.Fatalf("memory=%v annotation=%q, want 5 M+", s.Memory, s.Annotation)
	}
	s, _ = run(t, s, Clear(), Digit('2'), Memory(MemSubtract))
	if s.Memory != 3 {
		t.Fatalf("memory=%v, want 3", s.Memory)
	}
	s, _ = run(t, s, Clear(), Memory(MemRecall))
	if s.Buffer != "3" || s.Annotation != "MR" {
		t.Fatalf("buffer=%q annotation=%q, want 3 MR", s.Buffer, s.Annotation)
	}
	s, _ = run(t, s, Memory(MemClear))
	if s.Memory != 0 || s.Buffer != "3" {
		t.Fatalf("memory=%v buffer=%q, want 0 3", s.Memory, s.Buffer)
	}
}

func TestApply_MemoryOnNonNumericIsSilent(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), Digit('1'), Operator('+'), Digit('2'))
	s.Memory = 7
	next, fx := Apply(s, Memory(MemAdd))
	if fx.Err != nil {
		t.Fatalf("fx.Err=%v, want nil", fx.Err)
	}
	if !errors.Is(fx.Ignored, ErrNotNumeric) {
		t.Fatalf("fx.Ignored=%v, want ErrNotNumeric", fx.Ignored)
	}
	if next.Buffer != s.Buffer || next.Memory != 7 || next.Annotation != s.Annotation {
		t.Fatalf("state changed: %+v -> %+v", s, next)
	}
}

func TestApply_ToggleSign(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), Digit('5'), ToggleSign())
	if s.Buffer != "-5" {
		t.Fatalf("buffer=%q, want -5", s.Buffer)
	}
	s, _ = run(t, s, ToggleSign())
	if s.Buffer != "5" {
		t.Fatalf("buffer=%q, want 5", s.Buffer)
	}
	s, fx := run(t, s, Operator('+'), ToggleSign())
	if s.Buffer != ErrorMarker || !errors.Is(fx.Err, ErrNotNumeric) {
		t.Fatalf("buffer=%q err=%v, want marker + ErrNotNumeric", s.Buffer, fx.Err)
	}
}

func TestApply_HistoryPanel(t *testing.T) {
	s := NewState(ModeStandard)
	s, _ = run(t, s, ToggleHistory())
	if s.HistoryVisible {
		t.Fatal("history panel opened before anything was evaluated")
	}
	s, _ = run(t, s, Digit('1'), Equals(), ToggleHistory())
	if !s.HistoryAvailable || !s.HistoryVisible {
		t.Fatalf("available=%v visible=%v, want both true", s.HistoryAvailable, s.HistoryVisible)
	}
	s, _ = run(t, s, Digit('2'))
	if s.HistoryVisible {
		t.Fatal("button press did not hide the history panel")
	}
}

func TestApply_ClearResetsAnnotation(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), Digit('9'), Operator('-'), Clear())
	if s.Buffer != "0" || s.Annotation != "" {
		t.Fatalf("buffer=%q annotation=%q, want 0 / empty", s.Buffer, s.Annotation)
	}
}

func TestApply_InvalidCommandFails(t *testing.T) {
	s, fx := Apply(NewState(ModeStandard), Digit('x'))
	if s.Buffer != ErrorMarker || !errors.Is(fx.Err, ErrInternal) {
		t.Fatalf("buffer=%q err=%v, want marker + ErrInternal", s.Buffer, fx.Err)
	}
	s, fx = Apply(NewState(ModeStandard), Command{})
	if s.Buffer != ErrorMarker || !errors.Is(fx.Err, ErrInternal) {
		t.Fatalf("zero command: buffer=%q err=%v", s.Buffer, fx.Err)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s, _ := run(t, NewState(ModeStandard), labels(t, "2", "+", "2", "=")...)
	snapshot := s.HistoryLines()
	_, _ = Apply(s, Equals())
	after := s.HistoryLines()
	if len(after) != len(snapshot) || s.Buffer != "4" {
		t.Fatalf("Apply mutated its input: history %q -> %q buffer %q", snapshot, after, s.Buffer)
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label string
		kind  CommandKind
	}{
		{"7", CmdDigit},
		{".", CmdDecimal},
		{",", CmdDecimal},
		{"+", CmdOperator},
		{"%", CmdSymbol},
		{"√", CmdSymbol},
		{"^", CmdSymbol},
		{"π", CmdSymbol},
		{"=", CmdEquals},
		{"C", CmdClear},
		{"⌫", CmdBackspace},
		{"±", CmdToggleSign},
		{"M-", CmdMemory},
		{"sin", CmdScientific},
		{"!", CmdScientific},
		{"e", CmdScientific},
	}
	for _, tt := range tests {
		c, ok := ParseLabel(tt.label)
		if !ok || c.Kind != tt.kind {
			t.Fatalf("ParseLabel(%q)=(%s, %v), want %s", tt.label, c.Kind, ok, tt.kind)
		}
	}
	if _, ok := ParseLabel("Hist"); ok {
		t.Fatal("ParseLabel(Hist) ok=true, want false")
	}
}
