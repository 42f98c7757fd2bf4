package calc

import "strings"

// Mode selects which button set the calculator offers. It never changes evaluation.
type Mode uint8

const (
	ModeStandard Mode = iota
	ModeScientific
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeScientific:
		return "scientific"
	default:
		return "unknown"
	}
}

// ParseMode accepts "standard" or "scientific" (any case, "normal" is an alias for standard).
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "normal", "std":
		return ModeStandard, true
	case "scientific", "sci":
		return ModeScientific, true
	}
	return 0, false
}

// Phase is the input state derived from the display buffer.
type Phase uint8

const (
	PhaseZero Phase = iota
	PhaseBuilding
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseZero:
		return "zero"
	case PhaseBuilding:
		return "building"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is everything the calculator remembers between inputs.
//
// State is a value: Apply returns a new one and never mutates the argument.
type State struct {
	// Buffer is the display line. It is never empty.
	Buffer string
	// Annotation is the secondary line above the display.
	Annotation string
	// Memory is the MC/MR/M+/M- register.
	Memory float64
	Mode   Mode

	History History
	// HistoryAvailable is set once anything has been evaluated.
	HistoryAvailable bool
	HistoryVisible   bool
}

// NewState returns the power-on state.
func NewState(mode Mode) State {
	return State{Buffer: "0", Mode: mode}
}

// Phase reports the input state.
func (s State) Phase() Phase {
	switch s.Buffer {
	case "", "0":
		return PhaseZero
	case ErrorMarker:
		return PhaseError
	}
	return PhaseBuilding
}

// HistoryLines returns what the history panel lists, most recent first.
func (s State) HistoryLines() []string { return s.History.Lines() }
