package calc

// CommandKind enumerates every input the calculator reacts to.
type CommandKind uint8

const (
	CmdDigit CommandKind = iota + 1
	CmdDecimal
	CmdOperator
	CmdSymbol
	CmdEquals
	CmdClear
	CmdBackspace
	CmdToggleSign
	CmdMemory
	CmdScientific
	CmdToggleHistory
	CmdSetMode
)

func (k CommandKind) String() string {
	switch k {
	case CmdDigit:
		return "digit"
	case CmdDecimal:
		return "decimal"
	case CmdOperator:
		return "operator"
	case CmdSymbol:
		return "symbol"
	case CmdEquals:
		return "equals"
	case CmdClear:
		return "clear"
	case CmdBackspace:
		return "backspace"
	case CmdToggleSign:
		return "toggle_sign"
	case CmdMemory:
		return "memory"
	case CmdScientific:
		return "scientific"
	case CmdToggleHistory:
		return "toggle_history"
	case CmdSetMode:
		return "set_mode"
	default:
		return "unknown"
	}
}

// MemoryOp is one of the memory register operations.
type MemoryOp uint8

const (
	MemClear MemoryOp = iota + 1
	MemRecall
	MemAdd
	MemSubtract
)

func (op MemoryOp) String() string {
	switch op {
	case MemClear:
		return "MC"
	case MemRecall:
		return "MR"
	case MemAdd:
		return "M+"
	case MemSubtract:
		return "M-"
	default:
		return "M?"
	}
}

// Command is one user input. Only the field matching Kind is meaningful.
type Command struct {
	Kind CommandKind
	Rune rune
	Mem  MemoryOp
	Func Func
	Mode Mode
}

func Digit(d rune) Command       { return Command{Kind: CmdDigit, Rune: d} }
func Decimal() Command           { return Command{Kind: CmdDecimal, Rune: '.'} }
func Operator(op rune) Command   { return Command{Kind: CmdOperator, Rune: op} }
func Symbol(r rune) Command      { return Command{Kind: CmdSymbol, Rune: r} }
func Equals() Command            { return Command{Kind: CmdEquals} }
func Clear() Command             { return Command{Kind: CmdClear} }
func Backspace() Command         { return Command{Kind: CmdBackspace} }
func ToggleSign() Command        { return Command{Kind: CmdToggleSign} }
func Memory(op MemoryOp) Command { return Command{Kind: CmdMemory, Mem: op} }
func Scientific(f Func) Command  { return Command{Kind: CmdScientific, Func: f} }
func ToggleHistory() Command     { return Command{Kind: CmdToggleHistory} }
func SetMode(m Mode) Command     { return Command{Kind: CmdSetMode, Mode: m} }

func (c Command) String() string {
	switch c.Kind {
	case CmdDigit, CmdDecimal, CmdOperator, CmdSymbol:
		return c.Kind.String() + "(" + string(c.Rune) + ")"
	case CmdMemory:
		return c.Mem.String()
	case CmdScientific:
		return c.Func.String()
	case CmdSetMode:
		return c.Kind.String() + "(" + c.Mode.String() + ")"
	}
	return c.Kind.String()
}

func isOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

func isSymbol(r rune) bool {
	switch r {
	case '%', '(', ')', 'π', '^', '√':
		return true
	}
	return false
}

// ParseLabel maps a button label or typed symbol to its command.
func ParseLabel(label string) (Command, bool) {
	switch label {
	case "=":
		return Equals(), true
	case "C":
		return Clear(), true
	case "⌫":
		return Backspace(), true
	case "±":
		return ToggleSign(), true
	case "MC":
		return Memory(MemClear), true
	case "MR":
		return Memory(MemRecall), true
	case "M+":
		return Memory(MemAdd), true
	case "M-":
		return Memory(MemSubtract), true
	case ".", ",":
		return Decimal(), true
	}

	rs := []rune(label)
	if len(rs) == 1 {
		r := rs[0]
		switch {
		case r >= '0' && r <= '9':
			return Digit(r), true
		case isOperator(r):
			return Operator(r), true
		case isSymbol(r):
			return Symbol(r), true
		}
	}
	if f, ok := ParseFunc(label); ok {
		return Scientific(f), true
	}
	return Command{}, false
}
