package calc

import (
	"fmt"
	"math"
)

// Func is one of the scientific functions applied to the display value.
type Func uint8

const (
	FuncSin Func = iota + 1
	FuncCos
	FuncTan
	FuncLog
	FuncLn
	FuncSqrt
	FuncFactorial
	FuncExp
	FuncDeg
	FuncRad
	FuncAbs
	FuncE
)

// trigEpsilon is the distance from zero below which trig results are shown as 0.
const trigEpsilon = 1e-12

// maxFactorial is the largest n whose factorial fits a float64.
const maxFactorial = 170

var funcNames = [...]string{
	FuncSin:       "sin",
	FuncCos:       "cos",
	FuncTan:       "tan",
	FuncLog:       "log",
	FuncLn:        "ln",
	FuncSqrt:      "√",
	FuncFactorial: "!",
	FuncExp:       "exp",
	FuncDeg:       "deg",
	FuncRad:       "rad",
	FuncAbs:       "abs",
	FuncE:         "e",
}

func (f Func) String() string {
	if int(f) < len(funcNames) && funcNames[f] != "" {
		return funcNames[f]
	}
	return "unknown"
}

// ParseFunc maps a button label to its function.
func ParseFunc(name string) (Func, bool) {
	switch name {
	case "sqrt":
		return FuncSqrt, true
	case "fact", "factorial":
		return FuncFactorial, true
	}
	for f, n := range funcNames {
		if n != "" && n == name {
			return Func(f), true
		}
	}
	return 0, false
}

// UsesInput reports whether f reads the display value.
func (f Func) UsesInput() bool { return f != FuncE }

// ApplyFunc computes f(x). Trigonometric inputs are degrees.
func ApplyFunc(f Func, x float64) (float64, error) {
	var v float64
	switch f {
	case FuncSin:
		v = snapZero(math.Sin(radians(x)))
	case FuncCos:
		v = snapZero(math.Cos(radians(x)))
	case FuncTan:
		c := math.Cos(radians(x))
		if math.Abs(c) < trigEpsilon {
			return 0, fmt.Errorf("%w: tan(%s)", ErrDomain, FormatNumber(x))
		}
		v = snapZero(math.Sin(radians(x)) / c)
	case FuncLog:
		if x <= 0 {
			return 0, fmt.Errorf("%w: log(%s)", ErrDomain, FormatNumber(x))
		}
		v = math.Log10(x)
	case FuncLn:
		if x <= 0 {
			return 0, fmt.Errorf("%w: ln(%s)", ErrDomain, FormatNumber(x))
		}
		v = math.Log(x)
	case FuncSqrt:
		if x < 0 {
			return 0, fmt.Errorf("%w: √(%s)", ErrDomain, FormatNumber(x))
		}
		v = math.Sqrt(x)
	case FuncFactorial:
		return factorial(x)
	case FuncExp:
		v = math.Exp(x)
	case FuncDeg:
		v = x * 180 / math.Pi
	case FuncRad:
		v = radians(x)
	case FuncAbs:
		v = math.Abs(x)
	case FuncE:
		return math.E, nil
	default:
		return 0, fmt.Errorf("%w: function %d", ErrInternal, f)
	}
	return checkResult(v)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func snapZero(v float64) float64 {
	if math.Abs(v) < trigEpsilon {
		return 0
	}
	return v
}

func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, fmt.Errorf("%w: %s!", ErrDomain, FormatNumber(x))
	}
	if x > maxFactorial {
		return 0, fmt.Errorf("%w: %s!", ErrOverflow, FormatNumber(x))
	}
	v := 1.0
	for i := 2; i <= int(x); i++ {
		v *= float64(i)
	}
	return v, nil
}
