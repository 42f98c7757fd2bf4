package calc

import (
	"fmt"
	"math"
)

// Evaluate parses and computes text.
func Evaluate(text string) (float64, error) {
	ex, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return ex.Eval()
}

// EvaluateText computes text and formats the result for the display.
//
// On failure the returned string is ErrorMarker and err carries the failure kind.
func EvaluateText(text string) (string, error) {
	v, err := Evaluate(text)
	if err != nil {
		return ErrorMarker, err
	}
	return FormatNumber(v), nil
}

func (n nodeNumber) eval() (float64, error) { return n.v, nil }

func (n nodeUnary) eval() (float64, error) {
	x, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return x, nil
	case '-':
		return -x, nil
	case '√':
		if x < 0 {
			return 0, fmt.Errorf("%w: square root of %s", ErrDomain, FormatNumber(x))
		}
		return math.Sqrt(x), nil
	}
	return 0, fmt.Errorf("%w: unary %q", ErrInternal, n.op)
}

func (n nodeBinary) eval() (float64, error) {
	a, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	b, err := n.right.eval()
	if err != nil {
		return 0, err
	}

	var v float64
	switch n.op {
	case '+':
		v = a + b
	case '-':
		v = a - b
	case '*':
		v = a * b
	case '/':
		if b == 0 {
			return 0, fmt.Errorf("%w: %s / 0", ErrDivideByZero, FormatNumber(a))
		}
		v = a / b
	case '%':
		if b == 0 {
			return 0, fmt.Errorf("%w: %s %% 0", ErrDivideByZero, FormatNumber(a))
		}
		v = floorMod(a, b)
	case '^':
		v, err = power(a, b)
		if err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("%w: binary %q", ErrInternal, n.op)
	}
	return checkResult(v)
}

// floorMod is the remainder with the sign of the divisor.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func power(a, b float64) (float64, error) {
	if a == 0 && b < 0 {
		return 0, fmt.Errorf("%w: 0 to a negative power", ErrDivideByZero)
	}
	if a < 0 && b != math.Trunc(b) {
		return 0, fmt.Errorf("%w: fractional power of a negative number", ErrDomain)
	}
	return math.Pow(a, b), nil
}

func checkResult(v float64) (float64, error) {
	switch {
	case math.IsNaN(v):
		return 0, fmt.Errorf("%w: not a number", ErrDomain)
	case math.IsInf(v, 0):
		return 0, fmt.Errorf("%w: result out of range", ErrOverflow)
	}
	return v, nil
}
