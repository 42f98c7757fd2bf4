package calc

import "errors"

// ErrorMarker is shown in place of a result whenever a computation fails.
const ErrorMarker = "Error"

// ErrEvaluation is the umbrella for every evaluation failure.
var ErrEvaluation = errors.New("evaluation failed")

var (
	ErrSyntax       = &kindError{name: "syntax error"}
	ErrDivideByZero = &kindError{name: "division by zero"}
	ErrDomain       = &kindError{name: "domain error"}
	ErrOverflow     = &kindError{name: "overflow"}
	ErrNotNumeric   = &kindError{name: "not a number"}
	ErrInternal     = &kindError{name: "internal error"}
)

// kindError is a failure category. Each kind also matches ErrEvaluation.
type kindError struct {
	name string
}

func (e *kindError) Error() string { return e.name }

func (e *kindError) Is(target error) bool { return target == ErrEvaluation }

// ErrorKind returns the short category name for err, or "" if err is nil.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range []*kindError{ErrSyntax, ErrDivideByZero, ErrDomain, ErrOverflow, ErrNotNumeric, ErrInternal} {
		if errors.Is(err, k) {
			return k.name
		}
	}
	return ErrEvaluation.Error()
}
