package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// significantDigits bounds the digits shown for a result so binary rounding noise
// (0.1+0.2) does not reach the display.
const significantDigits = 15

// FormatNumber renders v the way the display shows results: integral values without a
// fraction, plain decimals for everyday magnitudes, exponent form otherwise.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return ErrorMarker
	case v == 0:
		return "0"
	}

	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', significantDigits, 64), 64)
	if err == nil {
		v = r
	}
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseNumeric interprets the display buffer as a single number.
func ParseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == ErrorMarker {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if end := scanNumberSigned(s); end != len(s) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return v, nil
}

func scanNumberSigned(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	end := scanNumber(s, i)
	if end == i {
		return 0
	}
	return end
}
