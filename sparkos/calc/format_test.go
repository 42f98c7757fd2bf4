package calc

import (
	"errors"
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: 4, want: "4"},
		{in: -5, want: "-5"},
		{in: 0.5, want: "0.5"},
		{in: 0.1 + 0.2, want: "0.3"},
		{in: 1000000, want: "1000000"},
		{in: 123456.789, want: "123456.789"},
		{in: 1e20, want: "1e+20"},
		{in: 1e-7, want: "1e-07"},
		{in: math.Pi, want: "3.14159265358979"},
		{in: math.Inf(1), want: ErrorMarker},
		{in: math.NaN(), want: ErrorMarker},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Fatalf("FormatNumber(%v)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	good := map[string]float64{
		"5":     5,
		"-5":    -5,
		"+2.5":  2.5,
		"1e3":   1000,
		".25":   0.25,
		" 7 ":   7,
		"5.":    5,
		"-0.75": -0.75,
	}
	for in, want := range good {
		got, err := ParseNumeric(in)
		if err != nil {
			t.Fatalf("ParseNumeric(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseNumeric(%q)=%v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "Error", "2+3", "abc", "inf", "NaN", "1e999", "-", ".", "0x10", "5+"} {
		if _, err := ParseNumeric(in); !errors.Is(err, ErrNotNumeric) {
			t.Fatalf("ParseNumeric(%q) error=%v, want ErrNotNumeric", in, err)
		}
	}
}
