package calc

import (
	"errors"
	"math"
	"testing"
)

func TestApplyFunc_Values(t *testing.T) {
	tests := []struct {
		f    Func
		x    float64
		want float64
	}{
		{f: FuncSin, x: 90, want: 1},
		{f: FuncSin, x: 180, want: 0},
		{f: FuncSin, x: 30, want: 0.5},
		{f: FuncCos, x: 0, want: 1},
		{f: FuncCos, x: 90, want: 0},
		{f: FuncTan, x: 45, want: 1},
		{f: FuncLog, x: 1000, want: 3},
		{f: FuncLn, x: math.E, want: 1},
		{f: FuncSqrt, x: 81, want: 9},
		{f: FuncFactorial, x: 5, want: 120},
		{f: FuncFactorial, x: 0, want: 1},
		{f: FuncExp, x: 0, want: 1},
		{f: FuncDeg, x: math.Pi, want: 180},
		{f: FuncRad, x: 180, want: math.Pi},
		{f: FuncAbs, x: -3.5, want: 3.5},
		{f: FuncE, x: 12345, want: math.E},
	}
	for _, tt := range tests {
		got, err := ApplyFunc(tt.f, tt.x)
		if err != nil {
			t.Fatalf("%s(%v) error: %v", tt.f, tt.x, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("%s(%v)=%v, want %v", tt.f, tt.x, got, tt.want)
		}
	}
}

func TestApplyFunc_Errors(t *testing.T) {
	tests := []struct {
		f    Func
		x    float64
		want error
	}{
		{f: FuncFactorial, x: -3, want: ErrDomain},
		{f: FuncFactorial, x: 2.5, want: ErrDomain},
		{f: FuncFactorial, x: 171, want: ErrOverflow},
		{f: FuncLog, x: 0, want: ErrDomain},
		{f: FuncLn, x: -1, want: ErrDomain},
		{f: FuncSqrt, x: -4, want: ErrDomain},
		{f: FuncTan, x: 90, want: ErrDomain},
		{f: FuncTan, x: -270, want: ErrDomain},
		{f: FuncExp, x: 1000, want: ErrOverflow},
		{f: Func(99), x: 1, want: ErrInternal},
	}
	for _, tt := range tests {
		if _, err := ApplyFunc(tt.f, tt.x); !errors.Is(err, tt.want) {
			t.Fatalf("%s(%v) error=%v, want %v", tt.f, tt.x, err, tt.want)
		}
	}
}

func TestParseFunc(t *testing.T) {
	for _, name := range []string{"sin", "cos", "tan", "log", "ln", "√", "sqrt", "!", "exp", "deg", "rad", "abs", "e"} {
		f, ok := ParseFunc(name)
		if !ok {
			t.Fatalf("ParseFunc(%q) ok=false", name)
		}
		if name != "sqrt" && f.String() != name {
			t.Fatalf("ParseFunc(%q).String()=%q", name, f.String())
		}
	}
	if _, ok := ParseFunc("cosh"); ok {
		t.Fatal("ParseFunc(cosh) ok=true, want false")
	}
}
