package calc

import (
	"fmt"
	"testing"
)

func TestHistoryRecentMostRecentFirst(t *testing.T) {
	var h History
	h = h.Append(Entry{Expr: "2+2", Result: "4"})
	h = h.Append(Entry{Expr: "3*3", Result: "9"})

	got := h.Lines()
	want := []string{"3*3 = 9", "2+2 = 4"}
	if len(got) != len(want) {
		t.Fatalf("Lines()=%q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lines()[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistoryLinesCapped(t *testing.T) {
	var h History
	for i := 0; i < 30; i++ {
		h = h.Append(Entry{Expr: fmt.Sprintf("%d+0", i), Result: fmt.Sprint(i)})
	}
	if h.Len() != 30 {
		t.Fatalf("Len()=%d, want 30", h.Len())
	}
	lines := h.Lines()
	if len(lines) != HistoryDisplayLimit {
		t.Fatalf("len(Lines())=%d, want %d", len(lines), HistoryDisplayLimit)
	}
	if lines[0] != "29+0 = 29" || lines[len(lines)-1] != "10+0 = 10" {
		t.Fatalf("Lines() range = %q .. %q", lines[0], lines[len(lines)-1])
	}
	if got := len(h.Recent(0)); got != 30 {
		t.Fatalf("len(Recent(0))=%d, want 30", got)
	}
}

func TestHistoryAppendDoesNotAlias(t *testing.T) {
	var base History
	base = base.Append(Entry{Expr: "1", Result: "1"})
	a := base.Append(Entry{Expr: "a", Result: "a"})
	b := base.Append(Entry{Expr: "b", Result: "b"})

	if a.Recent(1)[0].Expr != "a" || b.Recent(1)[0].Expr != "b" {
		t.Fatalf("appends aliased: a=%v b=%v", a.Recent(1), b.Recent(1))
	}
	if base.Len() != 1 {
		t.Fatalf("base.Len()=%d, want 1", base.Len())
	}
}
