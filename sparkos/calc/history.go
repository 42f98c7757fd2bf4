package calc

// HistoryDisplayLimit is how many entries the history panel lists.
const HistoryDisplayLimit = 20

// Entry is one evaluation: the text that was evaluated and what it produced.
type Entry struct {
	Expr   string
	Result string
	Err    error
}

func (e Entry) String() string { return e.Expr + " = " + e.Result }

// History is an append-only log of evaluations, oldest first.
//
// The zero value is empty and ready to use. Appending never mutates a slice shared with an
// earlier History value, so States holding older histories stay intact.
type History struct {
	entries []Entry
}

// Append returns h with e added as the most recent entry.
func (h History) Append(e Entry) History {
	n := len(h.entries)
	entries := make([]Entry, n, n+1)
	copy(entries, h.entries)
	return History{entries: append(entries, e)}
}

// Len returns the number of recorded entries.
func (h History) Len() int { return len(h.entries) }

// Recent returns up to n entries, most recent first. n <= 0 returns all of them.
func (h History) Recent(n int) []Entry {
	total := len(h.entries)
	if n <= 0 || n > total {
		n = total
	}
	out := make([]Entry, 0, n)
	for i := total - 1; i >= total-n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Lines renders the entries shown in the history panel.
func (h History) Lines() []string {
	recent := h.Recent(HistoryDisplayLimit)
	out := make([]string, len(recent))
	for i, e := range recent {
		out[i] = e.String()
	}
	return out
}
