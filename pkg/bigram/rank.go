package bigram

import (
	"cmp"
	"slices"
)

// Entry is one row of a ranking.
type Entry struct {
	Pair  Pair `json:"pair"`
	Count int  `json:"count"`
}

// Top returns the n most frequent pairs, highest count first. Equal counts
// are ordered by Prev then Curr. n <= 0 returns every pair.
func (c Counts) Top(n int) []Entry {
	entries := make([]Entry, 0, len(c))
	for p, count := range c {
		entries = append(entries, Entry{Pair: p, Count: count})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		if a.Pair.Prev != b.Pair.Prev {
			return cmp.Compare(a.Pair.Prev, b.Pair.Prev)
		}
		return cmp.Compare(a.Pair.Curr, b.Pair.Curr)
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
