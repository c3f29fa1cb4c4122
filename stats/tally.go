package stats

import "sort"

// Tally is a named counter, e.g. wins per driver at a circuit.
type Tally struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// tallier counts ids and remembers first-encounter order for tie-breaks.
type tallier struct {
	counts map[int]int
	order  []int
}

func newTallier() *tallier {
	return &tallier{counts: map[int]int{}}
}

func (t *tallier) add(id int) {
	if _, ok := t.counts[id]; !ok {
		t.order = append(t.order, id)
	}
	t.counts[id]++
}

// top returns the most frequent id; ties go to the first encountered.
func (t *tallier) top() (int, bool) {
	best, bestN := 0, 0
	for _, id := range t.order {
		if n := t.counts[id]; n > bestN {
			best, bestN = id, n
		}
	}
	return best, bestN > 0
}

// sorted lists the tallies by count descending, first-encountered first on ties.
func (t *tallier) sorted(name func(int) string) []Tally {
	out := make([]Tally, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, Tally{ID: id, Name: name(id), Count: t.counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
