// Package rankutil assigns competition ranks ("1224" style) to an
// already sorted sequence. Adjacent items for which the supplied
// predicate reports a tie share one rank; the rank of a tie cluster is
// the 1-based position of its first member, so the rank after a
// cluster of k items jumps by k.
package rankutil

type Ranked[T any] struct {
	Rank int
	Item T
}

// Rank walks items in order and yields (rank, item) pairs. The input
// must already be sorted; Rank only decides where ranks repeat.
func Rank[T any](items []T, tied func(prev, cur T) bool) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	rank := 0
	for i, it := range items {
		if i == 0 || !tied(items[i-1], it) {
			rank = i + 1
		}
		out = append(out, Ranked[T]{Rank: rank, Item: it})
	}
	return out
}
