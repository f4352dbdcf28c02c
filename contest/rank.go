package contest

import (
	"sort"

	"github.com/sacensibas/backend/rankutil"
)

// RankedStatus pairs a status record with its competition rank. Rank 0
// marks unranked participants: they keep their sorted position on the
// scoreboard but do not consume rank numbers.
type RankedStatus struct {
	Rank   int
	Status *Status
}

// RankStatuses sorts statuses by the rule's display policy and assigns
// competition ("1224") ranks. Tie detection compares only the rule's
// primary score metric: two records with equal score but different
// secondary sort keys still share one rank.
func RankStatuses(rule Rule, statuses []*Status) []RankedStatus {
	sorted := make([]*Status, len(statuses))
	copy(sorted, statuses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rule.StatusLess(sorted[i], sorted[j])
	})

	counted := make([]*Status, 0, len(sorted))
	for _, st := range sorted {
		if !st.Unranked {
			counted = append(counted, st)
		}
	}
	ranked := rankutil.Rank(counted, func(prev, cur *Status) bool {
		return rule.ScoreOf(prev) == rule.ScoreOf(cur)
	})

	out := make([]RankedStatus, 0, len(sorted))
	next := 0
	for _, st := range sorted {
		if st.Unranked {
			out = append(out, RankedStatus{Rank: 0, Status: st})
			continue
		}
		out = append(out, RankedStatus{Rank: ranked[next].Rank, Status: st})
		next++
	}
	return out
}
