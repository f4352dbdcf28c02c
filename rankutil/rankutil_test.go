package rankutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankCompetitionStyle(t *testing.T) {
	scores := []int{100, 100, 80, 80, 80, 50}
	ranked := Rank(scores, func(prev, cur int) bool { return prev == cur })

	got := make([]int, len(ranked))
	for i, r := range ranked {
		got[i] = r.Rank
	}
	assert.Equal(t, []int{1, 1, 3, 3, 3, 6}, got)
}

func TestRankEmpty(t *testing.T) {
	ranked := Rank(nil, func(prev, cur int) bool { return prev == cur })
	assert.Empty(t, ranked)
}

func TestRankNoTies(t *testing.T) {
	ranked := Rank([]string{"a", "b", "c"}, func(prev, cur string) bool { return false })
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestRankAllTied(t *testing.T) {
	ranked := Rank([]int{7, 7, 7}, func(prev, cur int) bool { return true })
	for _, r := range ranked {
		assert.Equal(t, 1, r.Rank)
	}
}
