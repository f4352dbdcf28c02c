package contest

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Rule bundles the behaviors that differ between contest formats.
// The set of rules is closed: the three builtins are registered during
// package init and the registry is read-only afterwards, so request
// paths may read it without locking.
type Rule interface {
	Name() string
	DisplayName() string
	// Hidden rules are kept out of the creation UI but stay resolvable
	// for existing contests.
	Hidden() bool

	// Check validates rule-specific required fields on create/edit.
	Check(c *Contest) error

	// Stat folds a participant's journal, sorted by submission
	// instant, into a derived snapshot. Pure.
	Stat(c *Contest, journal []JournalEntry) Stats

	// ScoreOf is the primary metric used for tie detection in ranking.
	ScoreOf(st *Status) float64

	// StatusLess is the display sort policy (multi-key).
	StatusLess(a, b *Status) bool

	ShowRecord(c *Contest, now time.Time) bool
	ShowScoreboard(c *Contest, now time.Time) bool

	// Scoreboard renders the header row plus one row per ranked
	// status. Must not mutate its inputs.
	Scoreboard(export bool, tr func(string) string, c *Contest,
		ranked []RankedStatus,
		udict map[uuid.UUID]Participant, pdict map[string]Problem) [][]Cell
}

const (
	RuleACM        = "acm"
	RuleOI         = "oi"
	RuleAssignment = "homework"
)

var rules = map[string]Rule{}

func registerRule(r Rule) {
	if _, dup := rules[r.Name()]; dup {
		panic("contest: duplicate rule " + r.Name())
	}
	rules[r.Name()] = r
}

func init() {
	registerRule(acmRule{})
	registerRule(oiRule{})
	registerRule(assignmentRule{})
}

// GetRule resolves a registered rule by name.
func GetRule(name string) (Rule, bool) {
	r, ok := rules[name]
	return r, ok
}

// RuleNames lists registered rule identifiers in stable order.
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
