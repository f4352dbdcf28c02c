package contest

import (
	"sort"
	"time"
)

// sortedJournal returns the journal ordered by submission instant.
// Aggregation order is defined by the instant embedded in the record
// id, not by insertion order, so out-of-order appends (rejudges) do
// not change the outcome.
func sortedJournal(journal []JournalEntry) []JournalEntry {
	out := make([]JournalEntry, len(journal))
	copy(out, journal)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At().Before(out[j].At())
	})
	return out
}

func pidSet(c *Contest) map[string]bool {
	set := make(map[string]bool, len(c.Pids))
	for _, pid := range c.Pids {
		set[pid] = true
	}
	return set
}

// effectiveSlot tracks the retained entry for one problem under the
// "keep replacing until accepted" policy shared by the ACM and
// assignment rules.
type effectiveSlot struct {
	entry   JournalEntry
	naccept int
}

// effectiveEntries applies the replacement policy: each new entry for
// a problem replaces the retained one until the retained entry is an
// acceptance, after which the slot is locked. NAccept counts the
// rejections seen before the slot locked.
func effectiveEntries(c *Contest, journal []JournalEntry) map[string]*effectiveSlot {
	pids := pidSet(c)
	slots := map[string]*effectiveSlot{}
	for _, j := range sortedJournal(journal) {
		if !pids[j.Pid] {
			continue
		}
		s, ok := slots[j.Pid]
		if !ok {
			slots[j.Pid] = &effectiveSlot{entry: j}
			continue
		}
		if s.entry.Accept {
			continue
		}
		s.naccept++
		s.entry = j
	}
	return slots
}

func elapsedSeconds(from, to time.Time) int64 {
	return int64(to.Sub(from) / time.Second)
}

// penaltyCoef returns the score multiplier for a submission at the
// given instant. Tiers are sorted ascending; the highest tier whose
// hour boundary has been passed wins. Submissions before PenaltySince
// pay no penalty.
func penaltyCoef(c *Contest, at time.Time) float64 {
	if c.PenaltySince == nil {
		return 1
	}
	over := at.Sub(*c.PenaltySince)
	if over < 0 {
		return 1
	}
	coef := 1.0
	overSec := float64(over / time.Second)
	for _, tier := range c.PenaltyTiers {
		if tier.Hours*3600 <= overSec {
			coef = tier.Coef
		}
	}
	return coef
}
