package contest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sacensibas/backend/srvcerror"
)

// Scoreboard computes the ranked scoreboard table. Visibility follows
// the rule's predicate unless the caller's capability overrides it.
// When a lock instant applies (the caller's cutoff, or the contest's
// own LockAt while it stays locked), journal entries after the lock
// are masked: each status keeps its pre-lock journal prefix and its
// snapshot is recomputed from that prefix, so pre-lock cells stay live
// while later submissions are invisible.
func (s *ContestSrvc) Scoreboard(ctx context.Context, cap Capability, c *Contest,
	export bool, tr func(string) string, lockAt *time.Time) ([][]Cell, error) {

	rule, ok := GetRule(c.Rule)
	if !ok {
		return nil, newErrInvalidRule()
	}
	if !rule.ShowScoreboard(c, s.now()) && !canSeeHidden(cap, c) {
		return nil, newErrScoreboardHidden()
	}
	if tr == nil {
		tr = NoTranslate
	}

	sts, err := s.ListStatus(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	if lockAt == nil && c.LockAt != nil && !c.Unlocked {
		lockAt = c.LockAt
	}
	if lockAt != nil {
		sts = maskAfter(rule, c, sts, *lockAt)
	}

	ranked := RankStatuses(rule, sts)

	udict, pdict, err := s.lookupDirs(ctx, c, sts)
	if err != nil {
		return nil, err
	}

	return rule.Scoreboard(export, tr, c, ranked, udict, pdict), nil
}

// ShowScoreboard exposes the rule visibility predicate together with
// the capability override, for callers that only need the boolean.
func (s *ContestSrvc) ShowScoreboard(cap Capability, c *Contest) bool {
	rule, ok := GetRule(c.Rule)
	if !ok {
		return false
	}
	return rule.ShowScoreboard(c, s.now()) || canSeeHidden(cap, c)
}

// maskAfter truncates each journal at the lock instant and recomputes
// the snapshot from the truncated prefix. Stat is pure, so the stored
// records are left untouched.
func maskAfter(rule Rule, c *Contest, sts []*Status, lockAt time.Time) []*Status {
	out := make([]*Status, 0, len(sts))
	for _, st := range sts {
		kept := make([]JournalEntry, 0, len(st.Journal))
		for _, j := range st.Journal {
			if !j.At().After(lockAt) {
				kept = append(kept, j)
			}
		}
		cp := *st
		cp.Journal = kept
		cp.Stats = rule.Stat(c, kept)
		out = append(out, &cp)
	}
	return out
}

func (s *ContestSrvc) lookupDirs(ctx context.Context, c *Contest, sts []*Status) (map[uuid.UUID]Participant, map[string]Problem, error) {
	userIDs := make([]uuid.UUID, 0, len(sts))
	for _, st := range sts {
		userIDs = append(userIDs, st.UserID)
	}

	udict := map[uuid.UUID]Participant{}
	if s.participants != nil && len(userIDs) > 0 {
		var err error
		udict, err = s.participants.BatchGet(ctx, userIDs)
		if err != nil {
			return nil, nil, srvcerror.ErrInternalSE().SetDebug(err)
		}
	}
	pdict := map[string]Problem{}
	if s.problems != nil && len(c.Pids) > 0 {
		var err error
		pdict, err = s.problems.BatchGet(ctx, c.Pids)
		if err != nil {
			return nil, nil, srvcerror.ErrInternalSE().SetDebug(err)
		}
	}
	return udict, pdict, nil
}
