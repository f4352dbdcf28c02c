package contest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sacensibas/backend/logger"
	"github.com/sacensibas/backend/srvcerror"
)

// Attend registers a participant. The status-side capped increment
// guarantees exactly-once semantics under concurrent attempts; the
// contest-side display counter is bumped afterwards, unconditioned.
func (s *ContestSrvc) Attend(ctx context.Context, c *Contest, userID uuid.UUID) error {
	var startAt, endAt *time.Time
	if c.Duration > 0 {
		start := s.now()
		end := start.Add(c.Duration)
		if end.After(c.End) {
			end = c.End
		}
		startAt, endAt = &start, &end
	}

	err := s.statuses.Attend(ctx, c.ID, userID, startAt, endAt)
	if err != nil {
		if errors.Is(err, ErrAlreadyAttended) {
			return newErrAlreadyAttended()
		}
		return srvcerror.ErrInternalSE().SetDebug(err)
	}

	if err := s.contests.AddAttend(ctx, c.Domain, c.ID, 1); err != nil {
		// attendance itself succeeded; the display counter is off by
		// one until the next recount
		logger.FromContext(ctx).Warn("attend counter bump failed",
			"contest_id", c.ID, "error", err)
	}
	return nil
}

// maxStatWriteAttempts bounds the optimistic retry loop of
// UpdateStatus and recalcOne.
const maxStatWriteAttempts = 3

// UpdateStatus appends one journal entry, recomputes the rule's
// derived snapshot from the full journal, and writes it back
// conditioned on the revision observed at append time. On a stale
// revision the snapshot is recomputed from a fresh read; after
// maxStatWriteAttempts rejections the conflict is surfaced to the
// caller. Requires the participant to be attended.
func (s *ContestSrvc) UpdateStatus(ctx context.Context, c *Contest, userID uuid.UUID, entry JournalEntry) (*Status, error) {
	rule, ok := GetRule(c.Rule)
	if !ok {
		return nil, newErrInvalidRule()
	}

	st, err := s.statuses.PushJournal(ctx, c.ID, userID, entry)
	if err != nil {
		if errors.Is(err, ErrNotAttended) {
			return nil, newErrNotAttended()
		}
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	for attempt := 0; attempt < maxStatWriteAttempts; attempt++ {
		stats := rule.Stat(c, st.Journal)
		err = s.statuses.WriteStat(ctx, c.ID, userID, st.Rev, stats)
		if err == nil {
			st.Stats = stats
			return st, nil
		}
		if !errors.Is(err, ErrRevMismatch) {
			return nil, srvcerror.ErrInternalSE().SetDebug(err)
		}
		// a concurrent append won; its journal is a superset of ours
		st, err = s.statuses.Get(ctx, c.ID, userID)
		if err != nil {
			return nil, srvcerror.ErrInternalSE().SetDebug(err)
		}
	}
	return nil, newErrStatusConflict()
}

// GetStatus reads one participant's status record.
func (s *ContestSrvc) GetStatus(ctx context.Context, contestID string, userID uuid.UUID) (*Status, error) {
	st, err := s.statuses.Get(ctx, contestID, userID)
	if err != nil {
		if errors.Is(err, ErrStatusNotFound) {
			return nil, newErrStatusNotFound()
		}
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return st, nil
}

// ListStatus returns every status record of a contest in store order.
func (s *ContestSrvc) ListStatus(ctx context.Context, contestID string) ([]*Status, error) {
	out, err := s.statuses.List(ctx, contestID)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return out, nil
}

// MultiGetStatus reads the status records of the given participants;
// missing records are skipped.
func (s *ContestSrvc) MultiGetStatus(ctx context.Context, contestID string, userIDs []uuid.UUID) ([]*Status, error) {
	out, err := s.statuses.MultiGet(ctx, contestID, userIDs)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return out, nil
}

// SortedStatuses returns the contest's statuses in the rule's display
// sort order.
func (s *ContestSrvc) SortedStatuses(ctx context.Context, c *Contest) ([]*Status, error) {
	rule, ok := GetRule(c.Rule)
	if !ok {
		return nil, newErrInvalidRule()
	}
	sts, err := s.ListStatus(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sts, func(i, j int) bool {
		return rule.StatusLess(sts[i], sts[j])
	})
	return sts, nil
}
