package contest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sacensibas/backend/logger"
)

// RecalcStatus rebuilds every participant's derived snapshot from
// their stored journal, e.g. after the rule, problem list, or timing
// of a contest was edited. Participants are disjoint by key, so the
// rewrites run concurrently with no cross-participant ordering; one
// participant failing does not stop the others.
func (s *ContestSrvc) RecalcStatus(ctx context.Context, c *Contest) error {
	rule, ok := GetRule(c.Rule)
	if !ok {
		return newErrInvalidRule()
	}

	sts, err := s.ListStatus(ctx, c.ID)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error
	for _, st := range sts {
		wg.Add(1)
		go func(st *Status) {
			defer wg.Done()
			if err := s.recalcOne(ctx, c, rule, st); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("user %s: %w", st.UserID, err))
				mu.Unlock()
			}
		}(st)
	}
	wg.Wait()

	if len(failures) > 0 {
		joined := errors.Join(failures...)
		logger.FromContext(ctx).Error("status recalc partially failed",
			"contest_id", c.ID, "failed", len(failures), "total", len(sts),
			"error", joined)
		return newErrRecalcFailed().SetDebug(joined)
	}
	return nil
}

func (s *ContestSrvc) recalcOne(ctx context.Context, c *Contest, rule Rule, st *Status) error {
	for attempt := 0; attempt < maxStatWriteAttempts; attempt++ {
		stats := rule.Stat(c, st.Journal)
		err := s.statuses.WriteStat(ctx, c.ID, st.UserID, st.Rev, stats)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRevMismatch) {
			return err
		}
		st, err = s.statuses.Get(ctx, c.ID, st.UserID)
		if err != nil {
			return err
		}
	}
	return ErrRevMismatch
}
