package contest

import (
	"context"
	"errors"
	"strings"

	"github.com/sacensibas/backend/srvcerror"
)

const (
	maxTitleLength   = 128
	maxContentLength = 64 * 1024
)

func validateContest(c *Contest) error {
	title := strings.TrimSpace(c.Title)
	if title == "" || len(title) > maxTitleLength {
		return newErrInvalidTitle()
	}
	if len(c.Content) > maxContentLength {
		return newErrContentTooLong()
	}
	if !c.Begin.Before(c.End) {
		return newErrInvalidTimeRange()
	}
	rule, ok := GetRule(c.Rule)
	if !ok {
		return newErrInvalidRule()
	}
	return rule.Check(c)
}

// CreateContest validates and stores a new contest record. The id is
// minted as a UUIDv7 string so per-domain listings come out newest
// first.
func (s *ContestSrvc) CreateContest(ctx context.Context, c *Contest) (*Contest, error) {
	if err := validateContest(c); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = NewRecordID().String()
	}
	c.Attend = 0
	c.Version = 0
	if err := s.contests.Save(ctx, c); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, newErrContestConflict().SetDebug(err)
		}
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return c, nil
}

// EditContest re-validates and saves an existing record. The write is
// conditioned on the version the caller read; concurrent editors lose.
// Callers changing the rule, problem list, or timing should follow up
// with RecalcStatus.
func (s *ContestSrvc) EditContest(ctx context.Context, c *Contest) (*Contest, error) {
	if err := validateContest(c); err != nil {
		return nil, err
	}
	if err := s.contests.Save(ctx, c); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, newErrContestConflict().SetDebug(err)
		}
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return c, nil
}

// GetContest resolves a contest by (domain, id).
func (s *ContestSrvc) GetContest(ctx context.Context, domain string, id string) (*Contest, error) {
	c, err := s.contests.Get(ctx, domain, id)
	if err != nil {
		if errors.Is(err, ErrContestNotFound) {
			return nil, newErrContestNotFound()
		}
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return c, nil
}

// ListContests returns the domain's contests, newest first.
func (s *ContestSrvc) ListContests(ctx context.Context, domain string) ([]*Contest, error) {
	out, err := s.contests.List(ctx, domain)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return out, nil
}
