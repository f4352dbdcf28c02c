package contest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// In-memory repos with the same conditional-write semantics as the
// DynamoDB tables. Used by tests.

type inMemContestRepo struct {
	mu       sync.RWMutex
	contests map[string]*Contest // key: domain + "/" + id
}

func newInMemContestRepo() *inMemContestRepo {
	return &inMemContestRepo{contests: map[string]*Contest{}}
}

func contestKey(domain, id string) string { return domain + "/" + id }

// Get implements ContestRepo
func (r *inMemContestRepo) Get(ctx context.Context, domain string, id string) (*Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contests[contestKey(domain, id)]
	if !ok {
		return nil, ErrContestNotFound
	}
	cp := *c
	return &cp, nil
}

// Save implements ContestRepo
func (r *inMemContestRepo) Save(ctx context.Context, c *Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := contestKey(c.Domain, c.ID)
	if cur, ok := r.contests[key]; ok && cur.Version != c.Version {
		return ErrVersionConflict
	}
	cp := *c
	cp.Version++
	r.contests[key] = &cp
	c.Version = cp.Version
	return nil
}

// List implements ContestRepo
func (r *inMemContestRepo) List(ctx context.Context, domain string) ([]*Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Contest
	for _, c := range r.contests {
		if c.Domain == domain {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// AddAttend implements ContestRepo
func (r *inMemContestRepo) AddAttend(ctx context.Context, domain string, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contests[contestKey(domain, id)]
	if !ok {
		return ErrContestNotFound
	}
	c.Attend += delta
	return nil
}

type inMemStatusRepo struct {
	mu       sync.Mutex
	statuses map[string]map[uuid.UUID]*Status
}

func newInMemStatusRepo() *inMemStatusRepo {
	return &inMemStatusRepo{statuses: map[string]map[uuid.UUID]*Status{}}
}

func copyStatus(st *Status) *Status {
	cp := *st
	cp.Journal = make([]JournalEntry, len(st.Journal))
	copy(cp.Journal, st.Journal)
	if st.Detail != nil {
		cp.Detail = make(map[string]ProblemDetail, len(st.Detail))
		for pid, d := range st.Detail {
			cp.Detail[pid] = d
		}
	}
	return &cp
}

// Get implements StatusRepo
func (r *inMemStatusRepo) Get(ctx context.Context, contestID string, userID uuid.UUID) (*Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[contestID][userID]
	if !ok {
		return nil, ErrStatusNotFound
	}
	return copyStatus(st), nil
}

// List implements StatusRepo
func (r *inMemStatusRepo) List(ctx context.Context, contestID string) ([]*Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Status, 0, len(r.statuses[contestID]))
	for _, st := range r.statuses[contestID] {
		out = append(out, copyStatus(st))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out, nil
}

// MultiGet implements StatusRepo
func (r *inMemStatusRepo) MultiGet(ctx context.Context, contestID string, userIDs []uuid.UUID) ([]*Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Status, 0, len(userIDs))
	for _, id := range userIDs {
		if st, ok := r.statuses[contestID][id]; ok {
			out = append(out, copyStatus(st))
		}
	}
	return out, nil
}

// Attend implements StatusRepo
func (r *inMemStatusRepo) Attend(ctx context.Context, contestID string, userID uuid.UUID, startAt, endAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.statuses[contestID][userID]; ok && st.Attend >= 1 {
		return ErrAlreadyAttended
	}
	if r.statuses[contestID] == nil {
		r.statuses[contestID] = map[uuid.UUID]*Status{}
	}
	r.statuses[contestID][userID] = &Status{
		ContestID: contestID,
		UserID:    userID,
		Attend:    1,
		Journal:   []JournalEntry{},
		StartAt:   startAt,
		EndAt:     endAt,
	}
	return nil
}

// PushJournal implements StatusRepo
func (r *inMemStatusRepo) PushJournal(ctx context.Context, contestID string, userID uuid.UUID, entry JournalEntry) (*Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[contestID][userID]
	if !ok || st.Attend < 1 {
		return nil, ErrNotAttended
	}
	st.Journal = append(st.Journal, entry)
	st.Rev++
	return copyStatus(st), nil
}

// WriteStat implements StatusRepo
func (r *inMemStatusRepo) WriteStat(ctx context.Context, contestID string, userID uuid.UUID, rev int64, stats Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statuses[contestID][userID]
	if !ok {
		return ErrStatusNotFound
	}
	if st.Rev != rev {
		return ErrRevMismatch
	}
	st.Stats = stats
	return nil
}
