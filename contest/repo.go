package contest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors shared by every repo implementation. The service
// layer maps them onto srvcerror kinds.
var (
	ErrContestNotFound = errors.New("contest not found")
	ErrStatusNotFound  = errors.New("status not found")
	// ErrRevMismatch is the stale-writer rejection of the conditional
	// stat write.
	ErrRevMismatch = errors.New("status revision mismatch")
	// ErrAlreadyAttended is the capped-increment rejection.
	ErrAlreadyAttended = errors.New("already attended")
	// ErrNotAttended is returned by journal appends for participants
	// without a status record.
	ErrNotAttended     = errors.New("not attended")
	ErrVersionConflict = errors.New("contest version conflict")
)

// ContestRepo stores contest records keyed by (domain, id).
type ContestRepo interface {
	Get(ctx context.Context, domain string, id string) (*Contest, error)
	// Save writes the record conditioned on its version field still
	// being current, bumping it on success.
	Save(ctx context.Context, c *Contest) error
	// List returns the domain's contests, newest first.
	List(ctx context.Context, domain string) ([]*Contest, error)
	// AddAttend bumps the display-only attendance counter. The
	// increment is unconditioned and not atomic with the status-side
	// capped increment; losing one under a crash is acceptable for a
	// counter that gates nothing.
	AddAttend(ctx context.Context, domain string, id string, delta int) error
}

// StatusRepo stores the per-(contest, participant) status documents
// and provides the three store-level atomic primitives the update
// protocol relies on: the journal append with revision bump, the
// revision-conditioned stat write, and the capped attendance
// increment.
type StatusRepo interface {
	Get(ctx context.Context, contestID string, userID uuid.UUID) (*Status, error)
	List(ctx context.Context, contestID string) ([]*Status, error)
	MultiGet(ctx context.Context, contestID string, userIDs []uuid.UUID) ([]*Status, error)

	// Attend creates the status record with attendance set, failing
	// with ErrAlreadyAttended if the participant is already in.
	Attend(ctx context.Context, contestID string, userID uuid.UUID, startAt, endAt *time.Time) error

	// PushJournal atomically appends one entry and bumps the revision,
	// returning the record as written. Fails with ErrNotAttended when
	// no attended status record exists.
	PushJournal(ctx context.Context, contestID string, userID uuid.UUID, entry JournalEntry) (*Status, error)

	// WriteStat stores a derived snapshot conditioned on rev still
	// being the record's current revision; a concurrent append since
	// the snapshot was computed yields ErrRevMismatch and the write is
	// discarded.
	WriteStat(ctx context.Context, contestID string, userID uuid.UUID, rev int64, stats Stats) error
}

// ParticipantDir is the external user directory, consulted in batch
// for scoreboard rendering.
type ParticipantDir interface {
	BatchGet(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Participant, error)
}

// ProblemDir is the external problem directory.
type ProblemDir interface {
	BatchGet(ctx context.Context, ids []string) (map[string]Problem, error)
}
