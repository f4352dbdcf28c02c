package contest

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/google/uuid"
)

// Contest is a scored event over an ordered list of problems. The Pids
// slice defines both scoreboard column order and the membership test
// applied to incoming journal entries.
type Contest struct {
	Domain string
	ID     string

	Title   string
	Content string
	Owner   uuid.UUID
	Rule    string

	Begin time.Time
	End   time.Time

	Pids   []string
	Attend int
	Rated  bool

	// PenaltySince marks the start of the late-submission window for
	// the assignment rule. PenaltyTiers must be sorted by Hours
	// ascending.
	PenaltySince *time.Time
	PenaltyTiers []PenaltyTier

	// LockAt freezes the public scoreboard at the given instant until
	// Unlocked is set.
	LockAt   *time.Time
	Unlocked bool

	// Duration, when non-zero, gives each participant their own time
	// window of this length instead of the global begin/end span.
	Duration time.Duration

	Assign      []string
	InviteCode  string
	Maintainers []uuid.UUID

	Version int64
}

// PenaltyTier maps an elapsed-hours threshold past PenaltySince to the
// score multiplier paid by submissions at or beyond it.
type PenaltyTier struct {
	Hours float64
	Coef  float64
}

// JournalEntry is one submission event. The record id is a UUIDv7
// whose embedded timestamp is the authoritative submission instant;
// entries are immutable once appended.
type JournalEntry struct {
	RecordID uuid.UUID
	Pid      string
	Accept   bool
	Score    float64
}

// At returns the submission instant encoded in the record id.
func (j JournalEntry) At() time.Time {
	sec, nsec := j.RecordID.Time().UnixTime()
	return time.Unix(sec, nsec)
}

// NewRecordID mints a record id for a submission happening now.
func NewRecordID() uuid.UUID {
	return NewRecordIDAt(time.Now())
}

// NewRecordIDAt mints a UUIDv7 record id carrying the given instant.
func NewRecordIDAt(at time.Time) uuid.UUID {
	var u uuid.UUID
	if _, err := io.ReadFull(rand.Reader, u[6:]); err != nil {
		panic(err)
	}
	ms := uint64(at.UnixMilli())
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)
	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // RFC 4122 variant
	return u
}

// Status is the per-(contest, participant) record. The journal is
// append only; the flat stat fields and Detail are a derived snapshot
// of the journal and are only ever written conditioned on Rev.
type Status struct {
	ContestID string
	UserID    uuid.UUID

	Attend  int
	Journal []JournalEntry
	Rev     int64

	// Per-participant window, set on attendance when the contest has a
	// fixed Duration.
	StartAt *time.Time
	EndAt   *time.Time

	// Unranked participants keep their row on the scoreboard but do
	// not consume rank positions.
	Unranked bool

	Stats
}

// Stats is the derived snapshot produced by a rule's aggregator. Which
// fields are meaningful depends on the rule: ACM fills Accept/Time, OI
// fills Score, assignment fills Score/PenaltyScore/Time. Detail always
// holds the per-problem effective entries.
type Stats struct {
	Accept       int
	Time         int64 // seconds
	Score        float64
	PenaltyScore float64
	Detail       map[string]ProblemDetail
}

// ProblemDetail is the retained per-problem entry after applying the
// rule's replacement policy.
type ProblemDetail struct {
	RecordID     uuid.UUID
	Accept       bool
	Score        float64
	PenaltyScore float64
	Time         int64 // seconds
	NAccept      int   // rejections before the effective entry, ACM-style rules only
}

// Participant is the subset of the user directory needed for
// scoreboard rendering.
type Participant struct {
	ID        uuid.UUID
	Username  string
	Firstname *string
	Lastname  *string
}

// DisplayName prefers the real name over the username.
func (p Participant) DisplayName() string {
	if p.Firstname != nil && p.Lastname != nil {
		return *p.Firstname + " " + *p.Lastname
	}
	return p.Username
}

// Problem is the subset of the problem directory needed for scoreboard
// rendering.
type Problem struct {
	ID    string
	Title string
}
