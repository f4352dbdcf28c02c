package contest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContestValidation(t *testing.T) {
	srvc, _, _ := newTestSrvc(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(c *Contest)
		errCode string
	}{
		{"empty title", func(c *Contest) { c.Title = "   " }, ErrCodeInvalidTitle},
		{"title too long", func(c *Contest) { c.Title = strings.Repeat("x", 129) }, ErrCodeInvalidTitle},
		{"content too long", func(c *Contest) { c.Content = strings.Repeat("x", 64*1024+1) }, ErrCodeContentTooLong},
		{"begin after end", func(c *Contest) { c.End = c.Begin.Add(-time.Hour) }, ErrCodeInvalidTimeRange},
		{"begin equals end", func(c *Contest) { c.End = c.Begin }, ErrCodeInvalidTimeRange},
		{"unknown rule", func(c *Contest) { c.Rule = "codegolf" }, ErrCodeInvalidRule},
		{"assignment without penalty config", func(c *Contest) { c.Rule = RuleAssignment }, ErrCodePenaltyConfigRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testContest(RuleACM, "P1")
			tc.mutate(c)
			_, err := srvc.CreateContest(ctx, c)
			require.Error(t, err)
			assert.Equal(t, tc.errCode, errCodeOf(t, err))
		})
	}
}

func TestCreateContestMintsSortableID(t *testing.T) {
	srvc, _, _ := newTestSrvc(t)
	ctx := context.Background()

	first := testContest(RuleACM, "P1")
	first.ID = ""
	_, err := srvc.CreateContest(ctx, first)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)

	// ids only order across millisecond boundaries
	time.Sleep(2 * time.Millisecond)

	second := testContest(RuleACM, "P1")
	second.ID = ""
	_, err = srvc.CreateContest(ctx, second)
	require.NoError(t, err)

	// v7 ids sort by creation instant, so the listing comes out
	// newest first
	list, err := srvc.ListContests(ctx, "main")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestEditContestRejectsStaleVersion(t *testing.T) {
	srvc, _, _ := newTestSrvc(t)
	ctx := context.Background()

	c := testContest(RuleACM, "P1")
	created, err := srvc.CreateContest(ctx, c)
	require.NoError(t, err)

	stale := *created
	created.Title = "Pirmais labojums"
	_, err = srvc.EditContest(ctx, created)
	require.NoError(t, err)

	stale.Title = "Novecojis labojums"
	_, err = srvc.EditContest(ctx, &stale)
	require.Error(t, err)
	assert.Equal(t, ErrCodeContestConflict, errCodeOf(t, err))
}

func TestGetContestNotFound(t *testing.T) {
	srvc, _, _ := newTestSrvc(t)
	_, err := srvc.GetContest(context.Background(), "main", "nope")
	require.Error(t, err)
	assert.Equal(t, ErrCodeContestNotFound, errCodeOf(t, err))
}

func TestAttendIsExactlyOnceUnderConcurrency(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	ctx := context.Background()
	c := testContest(RuleACM, "P1")
	require.NoError(t, contests.Save(ctx, c))
	user := uuid.New()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = srvc.Attend(ctx, c, user)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, ErrCodeAlreadyAttended, errCodeOf(t, err))
	}
	assert.Equal(t, 1, ok)

	stored, err := contests.Get(ctx, c.Domain, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Attend)
}

func TestAttendPersonalWindowCappedAtContestEnd(t *testing.T) {
	srvc, contests, statuses := newTestSrvc(t)
	ctx := context.Background()
	c := testContest(RuleACM, "P1")
	c.Duration = 2 * time.Hour
	require.NoError(t, contests.Save(ctx, c))

	now := c.End.Add(-time.Hour)
	srvc.now = func() time.Time { return now }

	user := uuid.New()
	mustAttend(t, srvc, c, user)

	st, err := statuses.Get(ctx, c.ID, user)
	require.NoError(t, err)
	require.NotNil(t, st.StartAt)
	require.NotNil(t, st.EndAt)
	assert.Equal(t, now, *st.StartAt)
	// a 2 hour window started 1 hour before the end gets clipped
	assert.Equal(t, c.End, *st.EndAt)
}

func TestUpdateStatusRequiresAttendance(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	ctx := context.Background()
	c := testContest(RuleACM, "P1")
	require.NoError(t, contests.Save(ctx, c))

	_, err := srvc.UpdateStatus(ctx, c, uuid.New(),
		entryAt(testBegin.Add(time.Minute), "P1", true, 100))
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotAttended, errCodeOf(t, err))
}

func TestUpdateStatusWritesSnapshot(t *testing.T) {
	srvc, contests, statuses := newTestSrvc(t)
	ctx := context.Background()
	c := testContest(RuleACM, "P1")
	require.NoError(t, contests.Save(ctx, c))
	user := uuid.New()
	mustAttend(t, srvc, c, user)

	st, err := srvc.UpdateStatus(ctx, c, user,
		entryAt(testBegin.Add(10*time.Minute), "P1", true, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, st.Accept)

	stored, err := statuses.Get(ctx, c.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Accept)
	assert.Len(t, stored.Journal, 1)
}

// conflictingStatusRepo injects a concurrent append before delegating
// the first n WriteStat calls, so the delegate rejects them with a
// revision mismatch.
type conflictingStatusRepo struct {
	StatusRepo
	conflicts int
	extra     JournalEntry
}

func (r *conflictingStatusRepo) WriteStat(ctx context.Context, contestID string, userID uuid.UUID, rev int64, stats Stats) error {
	if r.conflicts > 0 {
		r.conflicts--
		if _, err := r.StatusRepo.PushJournal(ctx, contestID, userID, r.extra); err != nil {
			return err
		}
	}
	return r.StatusRepo.WriteStat(ctx, contestID, userID, rev, stats)
}

func TestUpdateStatusRetriesOnConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	inner := newInMemStatusRepo()
	repo := &conflictingStatusRepo{
		StatusRepo: inner,
		conflicts:  1,
		extra:      entryAt(testBegin.Add(15*time.Minute), "P2", true, 100),
	}
	srvc := NewContestSrvc(newInMemContestRepo(), repo, nil, nil)

	c := testContest(RuleACM, "P1", "P2")
	user := uuid.New()
	mustAttend(t, srvc, c, user)

	st, err := srvc.UpdateStatus(ctx, c, user,
		entryAt(testBegin.Add(10*time.Minute), "P1", true, 100))
	require.NoError(t, err)

	// the retried snapshot was computed over the superset journal,
	// covering the concurrently appended entry as well
	assert.Equal(t, 2, st.Accept)
	assert.Len(t, st.Journal, 2)

	stored, err := inner.Get(ctx, c.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Accept)
}

func TestUpdateStatusGivesUpAfterRepeatedConflicts(t *testing.T) {
	ctx := context.Background()
	inner := newInMemStatusRepo()
	repo := &conflictingStatusRepo{
		StatusRepo: inner,
		conflicts:  maxStatWriteAttempts,
		extra:      entryAt(testBegin.Add(15*time.Minute), "P2", true, 100),
	}
	srvc := NewContestSrvc(newInMemContestRepo(), repo, nil, nil)

	c := testContest(RuleACM, "P1", "P2")
	user := uuid.New()
	mustAttend(t, srvc, c, user)

	_, err := srvc.UpdateStatus(ctx, c, user,
		entryAt(testBegin.Add(10*time.Minute), "P1", true, 100))
	require.Error(t, err)
	assert.Equal(t, ErrCodeStatusConflict, errCodeOf(t, err))

	// the journal append itself survives; only the snapshot write
	// was abandoned
	stored, err := inner.Get(ctx, c.ID, user)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(stored.Journal), 1)
}

func TestStaleSnapshotWriteKeepsJournalIntact(t *testing.T) {
	ctx := context.Background()
	statuses := newInMemStatusRepo()
	user := uuid.New()
	require.NoError(t, statuses.Attend(ctx, "c1", user, nil, nil))

	st, err := statuses.PushJournal(ctx, "c1", user,
		entryAt(testBegin.Add(time.Minute), "P1", true, 100))
	require.NoError(t, err)
	_, err = statuses.PushJournal(ctx, "c1", user,
		entryAt(testBegin.Add(2*time.Minute), "P1", false, 0))
	require.NoError(t, err)

	err = statuses.WriteStat(ctx, "c1", user, st.Rev, Stats{Accept: 1})
	assert.ErrorIs(t, err, ErrRevMismatch)

	cur, err := statuses.Get(ctx, "c1", user)
	require.NoError(t, err)
	assert.Len(t, cur.Journal, 2)
	assert.Equal(t, 0, cur.Accept)
}

// failingStatusRepo rejects snapshot writes for one participant with a
// permanent storage error.
type failingStatusRepo struct {
	StatusRepo
	failFor uuid.UUID
}

var errStorageDown = errors.New("storage unavailable")

func (r *failingStatusRepo) WriteStat(ctx context.Context, contestID string, userID uuid.UUID, rev int64, stats Stats) error {
	if userID == r.failFor {
		return errStorageDown
	}
	return r.StatusRepo.WriteStat(ctx, contestID, userID, rev, stats)
}

func TestRecalcStatusIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	inner := newInMemStatusRepo()
	alice, bob := uuid.New(), uuid.New()
	repo := &failingStatusRepo{StatusRepo: inner, failFor: bob}
	srvc := NewContestSrvc(newInMemContestRepo(), repo, nil, nil)

	c := testContest(RuleOI, "P1")
	mustAttend(t, srvc, c, alice)
	mustAttend(t, srvc, c, bob)
	_, err := inner.PushJournal(ctx, c.ID, alice,
		entryAt(testBegin.Add(time.Minute), "P1", true, 100))
	require.NoError(t, err)
	_, err = inner.PushJournal(ctx, c.ID, bob,
		entryAt(testBegin.Add(time.Minute), "P1", true, 100))
	require.NoError(t, err)

	err = srvc.RecalcStatus(ctx, c)
	require.Error(t, err)
	assert.Equal(t, ErrCodeRecalcFailed, errCodeOf(t, err))
	assert.ErrorIs(t, err, errStorageDown)

	// the healthy participant was still rebuilt
	st, err := inner.Get(ctx, c.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, 100.0, st.Score)
}

func TestRecalcStatusRebuildsAfterRuleEdit(t *testing.T) {
	srvc, contests, statuses := newTestSrvc(t)
	ctx := context.Background()
	c := testContest(RuleOI, "P1")
	require.NoError(t, contests.Save(ctx, c))
	user := uuid.New()
	mustAttend(t, srvc, c, user)

	_, err := srvc.UpdateStatus(ctx, c, user,
		entryAt(testBegin.Add(time.Minute), "P1", false, 40))
	require.NoError(t, err)
	_, err = srvc.UpdateStatus(ctx, c, user,
		entryAt(testBegin.Add(2*time.Minute), "P1", true, 100))
	require.NoError(t, err)

	c.Rule = RuleACM
	require.NoError(t, srvc.RecalcStatus(ctx, c))

	st, err := statuses.Get(ctx, c.ID, user)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Accept)
	assert.Equal(t, 0.0, st.Score)
}

func TestSortedStatusesFollowsRuleOrder(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	ctx := context.Background()
	c := testContest(RuleOI, "P1")
	require.NoError(t, contests.Save(ctx, c))

	low, high := uuid.New(), uuid.New()
	mustAttend(t, srvc, c, low)
	mustAttend(t, srvc, c, high)
	_, err := srvc.UpdateStatus(ctx, c, low,
		entryAt(testBegin.Add(time.Minute), "P1", false, 40))
	require.NoError(t, err)
	_, err = srvc.UpdateStatus(ctx, c, high,
		entryAt(testBegin.Add(time.Minute), "P1", true, 100))
	require.NoError(t, err)

	sts, err := srvc.SortedStatuses(ctx, c)
	require.NoError(t, err)
	require.Len(t, sts, 2)
	assert.Equal(t, high, sts[0].UserID)
	assert.Equal(t, low, sts[1].UserID)
}

func TestGetStatusNotFound(t *testing.T) {
	srvc, _, _ := newTestSrvc(t)
	_, err := srvc.GetStatus(context.Background(), "c1", uuid.New())
	require.Error(t, err)
	assert.Equal(t, ErrCodeStatusNotFound, errCodeOf(t, err))
}
