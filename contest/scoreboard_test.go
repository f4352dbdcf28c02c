package contest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00:00", formatSeconds(0))
	assert.Equal(t, "01:10:05", formatSeconds(3600+600+5))
	assert.Equal(t, "27:00:00", formatSeconds(27*3600))
	assert.Equal(t, "-00:01:00", formatSeconds(-60))
}

func TestScoreboardHiddenWhileOngoing(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	c := testContest(RuleACM, "P1")
	require.NoError(t, contests.Save(context.Background(), c))
	srvc.now = func() time.Time { return testBegin.Add(time.Hour) }

	_, err := srvc.Scoreboard(context.Background(), AnonymousCapability{}, c, false, nil, nil)
	require.Error(t, err)
	assert.Equal(t, ErrCodeScoreboardHidden, errCodeOf(t, err))
}

func TestScoreboardOwnerSeesHiddenBoard(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	c := testContest(RuleACM, "P1")
	require.NoError(t, contests.Save(context.Background(), c))
	srvc.now = func() time.Time { return testBegin.Add(time.Hour) }

	rows, err := srvc.Scoreboard(context.Background(), ownerCapability{c.ID}, c, false, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
}

func TestScoreboardExportAndInteractiveAgreeOnRanks(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	c := testContest(RuleACM, "P1", "P2")
	require.NoError(t, contests.Save(context.Background(), c))
	srvc.now = func() time.Time { return c.End.Add(time.Hour) }

	alice, bob := uuid.New(), uuid.New()
	mustAttend(t, srvc, c, alice)
	mustAttend(t, srvc, c, bob)

	_, err := srvc.UpdateStatus(context.Background(), c, alice,
		entryAt(testBegin.Add(10*time.Minute), "P1", true, 100))
	require.NoError(t, err)
	_, err = srvc.UpdateStatus(context.Background(), c, bob,
		entryAt(testBegin.Add(20*time.Minute), "P1", false, 0))
	require.NoError(t, err)

	interactive, err := srvc.Scoreboard(context.Background(), nil, c, false, nil, nil)
	require.NoError(t, err)
	export, err := srvc.Scoreboard(context.Background(), nil, c, true, nil, nil)
	require.NoError(t, err)

	require.Len(t, interactive, 3) // header plus two participants
	require.Len(t, export, len(interactive))
	for i := 1; i < len(interactive); i++ {
		assert.Equal(t, export[i][0].Value, interactive[i][0].Value, "row %d rank", i)
	}
	// export adds total-time columns
	assert.Greater(t, len(export[0]), len(interactive[0]))
}

func TestScoreboardUsesPlaceholderForUntriedProblems(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	c := testContest(RuleOI, "P1", "P2")
	require.NoError(t, contests.Save(context.Background(), c))
	srvc.now = func() time.Time { return c.End.Add(time.Hour) }

	user := uuid.New()
	mustAttend(t, srvc, c, user)
	_, err := srvc.UpdateStatus(context.Background(), c, user,
		entryAt(testBegin.Add(10*time.Minute), "P1", true, 100))
	require.NoError(t, err)

	rows, err := srvc.Scoreboard(context.Background(), nil, c, false, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	row := rows[1]
	// rank, user, total score, P1, P2
	require.Len(t, row, 5)
	assert.Equal(t, "100", row[2].Value)
	assert.Equal(t, "100", row[3].Value)
	assert.NotNil(t, row[3].RecordID)
	assert.Equal(t, emptyCell, row[4].Value)
	assert.Nil(t, row[4].RecordID)
}

func TestScoreboardLockMasksLaterEntries(t *testing.T) {
	srvc, contests, statuses := newTestSrvc(t)
	c := testContest(RuleOI, "P1")
	require.NoError(t, contests.Save(context.Background(), c))
	srvc.now = func() time.Time { return c.End.Add(time.Hour) }

	user := uuid.New()
	mustAttend(t, srvc, c, user)
	_, err := srvc.UpdateStatus(context.Background(), c, user,
		entryAt(testBegin.Add(10*time.Minute), "P1", false, 40))
	require.NoError(t, err)
	_, err = srvc.UpdateStatus(context.Background(), c, user,
		entryAt(testBegin.Add(90*time.Minute), "P1", true, 100))
	require.NoError(t, err)

	lockAt := testBegin.Add(time.Hour)
	rows, err := srvc.Scoreboard(context.Background(), nil, c, false, nil, &lockAt)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// only the pre-lock submission counts
	assert.Equal(t, "40", rows[1][2].Value)

	// the stored record is untouched
	st, err := statuses.Get(context.Background(), c.ID, user)
	require.NoError(t, err)
	assert.Len(t, st.Journal, 2)
	assert.Equal(t, 140.0, st.Score)
}

func TestScoreboardContestLockRespectsUnlockedFlag(t *testing.T) {
	srvc, contests, _ := newTestSrvc(t)
	c := testContest(RuleOI, "P1")
	lockAt := testBegin.Add(time.Hour)
	c.LockAt = &lockAt
	require.NoError(t, contests.Save(context.Background(), c))
	srvc.now = func() time.Time { return c.End.Add(time.Hour) }

	user := uuid.New()
	mustAttend(t, srvc, c, user)
	_, err := srvc.UpdateStatus(context.Background(), c, user,
		entryAt(testBegin.Add(2*time.Hour), "P1", true, 100))
	require.NoError(t, err)

	rows, err := srvc.Scoreboard(context.Background(), nil, c, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0", rows[1][2].Value)

	c.Unlocked = true
	rows, err = srvc.Scoreboard(context.Background(), nil, c, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "100", rows[1][2].Value)
}

// ownerCapability owns a single contest by id.
type ownerCapability struct{ contestID string }

func (ownerCapability) HasPermission(perm string) bool { return false }
func (o ownerCapability) OwnsContest(c *Contest) bool  { return c.ID == o.contestID }
