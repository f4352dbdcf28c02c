package contest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sacensibas/backend/srvcerror"
	"github.com/stretchr/testify/require"
)

var testBegin = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func testContest(rule string, pids ...string) *Contest {
	return &Contest{
		Domain: "main",
		ID:     "test-contest",
		Title:  "Testa sacensības",
		Owner:  uuid.New(),
		Rule:   rule,
		Begin:  testBegin,
		End:    testBegin.Add(5 * time.Hour),
		Pids:   pids,
	}
}

func entryAt(at time.Time, pid string, accept bool, score float64) JournalEntry {
	return JournalEntry{
		RecordID: NewRecordIDAt(at),
		Pid:      pid,
		Accept:   accept,
		Score:    score,
	}
}

func newTestSrvc(t *testing.T) (*ContestSrvc, *inMemContestRepo, *inMemStatusRepo) {
	t.Helper()
	contests := newInMemContestRepo()
	statuses := newInMemStatusRepo()
	srvc := NewContestSrvc(contests, statuses, nil, nil)
	return srvc, contests, statuses
}

func mustAttend(t *testing.T, srvc *ContestSrvc, c *Contest, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, srvc.Attend(context.Background(), c, userID))
}

func errCodeOf(t *testing.T, err error) string {
	t.Helper()
	var se *srvcerror.Error
	require.ErrorAs(t, err, &se)
	return se.ErrorCode()
}
