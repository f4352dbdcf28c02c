package contest

import (
	"time"

	"github.com/google/uuid"
)

// oiRule implements the OI format: ranking by total score, no time
// penalty, everything hidden until the contest ends.
type oiRule struct{}

func (oiRule) Name() string        { return RuleOI }
func (oiRule) DisplayName() string { return "OI" }
func (oiRule) Hidden() bool        { return false }

func (oiRule) Check(c *Contest) error { return nil }

// Stat keeps the latest entry per problem in the detail map while the
// total accumulates the score of every journal entry for a contest
// problem, resubmissions included.
func (oiRule) Stat(c *Contest, journal []JournalEntry) Stats {
	pids := pidSet(c)
	st := Stats{Detail: map[string]ProblemDetail{}}
	for _, j := range sortedJournal(journal) {
		if !pids[j.Pid] {
			continue
		}
		st.Score += j.Score
		st.Detail[j.Pid] = ProblemDetail{
			RecordID: j.RecordID,
			Accept:   j.Accept,
			Score:    j.Score,
		}
	}
	return st
}

func (oiRule) ScoreOf(st *Status) float64 { return st.Score }

func (oiRule) StatusLess(a, b *Status) bool {
	return a.Score > b.Score
}

func (oiRule) ShowRecord(c *Contest, now time.Time) bool {
	return now.After(c.End)
}

func (oiRule) ShowScoreboard(c *Contest, now time.Time) bool {
	return now.After(c.End)
}

func (oiRule) Scoreboard(export bool, tr func(string) string, c *Contest,
	ranked []RankedStatus,
	udict map[uuid.UUID]Participant, pdict map[string]Problem) [][]Cell {

	head := []Cell{
		{Type: CellRank, Value: tr("Rank")},
		{Type: CellUser, Value: tr("User")},
		{Type: CellTotalScore, Value: tr("Total Score")},
	}
	for _, pid := range c.Pids {
		head = append(head, Cell{Type: CellProblemScore, Value: problemTitle(pdict, pid)})
	}

	rows := make([][]Cell, 0, len(ranked)+1)
	rows = append(rows, head)
	for _, rs := range ranked {
		st := rs.Status
		row := []Cell{
			rankCell(rs.Rank),
			userCell(udict, st.UserID),
			{Type: CellTotalScore, Value: formatScore(st.Score)},
		}
		for _, pid := range c.Pids {
			d, tried := st.Detail[pid]
			if !tried {
				row = append(row, Cell{Type: CellProblemScore, Value: emptyCell})
				continue
			}
			cell := Cell{Type: CellProblemScore, Value: formatScore(d.Score)}
			if !export {
				rid := d.RecordID
				cell.RecordID = &rid
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}
