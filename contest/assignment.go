package contest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// assignmentRule implements the homework format: ranking by
// penalty-adjusted score then total time, a piecewise score multiplier
// for submissions past PenaltySince, scoreboard always visible.
type assignmentRule struct{}

func (assignmentRule) Name() string        { return RuleAssignment }
func (assignmentRule) DisplayName() string { return "Assignment" }
func (assignmentRule) Hidden() bool        { return false }

func (assignmentRule) Check(c *Contest) error {
	if c.PenaltySince == nil {
		return newErrPenaltyConfigRequired()
	}
	if len(c.PenaltyTiers) == 0 {
		return newErrPenaltyConfigRequired()
	}
	prev := 0.0
	for _, tier := range c.PenaltyTiers {
		if tier.Hours <= prev || tier.Coef <= 0 || tier.Coef > 1 {
			return newErrPenaltyConfigRequired()
		}
		prev = tier.Hours
	}
	return nil
}

// Stat retains entries with the same replacement policy as ACM. Each
// effective entry pays the penalty coefficient in force at its own
// submission instant; elapsed time carries no rejection penalty.
func (assignmentRule) Stat(c *Contest, journal []JournalEntry) Stats {
	st := Stats{Detail: map[string]ProblemDetail{}}
	for pid, slot := range effectiveEntries(c, journal) {
		at := slot.entry.At()
		coef := penaltyCoef(c, at)
		d := ProblemDetail{
			RecordID:     slot.entry.RecordID,
			Accept:       slot.entry.Accept,
			Score:        slot.entry.Score,
			PenaltyScore: slot.entry.Score * coef,
			Time:         elapsedSeconds(c.Begin, at),
			NAccept:      slot.naccept,
		}
		st.Detail[pid] = d
		st.Score += d.Score
		st.PenaltyScore += d.PenaltyScore
		st.Time += d.Time
	}
	return st
}

func (assignmentRule) ScoreOf(st *Status) float64 { return st.PenaltyScore }

func (assignmentRule) StatusLess(a, b *Status) bool {
	if a.PenaltyScore != b.PenaltyScore {
		return a.PenaltyScore > b.PenaltyScore
	}
	return a.Time < b.Time
}

func (assignmentRule) ShowRecord(c *Contest, now time.Time) bool     { return true }
func (assignmentRule) ShowScoreboard(c *Contest, now time.Time) bool { return true }

func (assignmentRule) Scoreboard(export bool, tr func(string) string, c *Contest,
	ranked []RankedStatus,
	udict map[uuid.UUID]Participant, pdict map[string]Problem) [][]Cell {

	head := []Cell{
		{Type: CellRank, Value: tr("Rank")},
		{Type: CellUser, Value: tr("User")},
		{Type: CellTotalPenaltyScore, Value: tr("Score")},
	}
	if export {
		head = append(head, Cell{Type: CellTotalScore, Value: tr("Original Score")})
	}
	head = append(head, Cell{Type: CellTotalTimeStr, Value: tr("Total Time")})
	for _, pid := range c.Pids {
		if export {
			head = append(head,
				Cell{Type: CellProblemPenalty, Value: problemTitle(pdict, pid)},
				Cell{Type: CellProblemScore, Value: tr("Original Score")},
				Cell{Type: CellProblemTimeStr, Value: tr("Time")},
			)
		} else {
			head = append(head, Cell{Type: CellRecord, Value: problemTitle(pdict, pid)})
		}
	}

	rows := make([][]Cell, 0, len(ranked)+1)
	rows = append(rows, head)
	for _, rs := range ranked {
		st := rs.Status
		row := []Cell{
			rankCell(rs.Rank),
			userCell(udict, st.UserID),
			{Type: CellTotalPenaltyScore, Value: formatScore(st.PenaltyScore)},
		}
		if export {
			row = append(row, Cell{Type: CellTotalScore, Value: formatScore(st.Score)})
		}
		row = append(row, Cell{Type: CellTotalTimeStr, Value: formatSeconds(st.Time)})
		for _, pid := range c.Pids {
			d, tried := st.Detail[pid]
			if export {
				row = append(row, assignmentExportCells(d, tried)...)
				continue
			}
			row = append(row, assignmentRecordCell(d, tried))
		}
		rows = append(rows, row)
	}
	return rows
}

func assignmentRecordCell(d ProblemDetail, tried bool) Cell {
	if !tried {
		return Cell{Type: CellRecord, Value: emptyCell}
	}
	rid := d.RecordID
	return Cell{
		Type:     CellRecord,
		Value:    fmt.Sprintf("%s / %s", formatScore(d.PenaltyScore), formatSeconds(d.Time)),
		RecordID: &rid,
	}
}

func assignmentExportCells(d ProblemDetail, tried bool) []Cell {
	if !tried {
		return []Cell{
			{Type: CellProblemPenalty, Value: emptyCell},
			{Type: CellProblemScore, Value: emptyCell},
			{Type: CellProblemTimeStr, Value: emptyCell},
		}
	}
	return []Cell{
		{Type: CellProblemPenalty, Value: formatScore(d.PenaltyScore)},
		{Type: CellProblemScore, Value: formatScore(d.Score)},
		{Type: CellProblemTimeStr, Value: formatSeconds(d.Time)},
	}
}
