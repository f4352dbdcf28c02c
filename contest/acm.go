package contest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// acmRule implements the ACM/ICPC format: ranking by solved count then
// total time, a 20 minute penalty per rejection on eventually accepted
// problems, records and scoreboard hidden until the contest ends.
type acmRule struct{}

func (acmRule) Name() string        { return RuleACM }
func (acmRule) DisplayName() string { return "ACM/ICPC" }
func (acmRule) Hidden() bool        { return false }

func (acmRule) Check(c *Contest) error { return nil }

const acmRejectionPenaltySec = 20 * 60

func (acmRule) Stat(c *Contest, journal []JournalEntry) Stats {
	st := Stats{Detail: map[string]ProblemDetail{}}
	for pid, slot := range effectiveEntries(c, journal) {
		elapsed := elapsedSeconds(c.Begin, slot.entry.At()) +
			acmRejectionPenaltySec*int64(slot.naccept)
		d := ProblemDetail{
			RecordID: slot.entry.RecordID,
			Accept:   slot.entry.Accept,
			Score:    slot.entry.Score,
			Time:     elapsed,
			NAccept:  slot.naccept,
		}
		st.Detail[pid] = d
		if d.Accept {
			st.Accept++
			st.Time += elapsed
		}
	}
	return st
}

func (acmRule) ScoreOf(st *Status) float64 { return float64(st.Accept) }

func (acmRule) StatusLess(a, b *Status) bool {
	if a.Accept != b.Accept {
		return a.Accept > b.Accept
	}
	return a.Time < b.Time
}

func (acmRule) ShowRecord(c *Contest, now time.Time) bool {
	return now.After(c.End)
}

func (acmRule) ShowScoreboard(c *Contest, now time.Time) bool {
	return now.After(c.End)
}

func (acmRule) Scoreboard(export bool, tr func(string) string, c *Contest,
	ranked []RankedStatus,
	udict map[uuid.UUID]Participant, pdict map[string]Problem) [][]Cell {

	head := []Cell{
		{Type: CellRank, Value: tr("Rank")},
		{Type: CellUser, Value: tr("User")},
		{Type: CellTotalAccept, Value: tr("Solved")},
	}
	if export {
		head = append(head,
			Cell{Type: CellTotalTime, Value: tr("Total Time (Seconds)")},
			Cell{Type: CellTotalTimeStr, Value: tr("Total Time")},
		)
	}
	for _, pid := range c.Pids {
		if export {
			head = append(head,
				Cell{Type: CellProblemStatus, Value: problemTitle(pdict, pid)},
				Cell{Type: CellProblemTime, Value: tr("Time (Seconds)")},
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
			{Type: CellTotalAccept, Value: strconv.Itoa(st.Accept)},
		}
		if export {
			row = append(row,
				Cell{Type: CellTotalTime, Value: strconv.FormatInt(st.Time, 10)},
				Cell{Type: CellTotalTimeStr, Value: formatSeconds(st.Time)},
			)
		}
		for _, pid := range c.Pids {
			d, tried := st.Detail[pid]
			if export {
				row = append(row, acmExportCells(d, tried)...)
				continue
			}
			row = append(row, acmRecordCell(d, tried))
		}
		rows = append(rows, row)
	}
	return rows
}

func acmRecordCell(d ProblemDetail, tried bool) Cell {
	if !tried {
		return Cell{Type: CellRecord, Value: emptyCell}
	}
	rid := d.RecordID
	if d.Accept {
		value := "✓ " + formatSeconds(d.Time)
		if d.NAccept > 0 {
			value = fmt.Sprintf("✓+%d %s", d.NAccept, formatSeconds(d.Time))
		}
		return Cell{Type: CellRecord, Value: value, RecordID: &rid}
	}
	return Cell{Type: CellRecord, Value: "✗", RecordID: &rid}
}

func acmExportCells(d ProblemDetail, tried bool) []Cell {
	if !tried {
		return []Cell{
			{Type: CellProblemStatus, Value: emptyCell},
			{Type: CellProblemTime, Value: emptyCell},
			{Type: CellProblemTimeStr, Value: emptyCell},
		}
	}
	status := "RJ"
	if d.Accept {
		status = "AC"
	}
	return []Cell{
		{Type: CellProblemStatus, Value: status},
		{Type: CellProblemTime, Value: strconv.FormatInt(d.Time, 10)},
		{Type: CellProblemTimeStr, Value: formatSeconds(d.Time)},
	}
}
