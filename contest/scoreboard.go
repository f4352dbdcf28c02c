package contest

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Cell is one scoreboard table cell. The first row of a rendered
// scoreboard holds the column headers; header cells reuse the column
// type with the translated title as value. Interactive problem cells
// carry the record id of the effective entry so the UI can link to it;
// export cells never do.
type Cell struct {
	Type     string     `json:"type"`
	Value    string     `json:"value"`
	RecordID *uuid.UUID `json:"record_id,omitempty"`
}

const (
	CellRank              = "rank"
	CellUser              = "user"
	CellTotalAccept       = "total_accept"
	CellTotalTime         = "total_time"
	CellTotalTimeStr      = "total_time_str"
	CellTotalScore        = "total_score"
	CellTotalPenaltyScore = "total_penalty_score"
	CellRecord            = "record"
	CellProblemStatus     = "problem_status"
	CellProblemScore      = "problem_score"
	CellProblemPenalty    = "problem_penalty_score"
	CellProblemTime       = "problem_time"
	CellProblemTimeStr    = "problem_time_str"
)

// emptyCell renders missing per-problem data.
const emptyCell = "-"

// NoTranslate is the identity translation function.
func NoTranslate(key string) string { return key }

// formatSeconds renders a second count as hh:mm:ss.
func formatSeconds(sec int64) string {
	neg := ""
	if sec < 0 {
		neg = "-"
		sec = -sec
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", neg, sec/3600, sec/60%60, sec%60)
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func rankCell(rank int) Cell {
	if rank == 0 {
		// unranked participants keep their row but no number
		return Cell{Type: CellRank, Value: "*"}
	}
	return Cell{Type: CellRank, Value: strconv.Itoa(rank)}
}

func userCell(udict map[uuid.UUID]Participant, id uuid.UUID) Cell {
	p, ok := udict[id]
	if !ok {
		return Cell{Type: CellUser, Value: id.String()}
	}
	return Cell{Type: CellUser, Value: p.DisplayName()}
}

func problemTitle(pdict map[string]Problem, pid string) string {
	if p, ok := pdict[pid]; ok && p.Title != "" {
		return p.Title
	}
	return pid
}
