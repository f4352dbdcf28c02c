package contest

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// StatusRow represents the per-(contest, participant) status document.
// The journal list and the rev counter are only ever touched together
// through a single update expression; the flat stat fields are written
// separately, conditioned on rev.
type StatusRow struct {
	ContestID string `dynamo:"contest_id,hash"` // partition key
	UserUuid  string `dynamo:"user_uuid,range"`

	Attend  int          `dynamo:"attend"`
	Journal []JournalRow `dynamo:"journal"`
	Rev     int64        `dynamo:"rev"`

	Unranked bool       `dynamo:"unranked"`
	StartAt  *time.Time `dynamo:"start_at,omitempty"`
	EndAt    *time.Time `dynamo:"end_at,omitempty"`

	Accept       int                  `dynamo:"accept"`
	TimeSec      int64                `dynamo:"time_sec"`
	Score        float64              `dynamo:"score"`
	PenaltyScore float64              `dynamo:"penalty_score"`
	Detail       map[string]DetailRow `dynamo:"detail,omitempty"`
}

type JournalRow struct {
	RecordID string  `dynamo:"rid"`
	Pid      string  `dynamo:"pid"`
	Accept   bool    `dynamo:"accept"`
	Score    float64 `dynamo:"score"`
}

type DetailRow struct {
	RecordID     string  `dynamo:"rid"`
	Accept       bool    `dynamo:"accept"`
	Score        float64 `dynamo:"score"`
	PenaltyScore float64 `dynamo:"penalty_score"`
	TimeSec      int64   `dynamo:"time_sec"`
	NAccept      int     `dynamo:"naccept"`
}

// DynamoDbStatusTable represents the DynamoDB table.
type DynamoDbStatusTable struct {
	ddbClient   *dynamodb.Client
	tableName   string
	statusTable dynamo.Table
}

// NewDynamoDbStatusTable initializes a new DynamoDbStatusTable.
func NewDynamoDbStatusTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbStatusTable {
	ddb := &DynamoDbStatusTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	ddb.statusTable = db.Table(ddb.tableName)

	return ddb
}

// Get implements StatusRepo
func (ddb *DynamoDbStatusTable) Get(ctx context.Context, contestID string, userID uuid.UUID) (*Status, error) {
	row := new(StatusRow)

	err := ddb.statusTable.Get("contest_id", contestID).
		Range("user_uuid", dynamo.Equal, userID.String()).
		One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}

	return rowToStatus(row)
}

// List implements StatusRepo
func (ddb *DynamoDbStatusTable) List(ctx context.Context, contestID string) ([]*Status, error) {
	var rows []StatusRow
	err := ddb.statusTable.Get("contest_id", contestID).All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]*Status, 0, len(rows))
	for i := range rows {
		st, err := rowToStatus(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// MultiGet implements StatusRepo
func (ddb *DynamoDbStatusTable) MultiGet(ctx context.Context, contestID string, userIDs []uuid.UUID) ([]*Status, error) {
	keys := make([]dynamo.Keyed, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, dynamo.Keys{contestID, id.String()})
	}

	var rows []StatusRow
	err := ddb.statusTable.Batch("contest_id", "user_uuid").
		Get(keys...).
		All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]*Status, 0, len(rows))
	for i := range rows {
		st, err := rowToStatus(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// Attend implements StatusRepo. The conditional put is the capped 0→1
// increment: it succeeds exactly once per participant per contest,
// every concurrent attempt is rejected by the condition.
func (ddb *DynamoDbStatusTable) Attend(ctx context.Context, contestID string, userID uuid.UUID, startAt, endAt *time.Time) error {
	row := StatusRow{
		ContestID: contestID,
		UserUuid:  userID.String(),
		Attend:    1,
		Journal:   []JournalRow{},
		Rev:       0,
		StartAt:   startAt,
		EndAt:     endAt,
	}

	put := ddb.statusTable.Put(row).
		If("attribute_not_exists(attend) OR attend < ?", 1)
	if err := put.Run(ctx); err != nil {
		if isCondCheckFailed(err) {
			return ErrAlreadyAttended
		}
		return err
	}
	return nil
}

// PushJournal implements StatusRepo. Append and revision bump are one
// update expression, so concurrent appends serialize inside DynamoDB
// and each writer observes a distinct rev.
func (ddb *DynamoDbStatusTable) PushJournal(ctx context.Context, contestID string, userID uuid.UUID, entry JournalEntry) (*Status, error) {
	var row StatusRow
	err := ddb.statusTable.Update("contest_id", contestID).
		Range("user_uuid", userID.String()).
		Append("journal", []JournalRow{journalToRow(entry)}).
		Add("rev", 1).
		If("attend >= ?", 1).
		Value(ctx, &row)
	if err != nil {
		if isCondCheckFailed(err) {
			return nil, ErrNotAttended
		}
		return nil, err
	}

	return rowToStatus(&row)
}

// WriteStat implements StatusRepo. The condition on rev rejects stale
// snapshots: if another append landed after this snapshot was
// computed, the write is discarded and the caller retries from a
// fresh read.
func (ddb *DynamoDbStatusTable) WriteStat(ctx context.Context, contestID string, userID uuid.UUID, rev int64, stats Stats) error {
	detail := make(map[string]DetailRow, len(stats.Detail))
	for pid, d := range stats.Detail {
		detail[pid] = DetailRow{
			RecordID:     d.RecordID.String(),
			Accept:       d.Accept,
			Score:        d.Score,
			PenaltyScore: d.PenaltyScore,
			TimeSec:      d.Time,
			NAccept:      d.NAccept,
		}
	}

	err := ddb.statusTable.Update("contest_id", contestID).
		Range("user_uuid", userID.String()).
		Set("accept", stats.Accept).
		Set("time_sec", stats.Time).
		Set("score", stats.Score).
		Set("penalty_score", stats.PenaltyScore).
		Set("detail", detail).
		If("rev = ?", rev).
		Run(ctx)
	if err != nil {
		if isCondCheckFailed(err) {
			return ErrRevMismatch
		}
		return err
	}
	return nil
}

func journalToRow(j JournalEntry) JournalRow {
	return JournalRow{
		RecordID: j.RecordID.String(),
		Pid:      j.Pid,
		Accept:   j.Accept,
		Score:    j.Score,
	}
}

func rowToStatus(row *StatusRow) (*Status, error) {
	userID, err := uuid.Parse(row.UserUuid)
	if err != nil {
		return nil, err
	}

	journal := make([]JournalEntry, 0, len(row.Journal))
	for _, jr := range row.Journal {
		rid, err := uuid.Parse(jr.RecordID)
		if err != nil {
			return nil, err
		}
		journal = append(journal, JournalEntry{
			RecordID: rid,
			Pid:      jr.Pid,
			Accept:   jr.Accept,
			Score:    jr.Score,
		})
	}

	var detail map[string]ProblemDetail
	if len(row.Detail) > 0 {
		detail = make(map[string]ProblemDetail, len(row.Detail))
		for pid, dr := range row.Detail {
			rid, err := uuid.Parse(dr.RecordID)
			if err != nil {
				return nil, err
			}
			detail[pid] = ProblemDetail{
				RecordID:     rid,
				Accept:       dr.Accept,
				Score:        dr.Score,
				PenaltyScore: dr.PenaltyScore,
				Time:         dr.TimeSec,
				NAccept:      dr.NAccept,
			}
		}
	}

	return &Status{
		ContestID: row.ContestID,
		UserID:    userID,
		Attend:    row.Attend,
		Journal:   journal,
		Rev:       row.Rev,
		Unranked:  row.Unranked,
		StartAt:   row.StartAt,
		EndAt:     row.EndAt,
		Stats: Stats{
			Accept:       row.Accept,
			Time:         row.TimeSec,
			Score:        row.Score,
			PenaltyScore: row.PenaltyScore,
			Detail:       detail,
		},
	}, nil
}
