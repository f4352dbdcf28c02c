package contest

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// ContestRow represents the contest record in DynamoDB. The range key
// is a UUIDv7 string, so a descending query by domain returns newest
// contests first. DocType mirrors the two document flavors (regular
// contest vs homework) the handler layer lists separately.
type ContestRow struct {
	Domain string `dynamo:"domain,hash"` // partition key
	Id     string `dynamo:"id,range"`

	DocType string `dynamo:"doc_type"` // "contest" or "homework"

	Title   string `dynamo:"title"`
	Content string `dynamo:"content"`
	Owner   string `dynamo:"owner"`
	Rule    string `dynamo:"rule"`

	BeginAt time.Time `dynamo:"begin_at"`
	EndAt   time.Time `dynamo:"end_at"`

	Pids   []string `dynamo:"pids"`
	Attend int      `dynamo:"attend"`
	Rated  bool     `dynamo:"rated"`

	PenaltySince *time.Time       `dynamo:"penalty_since,omitempty"`
	PenaltyTiers []PenaltyTierRow `dynamo:"penalty_tiers,omitempty"`

	LockAt   *time.Time `dynamo:"lock_at,omitempty"`
	Unlocked bool       `dynamo:"unlocked"`

	DurationSec int64 `dynamo:"duration_sec"`

	Assign      []string `dynamo:"assign,omitempty"`
	InviteCode  string   `dynamo:"invite_code,omitempty"`
	Maintainers []string `dynamo:"maintainers,omitempty"`

	Version int64 `dynamo:"version"` // For optimistic locking
}

type PenaltyTierRow struct {
	Hours float64 `dynamo:"hours"`
	Coef  float64 `dynamo:"coef"`
}

// DynamoDbContestTable represents the DynamoDB table.
type DynamoDbContestTable struct {
	ddbClient    *dynamodb.Client
	tableName    string
	contestTable dynamo.Table
}

// NewDynamoDbContestTable initializes a new DynamoDbContestTable.
func NewDynamoDbContestTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbContestTable {
	ddb := &DynamoDbContestTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	ddb.contestTable = db.Table(ddb.tableName)

	return ddb
}

// Get implements ContestRepo
func (ddb *DynamoDbContestTable) Get(ctx context.Context, domain string, id string) (*Contest, error) {
	row := new(ContestRow)

	err := ddb.contestTable.Get("domain", domain).Range("id", dynamo.Equal, id).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}

	return rowToContest(row)
}

// Save implements ContestRepo with optimistic locking on the version
// attribute, mirroring the conditional put used for the users table.
func (ddb *DynamoDbContestTable) Save(ctx context.Context, c *Contest) error {
	row := contestToRow(c)
	row.Version++

	put := ddb.contestTable.Put(row).
		If("attribute_not_exists(version) OR version = ?", row.Version-1)
	if err := put.Run(ctx); err != nil {
		if isCondCheckFailed(err) {
			return ErrVersionConflict
		}
		return err
	}
	c.Version = row.Version
	return nil
}

// List implements ContestRepo, newest first via the UUIDv7 range key.
func (ddb *DynamoDbContestTable) List(ctx context.Context, domain string) ([]*Contest, error) {
	var rows []ContestRow
	err := ddb.contestTable.Get("domain", domain).
		Order(dynamo.Descending).
		All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]*Contest, 0, len(rows))
	for i := range rows {
		c, err := rowToContest(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// AddAttend implements ContestRepo
func (ddb *DynamoDbContestTable) AddAttend(ctx context.Context, domain string, id string, delta int) error {
	return ddb.contestTable.Update("domain", domain).Range("id", id).
		Add("attend", delta).
		Run(ctx)
}

func contestToRow(c *Contest) *ContestRow {
	docType := "contest"
	if c.Rule == RuleAssignment {
		docType = "homework"
	}
	tiers := make([]PenaltyTierRow, 0, len(c.PenaltyTiers))
	for _, t := range c.PenaltyTiers {
		tiers = append(tiers, PenaltyTierRow{Hours: t.Hours, Coef: t.Coef})
	}
	maintainers := make([]string, 0, len(c.Maintainers))
	for _, m := range c.Maintainers {
		maintainers = append(maintainers, m.String())
	}
	return &ContestRow{
		Domain:       c.Domain,
		Id:           c.ID,
		DocType:      docType,
		Title:        c.Title,
		Content:      c.Content,
		Owner:        c.Owner.String(),
		Rule:         c.Rule,
		BeginAt:      c.Begin,
		EndAt:        c.End,
		Pids:         c.Pids,
		Attend:       c.Attend,
		Rated:        c.Rated,
		PenaltySince: c.PenaltySince,
		PenaltyTiers: tiers,
		LockAt:       c.LockAt,
		Unlocked:     c.Unlocked,
		DurationSec:  int64(c.Duration / time.Second),
		Assign:       c.Assign,
		InviteCode:   c.InviteCode,
		Maintainers:  maintainers,
		Version:      c.Version,
	}
}

func rowToContest(row *ContestRow) (*Contest, error) {
	owner, err := uuid.Parse(row.Owner)
	if err != nil {
		return nil, err
	}
	maintainers := make([]uuid.UUID, 0, len(row.Maintainers))
	for _, m := range row.Maintainers {
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, err
		}
		maintainers = append(maintainers, id)
	}
	tiers := make([]PenaltyTier, 0, len(row.PenaltyTiers))
	for _, t := range row.PenaltyTiers {
		tiers = append(tiers, PenaltyTier{Hours: t.Hours, Coef: t.Coef})
	}
	return &Contest{
		Domain:       row.Domain,
		ID:           row.Id,
		Title:        row.Title,
		Content:      row.Content,
		Owner:        owner,
		Rule:         row.Rule,
		Begin:        row.BeginAt,
		End:          row.EndAt,
		Pids:         row.Pids,
		Attend:       row.Attend,
		Rated:        row.Rated,
		PenaltySince: row.PenaltySince,
		PenaltyTiers: tiers,
		LockAt:       row.LockAt,
		Unlocked:     row.Unlocked,
		Duration:     time.Duration(row.DurationSec) * time.Second,
		Assign:       row.Assign,
		InviteCode:   row.InviteCode,
		Maintainers:  maintainers,
		Version:      row.Version,
	}, nil
}

// isCondCheckFailed reports whether a DynamoDB write was rejected by
// its condition expression.
func isCondCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
