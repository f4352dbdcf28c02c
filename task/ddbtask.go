// Package task is the problem directory: batch title lookups over the
// tasks table, consumed by scoreboard rendering.
package task

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/guregu/dynamo/v2"

	"github.com/sacensibas/backend/contest"
)

// TaskRow represents the task data structure.
type TaskRow struct {
	Id      string `dynamo:"id,hash"` // Primary key
	Title   string `dynamo:"title"`
	Version int    `dynamo:"version"` // For optimistic locking
}

// DynamoDbTaskTable represents the DynamoDB table.
type DynamoDbTaskTable struct {
	ddbClient *dynamodb.Client
	tableName string
	taskTable dynamo.Table
}

// NewDynamoDbTaskTable initializes a new DynamoDbTaskTable.
func NewDynamoDbTaskTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbTaskTable {
	ddb := &DynamoDbTaskTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	ddb.taskTable = db.Table(ddb.tableName)

	return ddb
}

// Get retrieves a task by ID from the DynamoDB table.
// Returns nil if the task is not found.
func (ddb *DynamoDbTaskTable) Get(ctx context.Context, id string) (*TaskRow, error) {
	task := new(TaskRow)

	err := ddb.taskTable.Get("id", id).One(ctx, task)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // Task not found
		}
		return nil, err
	}

	return task, nil
}

// BatchGet implements contest.ProblemDir. Unknown ids are simply
// absent from the result map.
func (ddb *DynamoDbTaskTable) BatchGet(ctx context.Context, ids []string) (map[string]contest.Problem, error) {
	if len(ids) == 0 {
		return map[string]contest.Problem{}, nil
	}

	keys := make([]dynamo.Keyed, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, dynamo.Keys{id})
	}

	var rows []TaskRow
	err := ddb.taskTable.Batch("id").Get(keys...).All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make(map[string]contest.Problem, len(rows))
	for _, row := range rows {
		out[row.Id] = contest.Problem{ID: row.Id, Title: row.Title}
	}
	return out, nil
}
