// Package user is the participant directory: batch display-field
// lookups over the users table, consumed by scoreboard rendering.
package user

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"

	"github.com/sacensibas/backend/contest"
)

// UserRow represents the user data structure.
type UserRow struct {
	Uuid      string  `dynamo:"uuid,hash"` // Primary key
	Username  string  `dynamo:"username"`
	Email     string  `dynamo:"email"`
	Firstname *string `dynamo:"firstname"`
	Lastname  *string `dynamo:"lastname"`
	Version   int     `dynamo:"version"` // For optimistic locking
}

// DynamoDbUsersTable represents the DynamoDB table.
type DynamoDbUsersTable struct {
	ddbClient  *dynamodb.Client
	tableName  string
	usersTable dynamo.Table
}

// NewDynamoDbUsersTable initializes a new DynamoDbUsersTable.
func NewDynamoDbUsersTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbUsersTable {
	ddb := &DynamoDbUsersTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	ddb.usersTable = db.Table(ddb.tableName)

	return ddb
}

// Get retrieves a user by ID from the DynamoDB table.
// Returns nil if the user is not found.
func (ddb *DynamoDbUsersTable) Get(ctx context.Context, id uuid.UUID) (*UserRow, error) {
	user := new(UserRow)

	err := ddb.usersTable.Get("uuid", id.String()).One(ctx, user)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return user, nil
}

// BatchGet implements contest.ParticipantDir. Unknown ids are simply
// absent from the result map.
func (ddb *DynamoDbUsersTable) BatchGet(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]contest.Participant, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]contest.Participant{}, nil
	}

	keys := make([]dynamo.Keyed, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, dynamo.Keys{id.String()})
	}

	var rows []UserRow
	err := ddb.usersTable.Batch("uuid").Get(keys...).All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]contest.Participant, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.Uuid)
		if err != nil {
			return nil, err
		}
		out[id] = contest.Participant{
			ID:        id,
			Username:  row.Username,
			Firstname: row.Firstname,
			Lastname:  row.Lastname,
		}
	}
	return out, nil
}
