// Package submfeed consumes judged-submission events from SQS and
// feeds them to the contest scoring engine as journal entries.
package submfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
)

// JudgedMsg is one judged-submission event. SubmUuid is the
// submission's UUIDv7, so the scoring engine can recover the
// submission instant from the id alone.
type JudgedMsg struct {
	SubmUuid  string  `json:"subm_uuid"`
	Domain    string  `json:"domain"`
	ContestID string  `json:"contest_id"`
	UserUuid  string  `json:"user_uuid"`
	Pid       string  `json:"pid"`
	Accept    bool    `json:"accept"`
	Score     float64 `json:"score"`
}

// SubmID parses the submission record id.
func (m JudgedMsg) SubmID() (uuid.UUID, error) {
	return uuid.Parse(m.SubmUuid)
}

// UserID parses the participant id.
func (m JudgedMsg) UserID() (uuid.UUID, error) {
	return uuid.Parse(m.UserUuid)
}

// StartReceivingJudgedFromSqs receives msgs until ctx is cancelled and
// passes them to the handler function. A message is deleted from the
// queue only after the handler returns nil; failed messages reappear
// after the visibility timeout.
func StartReceivingJudgedFromSqs(ctx context.Context,
	sqsUrl string, client *sqs.Client,
	handleFunc func(msg JudgedMsg) error,
	logger *slog.Logger,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			output, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
				QueueUrl:            aws.String(sqsUrl),
				MaxNumberOfMessages: 10,
				WaitTimeSeconds:     1,
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error("failed to receive messages", "error", err)
				continue
			}

			for _, msg := range output.Messages {
				if msg.Body == nil {
					return fmt.Errorf("message body is nil")
				}

				var judged JudgedMsg
				err = json.Unmarshal([]byte(*msg.Body), &judged)
				if err != nil {
					logger.Error("failed to unmarshal message", "error", err)
					continue
				}

				if err := handleFunc(judged); err != nil {
					logger.Error("failed to handle judged submission",
						"subm_uuid", judged.SubmUuid, "error", err)
					continue
				}

				if msg.ReceiptHandle == nil {
					return fmt.Errorf("receipt handle is nil")
				}
				_, err = client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
					QueueUrl:      aws.String(sqsUrl),
					ReceiptHandle: msg.ReceiptHandle,
				})
				if err != nil {
					logger.Error("failed to delete message", "error", err)
				}
			}
		}
	}
}
