package main

import (
	"context"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/sacensibas/backend/conf"
	"github.com/sacensibas/backend/contest"
	"github.com/sacensibas/backend/http"
	"github.com/sacensibas/backend/s3bucket"
	"github.com/sacensibas/backend/submfeed"
	"github.com/sacensibas/backend/task"
	"github.com/sacensibas/backend/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	cfg, err := conf.Read("config.toml")
	if err != nil {
		slog.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AwsRegion))
	if err != nil {
		slog.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	ddbClient := dynamodb.NewFromConfig(awsCfg)
	contests := contest.NewDynamoDbContestTable(ddbClient, cfg.ContestTable)
	statuses := contest.NewDynamoDbStatusTable(ddbClient, cfg.StatusTable)
	participants := user.NewDynamoDbUsersTable(ddbClient, cfg.UserTable)
	problems := task.NewDynamoDbTaskTable(ddbClient, cfg.TaskTable)

	contestSrvc := contest.NewContestSrvc(contests, statuses, participants, problems)

	var exportBucket *s3bucket.S3Bucket
	if cfg.ExportBucket != "" {
		s3Client := s3.NewFromConfig(awsCfg)
		exportBucket = s3bucket.NewS3Bucket(s3Client, cfg.AwsRegion, cfg.ExportBucket)
	}

	if cfg.JudgedQueueUrl != "" {
		sqsClient := sqs.NewFromConfig(awsCfg)
		go func() {
			err := submfeed.StartReceivingJudgedFromSqs(ctx,
				cfg.JudgedQueueUrl, sqsClient,
				judgedHandler(ctx, contestSrvc),
				slog.Default())
			if err != nil {
				slog.Error("judged submission feed stopped", "error", err)
			}
		}()
	}

	httpServer := http.NewHttpServer(contestSrvc, exportBucket, []byte(jwtKey))

	slog.Info("starting server", "address", cfg.HttpAddress)
	err = httpServer.Start(cfg.HttpAddress)
	slog.Error("server stopped", "error", err)
}

// judgedHandler applies one judged-submission event to the scoring
// engine.
func judgedHandler(ctx context.Context, srvc *contest.ContestSrvc) func(msg submfeed.JudgedMsg) error {
	return func(msg submfeed.JudgedMsg) error {
		userID, err := msg.UserID()
		if err != nil {
			return err
		}
		submID, err := msg.SubmID()
		if err != nil {
			return err
		}

		c, err := srvc.GetContest(ctx, msg.Domain, msg.ContestID)
		if err != nil {
			return err
		}

		_, err = srvc.UpdateStatus(ctx, c, userID, contest.JournalEntry{
			RecordID: submID,
			Pid:      msg.Pid,
			Accept:   msg.Accept,
			Score:    msg.Score,
		})
		return err
	}
}
