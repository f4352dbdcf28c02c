package contest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/sacensibas/backend/s3bucket"
	"github.com/sacensibas/backend/srvcerror"
)

// ExportScoreboardCSV renders the export-mode scoreboard as CSV.
func (s *ContestSrvc) ExportScoreboardCSV(ctx context.Context, cap Capability, c *Contest,
	tr func(string) string, lockAt *time.Time) ([]byte, error) {

	rows, err := s.Scoreboard(ctx, cap, c, true, tr, lockAt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	record := make([]string, 0, 16)
	for _, row := range rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, cell.Value)
		}
		if err := w.Write(record); err != nil {
			return nil, srvcerror.ErrInternalSE().SetDebug(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}
	return buf.Bytes(), nil
}

// UploadScoreboard gzips the CSV export and stores it in the exports
// bucket, returning the object URL.
func (s *ContestSrvc) UploadScoreboard(ctx context.Context, cap Capability, c *Contest,
	tr func(string) string, lockAt *time.Time, bucket *s3bucket.S3Bucket) (string, error) {

	raw, err := s.ExportScoreboardCSV(ctx, cap, c, tr, lockAt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		return "", srvcerror.ErrInternalSE().SetDebug(err)
	}
	if err := gz.Close(); err != nil {
		return "", srvcerror.ErrInternalSE().SetDebug(err)
	}

	key := fmt.Sprintf("scoreboards/%s/%s-%d.csv.gz", c.Domain, c.ID, s.now().Unix())
	url, err := bucket.Upload(ctx, buf.Bytes(), key, "application/gzip")
	if err != nil {
		return "", srvcerror.ErrInternalSE().SetDebug(err)
	}
	return url, nil
}
