package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"gig-calendar/core/resilience"
	"gig-calendar/core/storage"
	"gig-calendar/feature/calendar/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver uploads run reports to object storage so past runs stay
// auditable after the logs rotate away. Reports land under
// <prefix>/<venue-slug>/<run-id>.json.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	exec   *resilience.Executor
	logger *zap.Logger
}

// NewArchiver creates an archiver over the given bucket and prefix.
func NewArchiver(client storage.Client, bucket, prefix string, exec *resilience.Executor, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{client: client, bucket: bucket, prefix: prefix, exec: exec, logger: logger}
}

// Archive uploads one run report. Callers treat a failure here as a
// logging matter, never as a failed run.
func (a *Archiver) Archive(ctx context.Context, report *models.RunReport) error {
	data, err := encodeReport(report)
	if err != nil {
		return err
	}

	objectName := path.Join(a.prefix, report.VenueSlug, report.RunID+".json")

	err = a.exec.Do(ctx, "storage.put_report", func(ctx context.Context) error {
		_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: "application/json"})
		return err
	})
	if err != nil {
		return fmt.Errorf("upload run report %s: %w", objectName, err)
	}

	a.logger.Debug("Archived run report",
		zap.String("object", objectName),
		zap.Int("bytes", len(data)))
	return nil
}

func encodeReport(report *models.RunReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode run report: %w", err)
	}
	return data, nil
}
