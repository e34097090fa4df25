package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"gig-calendar/core/storage"
	"gig-calendar/feature/calendar/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Extractor produces the candidate events for one venue. The month context
// is the venue's current reconciled calendar, supplied so implementations
// can avoid re-extracting what is already known.
type Extractor interface {
	Extract(ctx context.Context, venue models.Venue, monthContext []models.Event) ([]models.RawCandidate, error)
}

// BatchConsumer marks extractors whose batches must be acknowledged after a
// successful run, so the same batch is not replayed on the next one.
type BatchConsumer interface {
	Consume(ctx context.Context, venue models.Venue) error
}

// PendingLister reports which venue slugs currently have a batch waiting.
type PendingLister interface {
	PendingSlugs(ctx context.Context) ([]string, error)
}

// StorageExtractor reads candidate batches from object storage.
type StorageExtractor struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewStorageExtractor creates an extractor over the given bucket and prefix.
func NewStorageExtractor(client storage.Client, bucket, prefix string, logger *zap.Logger) *StorageExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageExtractor{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

func (e *StorageExtractor) objectName(slug string) string {
	return path.Join(e.prefix, slug+".json")
}

// Extract reads the venue's pending batch. A missing object means the
// scraper has nothing for this venue: an empty batch, not an error.
func (e *StorageExtractor) Extract(ctx context.Context, venue models.Venue, _ []models.Event) ([]models.RawCandidate, error) {
	objectName := e.objectName(venue.Slug)

	reader, err := e.client.GetObject(ctx, e.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate batch %s: %w", objectName, err)
	}
	defer reader.Close()

	// The minio client defers errors to the first read, so NoSuchKey can
	// surface here instead of at GetObject.
	data, err := io.ReadAll(reader)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read candidate batch %s: %w", objectName, err)
	}

	var candidates []models.RawCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidate batch %s: %w", objectName, err)
	}

	for i := range candidates {
		candidates[i].VenueID = venue.ID
	}

	e.logger.Debug("Loaded candidate batch",
		zap.String("venue", venue.Slug),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// Consume removes the venue's batch after a successful run so the next run
// does not replay it. Removing an already absent batch is fine.
func (e *StorageExtractor) Consume(ctx context.Context, venue models.Venue) error {
	err := e.client.RemoveObject(ctx, e.bucket, e.objectName(venue.Slug), minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("remove candidate batch for %s: %w", venue.Slug, err)
	}
	return nil
}

// PendingSlugs lists the venue slugs that currently have a batch waiting.
func (e *StorageExtractor) PendingSlugs(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    e.prefix + "/",
		Recursive: true,
	}

	var slugs []string
	for obj := range e.client.ListObjects(ctx, e.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list candidate batches: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(path.Base(obj.Key), ".json"))
	}
	return slugs, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
