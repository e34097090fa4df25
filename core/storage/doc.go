// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the calendar needs: reading candidate batches from the inbox,
// archiving run reports, and housekeeping around the shared bucket. The
// abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: Verify and create the shared bucket.
//   - PutObject: Uploads content (run reports).
//   - GetObject: Retrieves content as a stream (candidate batches).
//   - ListObjects: Lists objects under a prefix (pending batches).
//   - RemoveObject: Deletes an object (consuming a processed batch).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "gigcal")
package storage
