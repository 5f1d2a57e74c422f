package storage

import (
	"bytes"
	"context"
	"io"
	"time"
)

// ObjectStore abstracts the blob backend so the service can run against
// S3 or an ephemeral in-memory store selected by configuration.
type ObjectStore interface {
	Put(ctx context.Context, key string, content io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

const (
	putAttempts    = 3
	putBackoffBase = 500 * time.Millisecond
)

// PutWithRetry retries transient Put failures with bounded backoff.
// Validation happens before any bytes reach the store, so every error
// seen here is treated as transport-level and retryable.
func PutWithRetry(ctx context.Context, store ObjectStore, key string, data []byte, contentType string) error {
	var err error
	for attempt := 0; attempt < putAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(putBackoffBase << (attempt - 1)):
			}
		}
		if err = store.Put(ctx, key, bytes.NewReader(data), contentType); err == nil {
			return nil
		}
	}
	return err
}
