package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackdeck/pkg/utils"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "projects/p1/mixes/final.wav", strings.NewReader("RIFF..."), "audio/wav"))
	assert.Equal(t, 1, store.Len())

	rc, err := store.Get(ctx, "projects/p1/mixes/final.wav")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "RIFF...", string(data))

	require.NoError(t, store.Delete(ctx, "projects/p1/mixes/final.wav"))
	_, err = store.Get(ctx, "projects/p1/mixes/final.wav")
	assert.True(t, errors.Is(err, utils.ErrFileNotFound))
}

type flakyStore struct {
	inner    *MemoryStore
	failures int
	calls    int
}

func (f *flakyStore) Put(ctx context.Context, key string, content io.Reader, contentType string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection reset")
	}
	return f.inner.Put(ctx, key, content, contentType)
}

func (f *flakyStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return f.inner.Get(ctx, key)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	return f.inner.Delete(ctx, key)
}

func TestPutWithRetry_TransientFailure(t *testing.T) {
	store := &flakyStore{inner: NewMemoryStore(), failures: 2}

	err := PutWithRetry(context.Background(), store, "k", []byte("data"), "application/octet-stream")

	assert.NoError(t, err)
	assert.Equal(t, 3, store.calls)
}

func TestPutWithRetry_Exhausted(t *testing.T) {
	store := &flakyStore{inner: NewMemoryStore(), failures: 10}

	err := PutWithRetry(context.Background(), store, "k", []byte("data"), "application/octet-stream")

	assert.Error(t, err)
	assert.Equal(t, 3, store.calls)
}

func TestPutWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &flakyStore{inner: NewMemoryStore(), failures: 10}
	err := PutWithRetry(ctx, store, "k", []byte("data"), "application/octet-stream")

	assert.True(t, errors.Is(err, context.Canceled))
}
