package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/simplehost/filehost/pkg/filehost"
)

// Backend is an in-memory implementation of the filehost.BlobStore interface
type Backend struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	updated map[string]time.Time
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		blobs:   make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader) (int64, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.blobs[key] = data
	b.updated[key] = time.Now()
	return int64(len(data)), nil
}

func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[key]
	if !exists {
		return nil, filehost.ErrBlobMissing
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.blobs[key]; !exists {
		return filehost.ErrBlobMissing
	}

	delete(b.blobs, key)
	delete(b.updated, key)
	return nil
}

func (b *Backend) Meta(ctx context.Context, key string) (*filehost.BlobMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[key]
	if !exists {
		return nil, filehost.ErrBlobMissing
	}

	return &filehost.BlobMeta{
		Key:       key,
		Size:      int64(len(data)),
		UpdatedAt: b.updated[key],
	}, nil
}
