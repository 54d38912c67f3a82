package filehost

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Repository defines the interface for file metadata persistence.
//
// Implementations must serialize their own mutations: every write rewrites the
// full collection, so an unguarded read-modify-write from two callers can lose
// updates. The jsonfile and memory implementations hold an internal lock.
type Repository interface {
	// CreateFile appends a new record and persists the collection
	CreateFile(ctx context.Context, record *FileRecord) error

	// GetFile returns the record for id, or ErrFileNotFound
	GetFile(ctx context.Context, id uuid.UUID) (*FileRecord, error)

	// ListFiles returns all records sorted by CreatedAt descending
	ListFiles(ctx context.Context) ([]*FileRecord, error)

	// DeleteFile removes the record for id, or returns ErrFileNotFound
	DeleteFile(ctx context.Context, id uuid.UUID) error
}

// BlobStore defines the interface for raw byte storage backends
type BlobStore interface {
	// Upload stores the reader's content under key and returns the number
	// of bytes written
	Upload(ctx context.Context, key string, reader io.Reader) (int64, error)

	// Download opens the blob stored under key, or returns ErrBlobMissing
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob stored under key, or returns ErrBlobMissing
	Delete(ctx context.Context, key string) error

	// Meta reports storage-level metadata for key, or returns ErrBlobMissing
	Meta(ctx context.Context, key string) (*BlobMeta, error)
}
