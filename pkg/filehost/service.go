package filehost

import (
	"context"

	"github.com/google/uuid"
)

// Service orchestrates file metadata and blob storage. It is the only
// component that touches both.
type Service interface {
	// UploadFile persists the payload to blob storage, records its metadata,
	// and returns the finalized record. Fails with ErrNoFile for an empty or
	// absent payload.
	UploadFile(ctx context.Context, req UploadFileRequest) (*FileRecord, error)

	// ListFiles returns all file records, newest first
	ListFiles(ctx context.Context) ([]*FileRecord, error)

	// GetFile returns the record for id, or ErrFileNotFound
	GetFile(ctx context.Context, id uuid.UUID) (*FileRecord, error)

	// DownloadFile opens the original bytes for id. Fails with
	// ErrFileNotFound for an unknown id and ErrBlobMissing when the
	// metadata record exists but the blob does not.
	DownloadFile(ctx context.Context, id uuid.UUID) (*DownloadResult, error)

	// PreviewFile prepares a file's content for inline rendering. Fails with
	// ErrFileNotFound, ErrBlobMissing, ErrNotPreviewable for types outside
	// the preview policy, and ErrReadFailure when the content cannot be
	// decoded per the chosen strategy.
	PreviewFile(ctx context.Context, id uuid.UUID) (*PreviewResult, error)

	// DeleteFile removes the metadata record, then best-effort removes the
	// blob. Fails with ErrFileNotFound for an unknown id; a blob removal
	// failure is logged but does not fail the operation.
	DeleteFile(ctx context.Context, id uuid.UUID) error
}
