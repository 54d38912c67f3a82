package filehost

import (
	"time"

	"github.com/google/uuid"
)

// FileRecord is the persisted metadata describing one uploaded file.
//
// A record is immutable after creation; the only lifecycle transition is a
// hard delete, which removes the record and (best effort) its blob. The ID is
// the sole external reference to a file.
type FileRecord struct {
	ID           uuid.UUID `json:"id"`
	StoredName   string    `json:"stored_name"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
	BlobPath     string    `json:"blob_path"`
}

// BlobMeta contains metadata about a blob as reported by its storage backend.
type BlobMeta struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
}
