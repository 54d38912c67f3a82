package filehost

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrFileNotFound indicates no metadata record exists for the given id
	ErrFileNotFound = errors.New("file not found")

	// ErrBlobMissing indicates a metadata record exists but its blob is
	// absent from durable storage
	ErrBlobMissing = errors.New("file content missing from storage")

	// ErrNotPreviewable indicates the file's content type is not permitted
	// for inline preview
	ErrNotPreviewable = errors.New("file type cannot be previewed")

	// ErrNoFile indicates an upload was attempted with an empty or absent payload
	ErrNoFile = errors.New("no file provided")

	// ErrReadFailure indicates the blob could not be read or decoded while serving
	ErrReadFailure = errors.New("cannot read file")
)

// FileError represents an error related to file metadata operations
type FileError struct {
	FileID uuid.UUID
	Op     string
	Err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file operation %s failed for file %s: %v", e.Op, e.FileID, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
