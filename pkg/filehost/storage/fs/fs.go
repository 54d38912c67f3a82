package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simplehost/filehost/pkg/filehost"
)

// Backend is a filesystem implementation of the filehost.BlobStore interface
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing blobs
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

// BaseDir returns the directory blobs are stored under
func (b *Backend) BaseDir() string {
	return b.baseDir
}

// Upload writes the reader's content to a file under the base directory and
// returns the number of bytes written
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader) (int64, error) {
	filePath := filepath.Join(b.baseDir, key)

	// Keys may contain path separators
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		return written, fmt.Errorf("failed to write file: %w", err)
	}

	return written, nil
}

// Download opens the blob stored under key
func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(b.baseDir, key))
	if os.IsNotExist(err) {
		return nil, filehost.ErrBlobMissing
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes the blob stored under key
func (b *Backend) Delete(ctx context.Context, key string) error {
	filePath := filepath.Join(b.baseDir, key)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return filehost.ErrBlobMissing
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Meta reports size and modification time for the blob stored under key
func (b *Backend) Meta(ctx context.Context, key string) (*filehost.BlobMeta, error) {
	info, err := os.Stat(filepath.Join(b.baseDir, key))
	if os.IsNotExist(err) {
		return nil, filehost.ErrBlobMissing
	} else if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	return &filehost.BlobMeta{
		Key:       key,
		Size:      info.Size(),
		UpdatedAt: info.ModTime(),
	}, nil
}
