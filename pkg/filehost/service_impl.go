package filehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/simplehost/filehost/pkg/filehost/blobkey"
	"github.com/simplehost/filehost/pkg/filehost/preview"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	keys       blobkey.Generator
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the metadata repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithKeyGenerator sets the blob key generation strategy
func WithKeyGenerator(gen blobkey.Generator) Option {
	return func(s *service) {
		s.keys = gen
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.keys == nil {
		s.keys = blobkey.NewRecommendedGenerator()
	}

	return s, nil
}

func (s *service) UploadFile(ctx context.Context, req UploadFileRequest) (*FileRecord, error) {
	if req.Reader == nil {
		return nil, ErrNoFile
	}

	id := uuid.New()
	key := s.keys.GenerateKey(id, req.FileName)

	written, err := s.blobStore.Upload(ctx, key, req.Reader)
	if err != nil {
		return nil, &StorageError{Key: key, Op: "upload", Err: err}
	}
	if written == 0 {
		if derr := s.blobStore.Delete(ctx, key); derr != nil {
			slog.Warn("failed to remove empty blob", "key", key, "error", derr)
		}
		return nil, ErrNoFile
	}

	contentType := strings.TrimSpace(req.ContentType)
	if contentType == "" {
		contentType = s.detectContentType(ctx, key)
	}

	record := &FileRecord{
		ID:           id,
		StoredName:   key,
		OriginalName: req.FileName,
		ContentType:  contentType,
		SizeBytes:    written,
		CreatedAt:    time.Now().UTC(),
		BlobPath:     key,
	}

	if err := s.repository.CreateFile(ctx, record); err != nil {
		// Keep store and metadata consistent: drop the orphaned blob
		if derr := s.blobStore.Delete(ctx, key); derr != nil {
			slog.Warn("failed to remove blob after metadata failure", "key", key, "error", derr)
		}
		return nil, &FileError{FileID: id, Op: "upload", Err: err}
	}

	return record, nil
}

func (s *service) ListFiles(ctx context.Context) ([]*FileRecord, error) {
	return s.repository.ListFiles(ctx)
}

func (s *service) GetFile(ctx context.Context, id uuid.UUID) (*FileRecord, error) {
	return s.repository.GetFile(ctx, id)
}

func (s *service) DownloadFile(ctx context.Context, id uuid.UUID) (*DownloadResult, error) {
	record, err := s.repository.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}

	reader, err := s.blobStore.Download(ctx, record.BlobPath)
	if err != nil {
		if errors.Is(err, ErrBlobMissing) {
			return nil, ErrBlobMissing
		}
		return nil, &StorageError{Key: record.BlobPath, Op: "download", Err: err}
	}

	contentType := record.ContentType
	if contentType == "" {
		contentType = preview.DefaultContentType
	}

	return &DownloadResult{
		Reader:      reader,
		FileName:    record.OriginalName,
		ContentType: contentType,
		SizeBytes:   record.SizeBytes,
	}, nil
}

func (s *service) PreviewFile(ctx context.Context, id uuid.UUID) (*PreviewResult, error) {
	record, err := s.repository.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}

	if !preview.IsPreviewable(record.ContentType) {
		return nil, ErrNotPreviewable
	}

	ext := strings.ToLower(filepath.Ext(record.OriginalName))
	strategy := preview.Resolve(record.ContentType, ext)

	reader, err := s.blobStore.Download(ctx, record.BlobPath)
	if err != nil {
		if errors.Is(err, ErrBlobMissing) {
			return nil, ErrBlobMissing
		}
		return nil, &StorageError{Key: record.BlobPath, Op: "preview", Err: err}
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
	}

	if strategy.Text && !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrReadFailure)
	}

	return &PreviewResult{
		Data:        data,
		ContentType: strategy.ContentType,
		Category:    strategy.Category,
	}, nil
}

func (s *service) DeleteFile(ctx context.Context, id uuid.UUID) error {
	record, err := s.repository.GetFile(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteFile(ctx, id); err != nil {
		return &FileError{FileID: id, Op: "delete", Err: err}
	}

	// Metadata is the source of truth: once the record is gone the delete
	// has succeeded, and a blob removal failure is only logged. The stray
	// blob is harmless and unreachable without its record.
	if err := s.blobStore.Delete(ctx, record.BlobPath); err != nil {
		slog.Error("failed to remove blob for deleted file",
			"file_id", id.String(), "key", record.BlobPath, "error", err)
	}

	return nil
}

// detectContentType sniffs the stored blob when no type was declared.
// Falls back to application/octet-stream when the blob cannot be read.
func (s *service) detectContentType(ctx context.Context, key string) string {
	reader, err := s.blobStore.Download(ctx, key)
	if err != nil {
		return preview.DefaultContentType
	}
	defer reader.Close()

	detected, err := mimetype.DetectReader(reader)
	if err != nil {
		return preview.DefaultContentType
	}
	return detected.String()
}
