// Package jsonfile implements filehost.Repository on a single serialized
// JSON document: the whole collection is read, modified, and rewritten on
// every mutation. An internal mutex serializes all access, so concurrent
// writers cannot lose updates.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/simplehost/filehost/pkg/filehost"
)

// Repository implements filehost.Repository backed by a flat JSON file
type Repository struct {
	mu      sync.Mutex
	path    string
	corrupt bool
}

// New creates a repository backed by the JSON file at path. The parent
// directory is created if needed, and a missing file is initialized to an
// empty collection.
func New(path string) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("metadata file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory: %w", err)
	}

	r := &Repository{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.persist([]*filehost.FileRecord{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat metadata file: %w", err)
	}

	// Surface a corrupt store at construction time rather than on first read
	r.load()

	return r, nil
}

// Corrupt reports whether the backing file was unreadable on the most recent
// load. A corrupt store behaves as empty; the flag lets operators distinguish
// that degraded state from a legitimately empty store.
func (r *Repository) Corrupt() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.corrupt
}

func (r *Repository) CreateFile(ctx context.Context, record *filehost.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	recordCopy := *record
	records = append(records, &recordCopy)

	return r.persist(records)
}

func (r *Repository) GetFile(ctx context.Context, id uuid.UUID) (*filehost.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.load() {
		if record.ID == id {
			recordCopy := *record
			return &recordCopy, nil
		}
	}
	return nil, filehost.ErrFileNotFound
}

func (r *Repository) ListFiles(ctx context.Context) ([]*filehost.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()

	// Sort by created_at descending
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load()
	filtered := records[:0:0]
	for _, record := range records {
		if record.ID != id {
			filtered = append(filtered, record)
		}
	}

	if len(filtered) == len(records) {
		return filehost.ErrFileNotFound
	}

	return r.persist(filtered)
}

// load reads the full collection. An unreadable or unparseable file loads as
// empty rather than failing: the store keeps serving, and the condition is
// logged and remembered via the corrupt flag. Callers must hold mu.
func (r *Repository) load() []*filehost.FileRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		slog.Error("metadata store unreadable, treating as empty",
			"path", r.path, "error", err)
		r.corrupt = true
		return []*filehost.FileRecord{}
	}

	var records []*filehost.FileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("metadata store unparseable, treating as empty",
			"path", r.path, "error", err)
		r.corrupt = true
		return []*filehost.FileRecord{}
	}

	r.corrupt = false
	if records == nil {
		records = []*filehost.FileRecord{}
	}
	return records
}

// persist rewrites the full collection atomically via a temp file and rename,
// so a crash mid-write cannot corrupt the previous state. Callers must hold mu.
func (r *Repository) persist(records []*filehost.FileRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace metadata file: %w", err)
	}

	return nil
}
