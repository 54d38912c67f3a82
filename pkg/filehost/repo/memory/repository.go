package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/simplehost/filehost/pkg/filehost"
)

// Repository implements filehost.Repository using in-memory storage
type Repository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*filehost.FileRecord
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		records: make(map[uuid.UUID]*filehost.FileRecord),
	}
}

func (r *Repository) CreateFile(ctx context.Context, record *filehost.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to avoid external modifications
	recordCopy := *record
	r.records[record.ID] = &recordCopy

	return nil
}

func (r *Repository) GetFile(ctx context.Context, id uuid.UUID) (*filehost.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, filehost.ErrFileNotFound
	}

	// Return a copy to prevent external modifications
	recordCopy := *record
	return &recordCopy, nil
}

func (r *Repository) ListFiles(ctx context.Context) ([]*filehost.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*filehost.FileRecord, 0, len(r.records))
	for _, record := range r.records {
		recordCopy := *record
		result = append(result, &recordCopy)
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return filehost.ErrFileNotFound
	}

	delete(r.records, id)
	return nil
}
