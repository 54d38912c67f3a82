// Package postgres implements filehost.Repository on PostgreSQL. The schema
// is a single file_records table; see migrations/001_file_records.sql.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simplehost/filehost/pkg/filehost"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements filehost.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("file record already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) CreateFile(ctx context.Context, record *filehost.FileRecord) error {
	query := `
		INSERT INTO file_records (
			id, stored_name, original_name, content_type, size_bytes,
			blob_path, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		record.ID, record.StoredName, record.OriginalName, record.ContentType,
		record.SizeBytes, record.BlobPath, record.CreatedAt)

	if err != nil {
		return handlePostgresError("create file", err)
	}

	return nil
}

func (r *Repository) GetFile(ctx context.Context, id uuid.UUID) (*filehost.FileRecord, error) {
	query := `
		SELECT id, stored_name, original_name, content_type, size_bytes,
		       blob_path, created_at
		FROM file_records WHERE id = $1`

	var record filehost.FileRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.StoredName, &record.OriginalName,
		&record.ContentType, &record.SizeBytes, &record.BlobPath,
		&record.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, filehost.ErrFileNotFound
		}
		return nil, handlePostgresError("get file", err)
	}

	return &record, nil
}

func (r *Repository) ListFiles(ctx context.Context) ([]*filehost.FileRecord, error) {
	query := `
		SELECT id, stored_name, original_name, content_type, size_bytes,
		       blob_path, created_at
		FROM file_records ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, handlePostgresError("list files", err)
	}
	defer rows.Close()

	records := []*filehost.FileRecord{}
	for rows.Next() {
		var record filehost.FileRecord
		if err := rows.Scan(
			&record.ID, &record.StoredName, &record.OriginalName,
			&record.ContentType, &record.SizeBytes, &record.BlobPath,
			&record.CreatedAt); err != nil {
			return nil, handlePostgresError("list files", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list files", err)
	}

	return records, nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM file_records WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete file", err)
	}

	if tag.RowsAffected() == 0 {
		return filehost.ErrFileNotFound
	}

	return nil
}
