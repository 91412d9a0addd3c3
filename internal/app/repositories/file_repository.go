package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

// FileRepository handles database operations for uploaded files
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// CreateFile inserts a file record and returns it with the generated ID
func (r *FileRepository) CreateFile(ctx context.Context, file *models.File) (*models.File, error) {
	query := squirrel.Insert("files").
		Columns("file_name", "file_path", "file_url", "file_size", "file_type", "category", "uploaded_by").
		Values(file.FileName, file.FilePath, file.FileURL, file.FileSize, file.FileType,
			file.Category, file.UploadedBy).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return file, nil
}

// GetFileByID retrieves a file record by ID
func (r *FileRepository) GetFileByID(ctx context.Context, id int64) (*models.File, error) {
	query := squirrel.Select(
		"id", "file_name", "file_path", "file_url", "file_size", "file_type", "category",
		"uploaded_by", "created_at",
	).
		From("files").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var file models.File
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&file.ID,
		&file.FileName,
		&file.FilePath,
		&file.FileURL,
		&file.FileSize,
		&file.FileType,
		&file.Category,
		&file.UploadedBy,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &file, nil
}

// DeleteFile removes a file record
func (r *FileRepository) DeleteFile(ctx context.Context, id int64) error {
	query := squirrel.Delete("files").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
