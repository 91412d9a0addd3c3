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

// TasteRecordRepository handles database operations for taste records and
// the stored dashboard snapshots
type TasteRecordRepository struct {
	db *pgxpool.Pool
}

// NewTasteRecordRepository creates a new TasteRecordRepository
func NewTasteRecordRepository(db *pgxpool.Pool) *TasteRecordRepository {
	return &TasteRecordRepository{db: db}
}

// CreateTasteRecord inserts a taste record and returns it with the generated ID
func (r *TasteRecordRepository) CreateTasteRecord(ctx context.Context, record *models.TasteRecord) (*models.TasteRecord, error) {
	query := squirrel.Insert("taste_records").
		Columns("user_id", "title", "category", "content", "image_url").
		Values(record.UserID, record.Title, record.Category, record.Content, record.ImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return record, nil
}

// GetTasteRecordByID retrieves a taste record by ID
func (r *TasteRecordRepository) GetTasteRecordByID(ctx context.Context, id int64) (*models.TasteRecord, error) {
	query := squirrel.Select(
		"id", "user_id", "title", "category", "content", "image_url", "created_at", "updated_at",
	).
		From("taste_records").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	record, err := scanTasteRecord(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTasteRecordNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return record, nil
}

// GetTasteRecordsByUserID retrieves a user's taste records, newest first,
// optionally filtered by category
func (r *TasteRecordRepository) GetTasteRecordsByUserID(ctx context.Context, userID int64, category string, offset, limit int) ([]*models.TasteRecord, int, error) {
	countQuery := squirrel.Select("COUNT(*)").
		From("taste_records").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	listQuery := squirrel.Select(
		"id", "user_id", "title", "category", "content", "image_url", "created_at", "updated_at",
	).
		From("taste_records").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	if category != "" {
		countQuery = countQuery.Where("category = ?", category)
		listQuery = listQuery.Where("category = ?", category)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing count query: %w", err)
	}

	listQuery = listQuery.
		OrderBy("created_at DESC", "id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	sql, args, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var records []*models.TasteRecord
	for rows.Next() {
		record, err := scanTasteRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		records = append(records, record)
	}

	return records, total, nil
}

// UpdateTasteRecord updates a taste record's mutable fields
func (r *TasteRecordRepository) UpdateTasteRecord(ctx context.Context, record *models.TasteRecord) error {
	query := squirrel.Update("taste_records").
		Set("title", record.Title).
		Set("category", record.Category).
		Set("content", record.Content).
		Set("image_url", record.ImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", record.ID).
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
		return apperrors.ErrTasteRecordNotFound
	}

	return nil
}

// DeleteTasteRecord removes a taste record
func (r *TasteRecordRepository) DeleteTasteRecord(ctx context.Context, id int64) error {
	query := squirrel.Delete("taste_records").
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
		return apperrors.ErrTasteRecordNotFound
	}

	return nil
}

// GetCategoryCountsByUserID aggregates the user's taste records per category
func (r *TasteRecordRepository) GetCategoryCountsByUserID(ctx context.Context, userID int64) (map[string]int, error) {
	query := squirrel.Select("category", "COUNT(*)").
		From("taste_records").
		Where("user_id = ?", userID).
		GroupBy("category").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[category] = count
	}

	return result, nil
}

// UpsertRecommendation stores a computed payload for the user, keeping at
// most one row per (user_id, kind)
func (r *TasteRecordRepository) UpsertRecommendation(ctx context.Context, userID int64, kind models.RecommendationKind, payload []byte) error {
	sql := `
		INSERT INTO recommendations (user_id, kind, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, kind)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`

	_, err := r.db.Exec(ctx, sql, userID, kind, payload)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

func scanTasteRecord(row pgx.Row) (*models.TasteRecord, error) {
	var record models.TasteRecord
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Title,
		&record.Category,
		&record.Content,
		&record.ImageURL,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
