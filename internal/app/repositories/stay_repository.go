package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

// StayRepository handles database operations for stays
type StayRepository struct {
	db *pgxpool.Pool
}

// NewStayRepository creates a new StayRepository
func NewStayRepository(db *pgxpool.Pool) *StayRepository {
	return &StayRepository{db: db}
}

// CreateStay inserts a stay and returns it with the generated ID
func (r *StayRepository) CreateStay(ctx context.Context, stay *models.Stay) (*models.Stay, error) {
	query := squirrel.Insert("stays").
		Columns("user_id", "latitude", "longitude", "category", "place_name", "started_at", "ended_at").
		Values(stay.UserID, stay.Latitude, stay.Longitude, stay.Category, stay.PlaceName,
			stay.StartedAt, stay.EndedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&stay.ID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return stay, nil
}

// GetLatestStayByUserID retrieves the user's most recent stay
func (r *StayRepository) GetLatestStayByUserID(ctx context.Context, userID int64) (*models.Stay, error) {
	query := squirrel.Select(
		"id", "user_id", "latitude", "longitude", "category", "place_name", "started_at", "ended_at",
	).
		From("stays").
		Where("user_id = ?", userID).
		OrderBy("ended_at DESC", "id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	stay, err := scanStay(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStayNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return stay, nil
}

// ExtendStay moves a stay's end time forward
func (r *StayRepository) ExtendStay(ctx context.Context, stayID int64, endedAt time.Time) error {
	query := squirrel.Update("stays").
		Set("ended_at", endedAt).
		Where("id = ?", stayID).
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
		return apperrors.ErrStayNotFound
	}

	return nil
}

// GetStaysByUserID retrieves a user's stays, newest first
func (r *StayRepository) GetStaysByUserID(ctx context.Context, userID int64, offset, limit int) ([]*models.Stay, int, error) {
	countQuery := squirrel.Select("COUNT(*)").
		From("stays").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing count query: %w", err)
	}

	query := squirrel.Select(
		"id", "user_id", "latitude", "longitude", "category", "place_name", "started_at", "ended_at",
	).
		From("stays").
		Where("user_id = ?", userID).
		OrderBy("started_at DESC", "id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var stays []*models.Stay
	for rows.Next() {
		stay, err := scanStay(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		stays = append(stays, stay)
	}

	return stays, total, nil
}

// GetCategoryCountsByUserID aggregates the user's stays per category
func (r *StayRepository) GetCategoryCountsByUserID(ctx context.Context, userID int64) (map[string]int, error) {
	query := squirrel.Select("category", "COUNT(*)").
		From("stays").
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

func scanStay(row pgx.Row) (*models.Stay, error) {
	var stay models.Stay
	err := row.Scan(
		&stay.ID,
		&stay.UserID,
		&stay.Latitude,
		&stay.Longitude,
		&stay.Category,
		&stay.PlaceName,
		&stay.StartedAt,
		&stay.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	return &stay, nil
}
