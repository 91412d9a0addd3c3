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

// GuildRecordRepository handles database operations for guild records
type GuildRecordRepository struct {
	db *pgxpool.Pool
}

// NewGuildRecordRepository creates a new GuildRecordRepository
func NewGuildRecordRepository(db *pgxpool.Pool) *GuildRecordRepository {
	return &GuildRecordRepository{db: db}
}

// CreateRecord inserts a record inside the given transaction. Score and
// mission counters are updated by the caller in the same transaction.
func (r *GuildRecordRepository) CreateRecord(ctx context.Context, q Querier, record *models.GuildRecord) (*models.GuildRecord, error) {
	query := squirrel.Insert("guild_records").
		Columns("guild_id", "author_id", "title", "content", "image_url", "place_name").
		Values(record.GuildID, record.AuthorID, record.Title, record.Content, record.ImageURL, record.PlaceName).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return record, nil
}

// GetRecordByID retrieves a record with its author
func (r *GuildRecordRepository) GetRecordByID(ctx context.Context, id int64) (*models.GuildRecord, error) {
	query := squirrel.Select(
		"r.id", "r.guild_id", "r.author_id", "r.title", "r.content",
		"r.image_url", "r.place_name", "r.created_at", "r.updated_at",
		"u.id", "u.email", "u.nickname", "u.profile_image_url", "u.created_at", "u.updated_at",
	).
		From("guild_records r").
		Join("users u ON u.id = r.author_id").
		Where("r.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	record, err := scanRecordWithAuthor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return record, nil
}

// GetRecordsByGuildID retrieves a guild's records with authors, newest first
func (r *GuildRecordRepository) GetRecordsByGuildID(ctx context.Context, guildID int64, offset, limit int) ([]*models.GuildRecord, int, error) {
	countQuery := squirrel.Select("COUNT(*)").
		From("guild_records").
		Where("guild_id = ?", guildID).
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
		"r.id", "r.guild_id", "r.author_id", "r.title", "r.content",
		"r.image_url", "r.place_name", "r.created_at", "r.updated_at",
		"u.id", "u.email", "u.nickname", "u.profile_image_url", "u.created_at", "u.updated_at",
	).
		From("guild_records r").
		Join("users u ON u.id = r.author_id").
		Where("r.guild_id = ?", guildID).
		OrderBy("r.created_at DESC", "r.id DESC").
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

	var records []*models.GuildRecord
	for rows.Next() {
		record, err := scanRecordWithAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		records = append(records, record)
	}

	return records, total, nil
}

// DeleteRecord removes a record; its comments cascade at the database level
func (r *GuildRecordRepository) DeleteRecord(ctx context.Context, id int64) error {
	query := squirrel.Delete("guild_records").
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
		return apperrors.ErrRecordNotFound
	}

	return nil
}

func scanRecordWithAuthor(row pgx.Row) (*models.GuildRecord, error) {
	var record models.GuildRecord
	var author models.User
	err := row.Scan(
		&record.ID,
		&record.GuildID,
		&record.AuthorID,
		&record.Title,
		&record.Content,
		&record.ImageURL,
		&record.PlaceName,
		&record.CreatedAt,
		&record.UpdatedAt,
		&author.ID,
		&author.Email,
		&author.Nickname,
		&author.ProfileImageURL,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Author = &author
	return &record, nil
}
