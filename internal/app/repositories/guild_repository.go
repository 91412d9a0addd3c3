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

// GuildRepository handles database operations for guilds and guild scores
type GuildRepository struct {
	db *pgxpool.Pool
}

// NewGuildRepository creates a new GuildRepository
func NewGuildRepository(db *pgxpool.Pool) *GuildRepository {
	return &GuildRepository{db: db}
}

// CreateGuild inserts a guild inside the given transaction. The caller
// creates the owner membership and the score row in the same transaction.
func (r *GuildRepository) CreateGuild(ctx context.Context, q Querier, guild *models.Guild) (*models.Guild, error) {
	query := squirrel.Insert("guilds").
		Columns("name", "description", "owner_id", "cover_image_url").
		Values(guild.Name, guild.Description, guild.OwnerID, guild.CoverImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&guild.ID, &guild.CreatedAt, &guild.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return guild, nil
}

// GetGuildByID retrieves a guild by ID
func (r *GuildRepository) GetGuildByID(ctx context.Context, id int64) (*models.Guild, error) {
	query := squirrel.Select(
		"id", "name", "description", "owner_id", "cover_image_url", "created_at", "updated_at",
	).
		From("guilds").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var guild models.Guild
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&guild.ID,
		&guild.Name,
		&guild.Description,
		&guild.OwnerID,
		&guild.CoverImageURL,
		&guild.CreatedAt,
		&guild.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGuildNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &guild, nil
}

// GetGuilds retrieves guilds with optional name search and pagination
func (r *GuildRepository) GetGuilds(ctx context.Context, search string, offset, limit int) ([]*models.Guild, int, error) {
	baseQuery := squirrel.Select(
		"id", "name", "description", "owner_id", "cover_image_url", "created_at", "updated_at",
	).
		From("guilds").
		PlaceholderFormat(squirrel.Dollar)

	countQuery := squirrel.Select("COUNT(*)").
		From("guilds").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		baseQuery = baseQuery.Where("name ILIKE ?", pattern)
		countQuery = countQuery.Where("name ILIKE ?", pattern)
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

	baseQuery = baseQuery.
		OrderBy("created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	sql, args, err := baseQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var guilds []*models.Guild
	for rows.Next() {
		var guild models.Guild
		err := rows.Scan(
			&guild.ID,
			&guild.Name,
			&guild.Description,
			&guild.OwnerID,
			&guild.CoverImageURL,
			&guild.CreatedAt,
			&guild.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		guilds = append(guilds, &guild)
	}

	return guilds, total, nil
}

// UpdateGuild updates a guild's mutable fields
func (r *GuildRepository) UpdateGuild(ctx context.Context, guild *models.Guild) error {
	query := squirrel.Update("guilds").
		Set("name", guild.Name).
		Set("description", guild.Description).
		Set("cover_image_url", guild.CoverImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", guild.ID).
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
		return apperrors.ErrGuildNotFound
	}

	return nil
}

// DeleteGuild removes a guild; memberships, records, missions and scores
// cascade at the database level
func (r *GuildRepository) DeleteGuild(ctx context.Context, id int64) error {
	query := squirrel.Delete("guilds").
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
		return apperrors.ErrGuildNotFound
	}

	return nil
}

// InitScore creates the guild's score row inside the given transaction
func (r *GuildRepository) InitScore(ctx context.Context, q Querier, guildID int64) error {
	query := squirrel.Insert("guild_scores").
		Columns("guild_id", "score").
		Values(guildID, 0).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// IncrementScore adds delta to the guild's score inside the given transaction
func (r *GuildRepository) IncrementScore(ctx context.Context, q Querier, guildID int64, delta int64) error {
	sql := `
		INSERT INTO guild_scores (guild_id, score)
		VALUES ($1, $2)
		ON CONFLICT (guild_id)
		DO UPDATE SET score = guild_scores.score + EXCLUDED.score, updated_at = NOW()`

	_, err := q.Exec(ctx, sql, guildID, delta)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetScore retrieves a guild's current score, zero when no row exists yet
func (r *GuildRepository) GetScore(ctx context.Context, guildID int64) (int64, error) {
	query := squirrel.Select("score").
		From("guild_scores").
		Where("guild_id = ?", guildID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var score int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return score, nil
}

// GetScoresByGuildIDs retrieves scores for multiple guilds keyed by guild ID
func (r *GuildRepository) GetScoresByGuildIDs(ctx context.Context, guildIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64)
	if len(guildIDs) == 0 {
		return result, nil
	}

	query := squirrel.Select("guild_id", "score").
		From("guild_scores").
		Where(squirrel.Eq{"guild_id": guildIDs}).
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

	for rows.Next() {
		var guildID, score int64
		if err := rows.Scan(&guildID, &score); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[guildID] = score
	}

	return result, nil
}

// RankingEntry pairs a guild with its score for the ranking board
type RankingEntry struct {
	Guild *models.Guild
	Score int64
}

// GetRanking retrieves the top guilds ordered by score descending
func (r *GuildRepository) GetRanking(ctx context.Context, limit int) ([]*RankingEntry, error) {
	query := squirrel.Select(
		"g.id", "g.name", "g.description", "g.owner_id", "g.cover_image_url",
		"g.created_at", "g.updated_at",
		"COALESCE(s.score, 0)",
	).
		From("guilds g").
		LeftJoin("guild_scores s ON s.guild_id = g.id").
		OrderBy("COALESCE(s.score, 0) DESC", "g.id ASC").
		Limit(uint64(limit)).
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

	var entries []*RankingEntry
	for rows.Next() {
		var guild models.Guild
		var score int64
		err := rows.Scan(
			&guild.ID,
			&guild.Name,
			&guild.Description,
			&guild.OwnerID,
			&guild.CoverImageURL,
			&guild.CreatedAt,
			&guild.UpdatedAt,
			&score,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entries = append(entries, &RankingEntry{Guild: &guild, Score: score})
	}

	return entries, nil
}
