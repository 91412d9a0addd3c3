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
	"github.com/seojin/tastemap/internal/pkg/dberrors"
)

// MembershipRepository handles database operations for guild memberships
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// CreateMembership inserts a membership with the given status. The unique
// constraint on (guild_id, user_id) maps to ErrAlreadyMember.
func (r *MembershipRepository) CreateMembership(ctx context.Context, q Querier, membership *models.GuildMembership) (*models.GuildMembership, error) {
	query := squirrel.Insert("guild_memberships").
		Columns("guild_id", "user_id", "status").
		Values(membership.GuildID, membership.UserID, membership.Status).
		Suffix("RETURNING id, joined_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&membership.ID, &membership.JoinedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyMember
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return membership, nil
}

// GetMembership retrieves a membership by guild and user
func (r *MembershipRepository) GetMembership(ctx context.Context, guildID, userID int64) (*models.GuildMembership, error) {
	query := squirrel.Select("id", "guild_id", "user_id", "status", "joined_at").
		From("guild_memberships").
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var membership models.GuildMembership
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&membership.ID,
		&membership.GuildID,
		&membership.UserID,
		&membership.Status,
		&membership.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &membership, nil
}

// IsApprovedMember checks whether the user holds an APPROVED membership
func (r *MembershipRepository) IsApprovedMember(ctx context.Context, guildID, userID int64) (bool, error) {
	query := squirrel.Select("1").
		From("guild_memberships").
		Where("guild_id = ? AND user_id = ? AND status = ?", guildID, userID, models.MembershipApproved).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// GetMembersByGuildID retrieves memberships for a guild with author details,
// optionally filtered by status
func (r *MembershipRepository) GetMembersByGuildID(ctx context.Context, guildID int64, status models.MembershipStatus) ([]*models.GuildMembership, error) {
	query := squirrel.Select(
		"m.id", "m.guild_id", "m.user_id", "m.status", "m.joined_at",
		"u.id", "u.email", "u.nickname", "u.profile_image_url", "u.created_at", "u.updated_at",
	).
		From("guild_memberships m").
		Join("users u ON u.id = m.user_id").
		Where("m.guild_id = ?", guildID).
		OrderBy("m.joined_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		query = query.Where("m.status = ?", status)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var memberships []*models.GuildMembership
	for rows.Next() {
		var membership models.GuildMembership
		var user models.User
		err := rows.Scan(
			&membership.ID,
			&membership.GuildID,
			&membership.UserID,
			&membership.Status,
			&membership.JoinedAt,
			&user.ID,
			&user.Email,
			&user.Nickname,
			&user.ProfileImageURL,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		membership.User = &user
		memberships = append(memberships, &membership)
	}

	return memberships, nil
}

// UpdateMembershipStatus sets the status of a membership
func (r *MembershipRepository) UpdateMembershipStatus(ctx context.Context, membershipID int64, status models.MembershipStatus) error {
	query := squirrel.Update("guild_memberships").
		Set("status", status).
		Where("id = ?", membershipID).
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
		return apperrors.ErrMembershipNotFound
	}

	return nil
}

// DeleteMembership removes a user's membership of a guild
func (r *MembershipRepository) DeleteMembership(ctx context.Context, guildID, userID int64) error {
	query := squirrel.Delete("guild_memberships").
		Where("guild_id = ? AND user_id = ?", guildID, userID).
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
		return apperrors.ErrMembershipNotFound
	}

	return nil
}

// GetApprovedCountsByGuildIDs retrieves the number of approved members for
// multiple guilds
func (r *MembershipRepository) GetApprovedCountsByGuildIDs(ctx context.Context, guildIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int)
	if len(guildIDs) == 0 {
		return result, nil
	}

	query := squirrel.Select("guild_id", "COUNT(*)").
		From("guild_memberships").
		Where(squirrel.Eq{"guild_id": guildIDs}).
		Where("status = ?", models.MembershipApproved).
		GroupBy("guild_id").
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
		var guildID int64
		var count int
		if err := rows.Scan(&guildID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[guildID] = count
	}

	return result, nil
}
