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
	"github.com/seojin/tastemap/internal/pkg/dberrors"
)

// MissionRepository handles database operations for guild missions and
// their participants
type MissionRepository struct {
	db *pgxpool.Pool
}

// NewMissionRepository creates a new MissionRepository
func NewMissionRepository(db *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{db: db}
}

// CreateMission inserts a mission and returns it with the generated ID
func (r *MissionRepository) CreateMission(ctx context.Context, mission *models.GuildMission) (*models.GuildMission, error) {
	query := squirrel.Insert("guild_missions").
		Columns("guild_id", "title", "description", "target_count", "max_participants", "starts_at", "ends_at").
		Values(mission.GuildID, mission.Title, mission.Description, mission.TargetCount,
			mission.MaxParticipants, mission.StartsAt, mission.EndsAt).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&mission.ID, &mission.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return mission, nil
}

// GetMissionByID retrieves a mission by ID
func (r *MissionRepository) GetMissionByID(ctx context.Context, id int64) (*models.GuildMission, error) {
	query := missionSelect().
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	mission, err := scanMission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMissionNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return mission, nil
}

// GetMissionForUpdate retrieves a mission with a row lock inside the given
// transaction. Used to serialize joins against the participant cap.
func (r *MissionRepository) GetMissionForUpdate(ctx context.Context, q Querier, id int64) (*models.GuildMission, error) {
	query := missionSelect().
		Where("id = ?", id).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	mission, err := scanMission(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMissionNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return mission, nil
}

// GetMissionsByGuildID retrieves a guild's missions, newest first
func (r *MissionRepository) GetMissionsByGuildID(ctx context.Context, guildID int64) ([]*models.GuildMission, error) {
	query := missionSelect().
		Where("guild_id = ?", guildID).
		OrderBy("starts_at DESC", "id DESC").
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

	var missions []*models.GuildMission
	for rows.Next() {
		mission, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		missions = append(missions, mission)
	}

	return missions, nil
}

// CountParticipants counts a mission's participants inside the given querier
func (r *MissionRepository) CountParticipants(ctx context.Context, q Querier, missionID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("guild_mission_participants").
		Where("mission_id = ?", missionID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	err = q.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// AddParticipant inserts a participant row. The unique constraint on
// (mission_id, user_id) maps to ErrAlreadyJoined.
func (r *MissionRepository) AddParticipant(ctx context.Context, q Querier, participant *models.MissionParticipant) (*models.MissionParticipant, error) {
	query := squirrel.Insert("guild_mission_participants").
		Columns("mission_id", "user_id").
		Values(participant.MissionID, participant.UserID).
		Suffix("RETURNING id, record_count, joined_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&participant.ID, &participant.RecordCount, &participant.JoinedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyJoined
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return participant, nil
}

// GetParticipantsByMissionID retrieves a mission's participants with user details
func (r *MissionRepository) GetParticipantsByMissionID(ctx context.Context, missionID int64) ([]*models.MissionParticipant, error) {
	query := squirrel.Select(
		"p.id", "p.mission_id", "p.user_id", "p.record_count", "p.completed_at", "p.joined_at",
		"u.id", "u.email", "u.nickname", "u.profile_image_url", "u.created_at", "u.updated_at",
	).
		From("guild_mission_participants p").
		Join("users u ON u.id = p.user_id").
		Where("p.mission_id = ?", missionID).
		OrderBy("p.joined_at ASC").
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

	var participants []*models.MissionParticipant
	for rows.Next() {
		var participant models.MissionParticipant
		var user models.User
		err := rows.Scan(
			&participant.ID,
			&participant.MissionID,
			&participant.UserID,
			&participant.RecordCount,
			&participant.CompletedAt,
			&participant.JoinedAt,
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
		participant.User = &user
		participants = append(participants, &participant)
	}

	return participants, nil
}

// GetUserParticipationsByGuildID retrieves a user's participant rows for all
// missions of a guild, keyed by mission ID
func (r *MissionRepository) GetUserParticipationsByGuildID(ctx context.Context, guildID, userID int64) (map[int64]*models.MissionParticipant, error) {
	query := squirrel.Select(
		"p.id", "p.mission_id", "p.user_id", "p.record_count", "p.completed_at", "p.joined_at",
	).
		From("guild_mission_participants p").
		Join("guild_missions m ON m.id = p.mission_id").
		Where("m.guild_id = ? AND p.user_id = ?", guildID, userID).
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

	result := make(map[int64]*models.MissionParticipant)
	for rows.Next() {
		var participant models.MissionParticipant
		err := rows.Scan(
			&participant.ID,
			&participant.MissionID,
			&participant.UserID,
			&participant.RecordCount,
			&participant.CompletedAt,
			&participant.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[participant.MissionID] = &participant
	}

	return result, nil
}

// CompletedMission identifies a mission finished by a progress increment
type CompletedMission struct {
	MissionID int64
	Title     string
}

// IncrementProgress bumps the user's record count for every active mission
// they joined in the guild, then marks the ones that reached their target as
// completed. Runs inside the record-creation transaction.
func (r *MissionRepository) IncrementProgress(ctx context.Context, q Querier, guildID, userID int64, now time.Time) ([]CompletedMission, error) {
	incrementSQL := `
		UPDATE guild_mission_participants p
		SET record_count = p.record_count + 1
		FROM guild_missions m
		WHERE m.id = p.mission_id
		  AND m.guild_id = $1
		  AND p.user_id = $2
		  AND p.completed_at IS NULL
		  AND $3 BETWEEN m.starts_at AND m.ends_at`

	_, err := q.Exec(ctx, incrementSQL, guildID, userID, now)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	completeSQL := `
		UPDATE guild_mission_participants p
		SET completed_at = NOW()
		FROM guild_missions m
		WHERE m.id = p.mission_id
		  AND m.guild_id = $1
		  AND p.user_id = $2
		  AND p.completed_at IS NULL
		  AND p.record_count >= m.target_count
		RETURNING m.id, m.title`

	rows, err := q.Query(ctx, completeSQL, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var completed []CompletedMission
	for rows.Next() {
		var c CompletedMission
		if err := rows.Scan(&c.MissionID, &c.Title); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		completed = append(completed, c)
	}

	return completed, nil
}

// GetParticipantCountsByMissionIDs retrieves participant counts for multiple missions
func (r *MissionRepository) GetParticipantCountsByMissionIDs(ctx context.Context, missionIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int)
	if len(missionIDs) == 0 {
		return result, nil
	}

	query := squirrel.Select("mission_id", "COUNT(*)").
		From("guild_mission_participants").
		Where(squirrel.Eq{"mission_id": missionIDs}).
		GroupBy("mission_id").
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
		var missionID int64
		var count int
		if err := rows.Scan(&missionID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[missionID] = count
	}

	return result, nil
}

func missionSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "guild_id", "title", "description", "target_count",
		"max_participants", "starts_at", "ends_at", "created_at",
	).From("guild_missions")
}

func scanMission(row pgx.Row) (*models.GuildMission, error) {
	var mission models.GuildMission
	err := row.Scan(
		&mission.ID,
		&mission.GuildID,
		&mission.Title,
		&mission.Description,
		&mission.TargetCount,
		&mission.MaxParticipants,
		&mission.StartsAt,
		&mission.EndsAt,
		&mission.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mission, nil
}
