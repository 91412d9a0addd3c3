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

// CommentRepository handles database operations for guild record comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateComment inserts a comment and returns it with the generated ID
func (r *CommentRepository) CreateComment(ctx context.Context, comment *models.GuildRecordComment) (*models.GuildRecordComment, error) {
	query := squirrel.Insert("guild_record_comments").
		Columns("record_id", "author_id", "content").
		Values(comment.RecordID, comment.AuthorID, comment.Content).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return comment, nil
}

// GetCommentByID retrieves a comment by ID
func (r *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.GuildRecordComment, error) {
	query := squirrel.Select("id", "record_id", "author_id", "content", "created_at").
		From("guild_record_comments").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var comment models.GuildRecordComment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&comment.ID,
		&comment.RecordID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &comment, nil
}

// GetCommentsByRecordID retrieves a record's comments with authors, oldest first
func (r *CommentRepository) GetCommentsByRecordID(ctx context.Context, recordID int64) ([]*models.GuildRecordComment, error) {
	query := squirrel.Select(
		"c.id", "c.record_id", "c.author_id", "c.content", "c.created_at",
		"u.id", "u.email", "u.nickname", "u.profile_image_url", "u.created_at", "u.updated_at",
	).
		From("guild_record_comments c").
		Join("users u ON u.id = c.author_id").
		Where("c.record_id = ?", recordID).
		OrderBy("c.created_at ASC", "c.id ASC").
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

	var comments []*models.GuildRecordComment
	for rows.Next() {
		var comment models.GuildRecordComment
		var author models.User
		err := rows.Scan(
			&comment.ID,
			&comment.RecordID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&author.ID,
			&author.Email,
			&author.Nickname,
			&author.ProfileImageURL,
			&author.CreatedAt,
			&author.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		comment.Author = &author
		comments = append(comments, &comment)
	}

	return comments, nil
}

// GetCommentCountsByRecordIDs retrieves comment counts for multiple records
func (r *CommentRepository) GetCommentCountsByRecordIDs(ctx context.Context, recordIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int)
	if len(recordIDs) == 0 {
		return result, nil
	}

	query := squirrel.Select("record_id", "COUNT(*)").
		From("guild_record_comments").
		Where(squirrel.Eq{"record_id": recordIDs}).
		GroupBy("record_id").
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
		var recordID int64
		var count int
		if err := rows.Scan(&recordID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[recordID] = count
	}

	return result, nil
}

// DeleteComment removes a comment
func (r *CommentRepository) DeleteComment(ctx context.Context, id int64) error {
	query := squirrel.Delete("guild_record_comments").
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
		return apperrors.ErrCommentNotFound
	}

	return nil
}
