package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification inserts a notification, optionally inside a transaction
func (r *NotificationRepository) CreateNotification(ctx context.Context, q Querier, notification *models.Notification) (*models.Notification, error) {
	if q == nil {
		q = r.db
	}

	query := squirrel.Insert("notifications").
		Columns("user_id", "guild_id", "type", "message").
		Values(notification.UserID, notification.GuildID, notification.Type, notification.Message).
		Suffix("RETURNING id, is_read, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return notification, nil
}

// GetNotificationsByUserID retrieves a user's notifications, unread first then
// newest first, with the total and unread counts
func (r *NotificationRepository) GetNotificationsByUserID(ctx context.Context, userID int64, offset, limit int) ([]*models.Notification, int, int, error) {
	countSQL := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read)
		FROM notifications
		WHERE user_id = $1`

	var total, unread int
	err := r.db.QueryRow(ctx, countSQL, userID).Scan(&total, &unread)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error executing count query: %w", err)
	}

	query := squirrel.Select("id", "user_id", "guild_id", "type", "message", "is_read", "created_at").
		From("notifications").
		Where("user_id = ?", userID).
		OrderBy("is_read ASC", "created_at DESC", "id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var notification models.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.GuildID,
			&notification.Type,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("error scanning row: %w", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, total, unread, nil
}

// MarkAsRead marks one of the user's notifications as read
func (r *NotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	query := squirrel.Update("notifications").
		Set("is_read", true).
		Where("id = ? AND user_id = ?", notificationID, userID).
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
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead marks all of the user's notifications as read and returns
// how many changed
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	query := squirrel.Update("notifications").
		Set("is_read", true).
		Where("user_id = ? AND NOT is_read", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return tag.RowsAffected(), nil
}
