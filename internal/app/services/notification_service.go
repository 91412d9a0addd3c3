package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/pkg/helpers"
	"github.com/seojin/tastemap/internal/pkg/ws"
)

// NotificationService defines the interface for notification operations.
// Notify is also used by the guild services to fan notifications out.
type NotificationService interface {
	Notify(ctx context.Context, q repositories.Querier, userID int64, guildID *int64, notifType models.NotificationType, message string)
	GetNotifications(ctx context.Context, userID int64, page, size int) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo *repositories.NotificationRepository
	hub              *ws.Hub
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo *repositories.NotificationRepository, hub *ws.Hub, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		hub:              hub,
		logger:           logger,
	}
}

// Notify stores a notification and pushes it to the user's open sockets.
// A failure to store is logged, not propagated; the action that triggered
// the notification must not fail because of it. Pass a transaction querier
// to enroll the insert in a caller-managed transaction, or nil otherwise.
func (s *notificationServiceImpl) Notify(ctx context.Context, q repositories.Querier, userID int64, guildID *int64, notifType models.NotificationType, message string) {
	notification := &models.Notification{
		UserID:  userID,
		GuildID: guildID,
		Type:    notifType,
		Message: message,
	}

	notification, err := s.notificationRepo.CreateNotification(ctx, q, notification)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("userID", userID).
			Str("type", string(notifType)).
			Msg("Failed to store notification")
		return
	}

	if s.hub != nil {
		s.hub.Send(&ws.Push{
			UserID:         userID,
			NotificationID: notification.ID,
			Type:           string(notification.Type),
			Message:        notification.Message,
			GuildID:        notification.GuildID,
			CreatedAt:      notification.CreatedAt,
		})
	}
}

// GetNotifications returns the user's notifications, unread first
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID int64, page, size int) (*dto.NotificationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	notifications, total, unread, err := s.notificationRepo.GetNotificationsByUserID(ctx, userID, int(offset), limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Message:   n.Message,
			GuildID:   n.GuildID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications:  items,
		UnreadCount:    int64(unread),
		PaginationInfo: helpers.NewPaginationInfo(int64(total), page, limit),
	}, nil
}

// MarkAsRead marks one of the user's notifications as read
func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllAsRead marks all of the user's notifications as read
func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
