package models

import "time"

// NotificationType classifies notifications for the client
type NotificationType string

const (
	NotificationJoinRequest      NotificationType = "JOIN_REQUEST"
	NotificationJoinApproved     NotificationType = "JOIN_APPROVED"
	NotificationMissionCompleted NotificationType = "MISSION_COMPLETED"
	NotificationNewComment       NotificationType = "NEW_COMMENT"
)

// Notification is a message delivered to a single user
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	GuildID   *int64           `json:"guildId,omitempty" db:"guild_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
