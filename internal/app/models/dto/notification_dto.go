package dto

import "time"

// NotificationResponse is the public view of a notification
type NotificationResponse struct {
	ID        int64     `json:"id" example:"12"`
	Type      string    `json:"type" example:"JOIN_APPROVED"`
	Message   string    `json:"message"`
	GuildID   *int64    `json:"guildId,omitempty"`
	IsRead    bool      `json:"isRead" example:"false"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse is a paginated list of notifications
type NotificationListResponse struct {
	Notifications  []NotificationResponse `json:"notifications"`
	UnreadCount    int64                  `json:"unreadCount" example:"2"`
	PaginationInfo PaginationInfo         `json:"pagination"`
}
