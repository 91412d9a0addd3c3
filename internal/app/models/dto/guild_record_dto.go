package dto

import "time"

// CreateGuildRecordRequest creates a guild record
type CreateGuildRecordRequest struct {
	Title     string  `json:"title" binding:"required,min=1,max=100"`
	Content   string  `json:"content" binding:"max=2000"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	PlaceName *string `json:"placeName,omitempty" binding:"omitempty,max=100"`
}

// GuildRecordResponse is the public view of a guild record
type GuildRecordResponse struct {
	ID           int64              `json:"id" example:"10"`
	GuildID      int64              `json:"guildId" example:"1"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	ImageURL     *string            `json:"imageUrl,omitempty"`
	PlaceName    *string            `json:"placeName,omitempty"`
	Author       *UserBasicResponse `json:"author,omitempty"`
	CommentCount int                `json:"commentCount" example:"3"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// GuildRecordListResponse is a paginated list of guild records
type GuildRecordListResponse struct {
	Records        []GuildRecordResponse `json:"records"`
	PaginationInfo PaginationInfo        `json:"pagination"`
}

// CreateCommentRequest creates a comment on a guild record
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// CommentResponse is the public view of a record comment
type CommentResponse struct {
	ID        int64              `json:"id" example:"7"`
	RecordID  int64              `json:"recordId" example:"10"`
	Content   string             `json:"content"`
	Author    *UserBasicResponse `json:"author,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}
