package dto

import "time"

// CreateGuildRequest creates a new guild
type CreateGuildRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=50" example:"Friday Ramen Club"`
	Description string  `json:"description" binding:"max=500"`
	CoverImage  *string `json:"coverImageUrl,omitempty"`
}

// UpdateGuildRequest updates an existing guild (owner only)
type UpdateGuildRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	CoverImage  *string `json:"coverImageUrl,omitempty"`
}

// GuildResponse is the public view of a guild
type GuildResponse struct {
	ID            int64              `json:"id" example:"1"`
	Name          string             `json:"name" example:"Friday Ramen Club"`
	Description   string             `json:"description"`
	CoverImageURL *string            `json:"coverImageUrl,omitempty"`
	Owner         *UserBasicResponse `json:"owner,omitempty"`
	MemberCount   int                `json:"memberCount" example:"7"`
	Score         int64              `json:"score" example:"120"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// GuildListResponse is a paginated list of guilds
type GuildListResponse struct {
	Guilds         []GuildResponse `json:"guilds"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// GuildFilterRequest carries list filters
type GuildFilterRequest struct {
	OwnerID  *int64
	Search   *string
	Page     int
	PageSize int
}

// GuildMemberResponse is one row of a guild's member list
type GuildMemberResponse struct {
	UserID   int64     `json:"userId" example:"3"`
	Nickname string    `json:"nickname" example:"dohyun"`
	Status   string    `json:"status" example:"APPROVED"`
	IsOwner  bool      `json:"isOwner" example:"false"`
	JoinedAt time.Time `json:"joinedAt"`
}

// GuildRankingEntry is one row of the guild ranking
type GuildRankingEntry struct {
	Rank        int    `json:"rank" example:"1"`
	GuildID     int64  `json:"guildId" example:"4"`
	Name        string `json:"name" example:"Friday Ramen Club"`
	Score       int64  `json:"score" example:"420"`
	MemberCount int    `json:"memberCount" example:"12"`
}
