package models

import "time"

// MembershipStatus defines the approval state of a guild membership
type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "PENDING"
	MembershipApproved MembershipStatus = "APPROVED"
)

// Guild represents a user-created social group
type Guild struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	OwnerID       int64     `json:"ownerId" db:"owner_id"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Owner   *User              `json:"owner,omitempty"`
	Members []*GuildMembership `json:"members,omitempty"`
}

// GuildMembership represents a user's approval-gated membership of a guild.
// The owner receives an APPROVED membership when the guild is created.
type GuildMembership struct {
	ID       int64            `json:"id" db:"id"`
	GuildID  int64            `json:"guildId" db:"guild_id"`
	UserID   int64            `json:"userId" db:"user_id"`
	Status   MembershipStatus `json:"status" db:"status"`
	JoinedAt time.Time        `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// GuildScore tracks a guild's accumulated activity score for the ranking
type GuildScore struct {
	GuildID   int64     `json:"guildId" db:"guild_id"`
	Score     int64     `json:"score" db:"score"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
