package models

import "time"

// GuildRecord is a guild-scoped post. Creating one increments the guild's
// score and the author's active mission counters in the same transaction.
type GuildRecord struct {
	ID        int64     `json:"id" db:"id"`
	GuildID   int64     `json:"guildId" db:"guild_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	PlaceName *string   `json:"placeName,omitempty" db:"place_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author   *User                 `json:"author,omitempty"`
	Comments []*GuildRecordComment `json:"comments,omitempty"`
}

// GuildRecordComment is a comment on a guild record
type GuildRecordComment struct {
	ID        int64     `json:"id" db:"id"`
	RecordID  int64     `json:"recordId" db:"record_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}
