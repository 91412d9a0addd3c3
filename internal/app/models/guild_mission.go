package models

import "time"

// GuildMission is a guild-scoped challenge with a participant cap.
// Completion is tracked per participant by record count.
type GuildMission struct {
	ID              int64     `json:"id" db:"id"`
	GuildID         int64     `json:"guildId" db:"guild_id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	TargetCount     int       `json:"targetCount" db:"target_count"`
	MaxParticipants int       `json:"maxParticipants" db:"max_participants"`
	StartsAt        time.Time `json:"startsAt" db:"starts_at"`
	EndsAt          time.Time `json:"endsAt" db:"ends_at"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Participants []*MissionParticipant `json:"participants,omitempty"`
}

// IsActiveAt reports whether the mission window covers the given time
func (m *GuildMission) IsActiveAt(t time.Time) bool {
	return !t.Before(m.StartsAt) && !t.After(m.EndsAt)
}

// MissionParticipant tracks one user's progress in a mission
type MissionParticipant struct {
	ID          int64      `json:"id" db:"id"`
	MissionID   int64      `json:"missionId" db:"mission_id"`
	UserID      int64      `json:"userId" db:"user_id"`
	RecordCount int        `json:"recordCount" db:"record_count"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	JoinedAt    time.Time  `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// IsCompleted reports whether the participant has finished the mission
func (p *MissionParticipant) IsCompleted() bool {
	return p.CompletedAt != nil
}
