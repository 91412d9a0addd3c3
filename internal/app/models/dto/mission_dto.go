package dto

import "time"

// CreateMissionRequest creates a guild mission (owner only)
type CreateMissionRequest struct {
	Title           string    `json:"title" binding:"required,min=1,max=100"`
	Description     string    `json:"description" binding:"max=1000"`
	TargetCount     int       `json:"targetCount" binding:"required,min=1" example:"5"`
	MaxParticipants int       `json:"maxParticipants" binding:"required,min=1" example:"10"`
	StartsAt        time.Time `json:"startsAt" binding:"required"`
	EndsAt          time.Time `json:"endsAt" binding:"required"`
}

// MissionResponse is the public view of a mission, including the caller's
// own progress when they participate.
type MissionResponse struct {
	ID               int64      `json:"id" example:"2"`
	GuildID          int64      `json:"guildId" example:"1"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TargetCount      int        `json:"targetCount" example:"5"`
	MaxParticipants  int        `json:"maxParticipants" example:"10"`
	ParticipantCount int        `json:"participantCount" example:"4"`
	StartsAt         time.Time  `json:"startsAt"`
	EndsAt           time.Time  `json:"endsAt"`
	Joined           bool       `json:"joined" example:"true"`
	MyRecordCount    int        `json:"myRecordCount" example:"3"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// MissionParticipantResponse is one participant's progress row
type MissionParticipantResponse struct {
	UserID      int64      `json:"userId" example:"3"`
	Nickname    string     `json:"nickname" example:"dohyun"`
	RecordCount int        `json:"recordCount" example:"2"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	JoinedAt    time.Time  `json:"joinedAt"`
}
