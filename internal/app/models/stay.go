package models

import "time"

// Stay represents a user dwelling near a place for a contiguous time
// window, derived from geolocation pings. A ping within 50 m and 5 minutes
// of the most recent stay extends it instead of opening a new one.
type Stay struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Category  string    `json:"category" db:"category"`
	PlaceName *string   `json:"placeName,omitempty" db:"place_name"`
	StartedAt time.Time `json:"startedAt" db:"started_at"`
	EndedAt   time.Time `json:"endedAt" db:"ended_at"`
}
