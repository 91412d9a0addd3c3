package models

import "time"

// TasteRecord is a user-authored taste entry
type TasteRecord struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Category  string    `json:"category" db:"category"`
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RecommendationKind distinguishes stored aggregation snapshots
type RecommendationKind string

const (
	// RecommendationDashboard is the per-user taste-dashboard snapshot;
	// at most one row per user via upsert on (user_id, kind)
	RecommendationDashboard RecommendationKind = "DASHBOARD"
)

// Recommendation stores a computed aggregation payload for a user
type Recommendation struct {
	ID        int64              `json:"id" db:"id"`
	UserID    int64              `json:"userId" db:"user_id"`
	Kind      RecommendationKind `json:"kind" db:"kind"`
	Payload   []byte             `json:"-" db:"payload"` // JSONB
	UpdatedAt time.Time          `json:"updatedAt" db:"updated_at"`
}
