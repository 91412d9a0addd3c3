package dto

import "time"

// CreateTasteRecordRequest creates a taste record
type CreateTasteRecordRequest struct {
	Title    string  `json:"title" binding:"required,min=1,max=100" example:"Tonkotsu at Menya"`
	Category string  `json:"category" binding:"required,min=1,max=50" example:"ramen"`
	Content  string  `json:"content" binding:"max=2000"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// UpdateTasteRecordRequest updates a taste record (author only)
type UpdateTasteRecordRequest struct {
	Title    *string `json:"title,omitempty" binding:"omitempty,min=1,max=100"`
	Category *string `json:"category,omitempty" binding:"omitempty,min=1,max=50"`
	Content  *string `json:"content,omitempty" binding:"omitempty,max=2000"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// TasteRecordResponse is the public view of a taste record
type TasteRecordResponse struct {
	ID        int64     `json:"id" example:"3"`
	Title     string    `json:"title"`
	Category  string    `json:"category" example:"ramen"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TasteRecordListResponse is a paginated list of taste records
type TasteRecordListResponse struct {
	Records        []TasteRecordResponse `json:"records"`
	PaginationInfo PaginationInfo        `json:"pagination"`
}

// CategoryRatio is one slice of the taste dashboard
type CategoryRatio struct {
	Category string  `json:"category" example:"ramen"`
	Count    int     `json:"count" example:"4"`
	Ratio    float64 `json:"ratio" example:"0.4"`
}

// TasteDashboardResponse is the caller's category-ratio aggregation
type TasteDashboardResponse struct {
	TotalRecords int             `json:"totalRecords" example:"10"`
	Categories   []CategoryRatio `json:"categories"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
