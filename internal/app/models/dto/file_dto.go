package dto

import "time"

// UploadResponse describes a stored upload
type UploadResponse struct {
	ID        int64     `json:"id" example:"8"`
	FileName  string    `json:"fileName" example:"ramen.jpg"`
	FileURL   string    `json:"fileUrl" example:"http://localhost:8080/uploads/records/7e6c….jpg"`
	FileSize  int64     `json:"fileSize" example:"204800"`
	FileType  string    `json:"fileType" example:"image/jpeg"`
	Category  string    `json:"category" example:"records"`
	CreatedAt time.Time `json:"createdAt"`
}
