package models

import "time"

// File represents an uploaded file stored on disk and served under /uploads
type File struct {
	ID         int64     `json:"id" db:"id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FilePath   string    `json:"filePath" db:"file_path"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	FileSize   int64     `json:"fileSize" db:"file_size"`
	FileType   string    `json:"fileType" db:"file_type"` // MIME type
	Category   string    `json:"category" db:"category"`  // upload subdirectory
	UploadedBy int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
