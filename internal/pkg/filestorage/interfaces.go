package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves an uploaded file under the storage root
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves an uploaded file under a subdirectory
	// (the upload category) and returns its accessible URL path
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the filesystem path for a stored file URL
	GetFullPath(fileURL string) string
}
