package services

import (
	"context"
	"mime/multipart"
	"path"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
	"github.com/seojin/tastemap/internal/pkg/filestorage"
)

const maxUploadSize = 10 << 20 // 10 MiB

// Upload categories map to subdirectories under the storage root
var validCategoryPattern = regexp.MustCompile(`^[a-z0-9-]{1,30}$`)

// FileService defines the interface for upload operations
type FileService interface {
	UploadFile(ctx context.Context, userID int64, category string, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error)
	DeleteFile(ctx context.Context, userID, fileID int64) error
}

// fileServiceImpl implements FileService
type fileServiceImpl struct {
	fileRepo *repositories.FileRepository
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(fileRepo *repositories.FileRepository, storage filestorage.FileStorage, logger zerolog.Logger) FileService {
	return &fileServiceImpl{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

// UploadFile stores an uploaded file on disk under its category directory
// and records it
func (s *fileServiceImpl) UploadFile(ctx context.Context, userID int64, category string, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("no file provided")
	}
	if fileHeader.Size > maxUploadSize {
		return nil, apperrors.NewBadRequestError("file exceeds the 10 MiB limit")
	}
	if !validCategoryPattern.MatchString(category) {
		return nil, apperrors.NewBadRequestError("invalid upload category")
	}

	fileURL, err := s.storage.SaveFileWithPath(fileHeader, category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("Failed to store upload")
		return nil, err
	}

	file := &models.File{
		FileName:   fileHeader.Filename,
		FilePath:   path.Join(category, path.Base(fileURL)),
		FileURL:    fileURL,
		FileSize:   fileHeader.Size,
		FileType:   fileHeader.Header.Get("Content-Type"),
		Category:   category,
		UploadedBy: userID,
	}
	file, err = s.fileRepo.CreateFile(ctx, file)
	if err != nil {
		// The record failed, so remove the orphaned file from disk
		_ = s.storage.DeleteFile(s.storage.GetFullPath(fileURL))
		return nil, err
	}

	return &dto.UploadResponse{
		ID:        file.ID,
		FileName:  file.FileName,
		FileURL:   file.FileURL,
		FileSize:  file.FileSize,
		FileType:  file.FileType,
		Category:  file.Category,
		CreatedAt: file.CreatedAt,
	}, nil
}

// DeleteFile removes an upload the caller owns, from the database first and
// then from disk. A missing disk file only gets logged; the record is gone
// either way.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, userID, fileID int64) error {
	file, err := s.fileRepo.GetFileByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file.UploadedBy != userID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.fileRepo.DeleteFile(ctx, fileID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(s.storage.GetFullPath(file.FileURL)); err != nil {
		s.logger.Warn().Err(err).Int64("fileID", fileID).Str("path", file.FilePath).
			Msg("Failed to remove uploaded file from disk")
	}
	return nil
}
