package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
	"github.com/seojin/tastemap/internal/pkg/helpers"
)

// TasteService defines the interface for taste record and dashboard operations
type TasteService interface {
	CreateTasteRecord(ctx context.Context, userID int64, req *dto.CreateTasteRecordRequest) (*dto.TasteRecordResponse, error)
	GetTasteRecords(ctx context.Context, userID int64, category string, page, size int) (*dto.TasteRecordListResponse, error)
	GetTasteRecordByID(ctx context.Context, userID, recordID int64) (*dto.TasteRecordResponse, error)
	UpdateTasteRecord(ctx context.Context, userID, recordID int64, req *dto.UpdateTasteRecordRequest) (*dto.TasteRecordResponse, error)
	DeleteTasteRecord(ctx context.Context, userID, recordID int64) error
	GetDashboard(ctx context.Context, userID int64) (*dto.TasteDashboardResponse, error)
}

// tasteServiceImpl implements TasteService
type tasteServiceImpl struct {
	tasteRepo *repositories.TasteRecordRepository
	logger    zerolog.Logger
}

// NewTasteService creates a new TasteService
func NewTasteService(tasteRepo *repositories.TasteRecordRepository, logger zerolog.Logger) TasteService {
	return &tasteServiceImpl{
		tasteRepo: tasteRepo,
		logger:    logger,
	}
}

// CreateTasteRecord stores a new taste record for the caller
func (s *tasteServiceImpl) CreateTasteRecord(ctx context.Context, userID int64, req *dto.CreateTasteRecordRequest) (*dto.TasteRecordResponse, error) {
	record := &models.TasteRecord{
		UserID:   userID,
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if _, err := s.tasteRepo.CreateTasteRecord(ctx, record); err != nil {
		return nil, err
	}

	return mapTasteRecordToResponse(record), nil
}

// GetTasteRecords lists the caller's taste records
func (s *tasteServiceImpl) GetTasteRecords(ctx context.Context, userID int64, category string, page, size int) (*dto.TasteRecordListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	records, total, err := s.tasteRepo.GetTasteRecordsByUserID(ctx, userID, category, int(offset), limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TasteRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *mapTasteRecordToResponse(r))
	}

	return &dto.TasteRecordListResponse{
		Records:        items,
		PaginationInfo: helpers.NewPaginationInfo(int64(total), page, limit),
	}, nil
}

// GetTasteRecordByID returns one of the caller's taste records
func (s *tasteServiceImpl) GetTasteRecordByID(ctx context.Context, userID, recordID int64) (*dto.TasteRecordResponse, error) {
	record, err := s.getOwnedRecord(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}
	return mapTasteRecordToResponse(record), nil
}

// UpdateTasteRecord changes one of the caller's taste records
func (s *tasteServiceImpl) UpdateTasteRecord(ctx context.Context, userID, recordID int64, req *dto.UpdateTasteRecordRequest) (*dto.TasteRecordResponse, error) {
	record, err := s.getOwnedRecord(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Category != nil {
		record.Category = *req.Category
	}
	if req.Content != nil {
		record.Content = *req.Content
	}
	if req.ImageURL != nil {
		record.ImageURL = req.ImageURL
	}

	if err := s.tasteRepo.UpdateTasteRecord(ctx, record); err != nil {
		return nil, err
	}

	return mapTasteRecordToResponse(record), nil
}

// DeleteTasteRecord removes one of the caller's taste records
func (s *tasteServiceImpl) DeleteTasteRecord(ctx context.Context, userID, recordID int64) error {
	if _, err := s.getOwnedRecord(ctx, userID, recordID); err != nil {
		return err
	}
	return s.tasteRepo.DeleteTasteRecord(ctx, recordID)
}

// GetDashboard recomputes the caller's category ratios and stores the
// snapshot, keeping one row per user
func (s *tasteServiceImpl) GetDashboard(ctx context.Context, userID int64) (*dto.TasteDashboardResponse, error) {
	counts, err := s.tasteRepo.GetCategoryCountsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, ratios := buildCategoryRatios(counts)

	dashboard := &dto.TasteDashboardResponse{
		TotalRecords: total,
		Categories:   ratios,
		UpdatedAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(dashboard)
	if err != nil {
		return nil, err
	}
	if err := s.tasteRepo.UpsertRecommendation(ctx, userID, models.RecommendationDashboard, payload); err != nil {
		// The computed dashboard is still valid even if the snapshot write
		// fails.
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to store dashboard snapshot")
	}

	return dashboard, nil
}

func (s *tasteServiceImpl) getOwnedRecord(ctx context.Context, userID, recordID int64) (*models.TasteRecord, error) {
	record, err := s.tasteRepo.GetTasteRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	return record, nil
}

func mapTasteRecordToResponse(record *models.TasteRecord) *dto.TasteRecordResponse {
	return &dto.TasteRecordResponse{
		ID:        record.ID,
		Title:     record.Title,
		Category:  record.Category,
		Content:   record.Content,
		ImageURL:  record.ImageURL,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
