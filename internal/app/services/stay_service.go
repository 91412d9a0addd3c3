package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
	"github.com/seojin/tastemap/internal/pkg/helpers"
)

// StayService defines the interface for location ping and stay operations
type StayService interface {
	RecordPing(ctx context.Context, userID int64, req *dto.LocationPingRequest) (*dto.LocationPingResponse, error)
	GetStays(ctx context.Context, userID int64, page, size int) (*dto.StayListResponse, error)
}

// stayServiceImpl implements StayService
type stayServiceImpl struct {
	stayRepo *repositories.StayRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStayService creates a new StayService
func NewStayService(stayRepo *repositories.StayRepository, logger zerolog.Logger) StayService {
	return &stayServiceImpl{
		stayRepo: stayRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordPing folds a geolocation ping into the user's stays. A ping close
// in space and time to the latest stay extends it; anything else opens a
// new stay.
func (s *stayServiceImpl) RecordPing(ctx context.Context, userID int64, req *dto.LocationPingRequest) (*dto.LocationPingResponse, error) {
	now := s.now()
	lat, lng := *req.Latitude, *req.Longitude

	latest, err := s.stayRepo.GetLatestStayByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrStayNotFound) {
		return nil, err
	}

	if extendsStay(latest, lat, lng, now) {
		if err := s.stayRepo.ExtendStay(ctx, latest.ID, now); err != nil {
			return nil, err
		}
		latest.EndedAt = now
		return &dto.LocationPingResponse{Stay: *mapStayToResponse(latest), Extended: true}, nil
	}

	stay := &models.Stay{
		UserID:    userID,
		Latitude:  lat,
		Longitude: lng,
		Category:  req.Category,
		PlaceName: req.PlaceName,
		StartedAt: now,
		EndedAt:   now,
	}
	if _, err := s.stayRepo.CreateStay(ctx, stay); err != nil {
		return nil, err
	}

	return &dto.LocationPingResponse{Stay: *mapStayToResponse(stay), Extended: false}, nil
}

// GetStays lists the caller's stays, newest first
func (s *stayServiceImpl) GetStays(ctx context.Context, userID int64, page, size int) (*dto.StayListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	stays, total, err := s.stayRepo.GetStaysByUserID(ctx, userID, int(offset), limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StayResponse, 0, len(stays))
	for _, stay := range stays {
		items = append(items, *mapStayToResponse(stay))
	}

	return &dto.StayListResponse{
		Stays:          items,
		PaginationInfo: helpers.NewPaginationInfo(int64(total), page, limit),
	}, nil
}

func mapStayToResponse(stay *models.Stay) *dto.StayResponse {
	return &dto.StayResponse{
		ID:        stay.ID,
		Latitude:  stay.Latitude,
		Longitude: stay.Longitude,
		Category:  stay.Category,
		PlaceName: stay.PlaceName,
		StartedAt: stay.StartedAt,
		EndedAt:   stay.EndedAt,
	}
}
