package services

import (
	"context"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/pkg/kakao"
)

// Recommendation tuning
const (
	recommendationCategories = 3    // top stay categories to search
	recommendationRadiusM    = 1000 // search radius around the caller
	recommendationMaxPlaces  = 15
)

// RecommendationService defines the interface for place recommendations and
// route planning
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID int64, lat, lng float64) (*dto.RecommendationResponse, error)
	GetRoute(ctx context.Context, req *dto.RouteRequest) (*dto.RouteResponse, error)
}

// recommendationServiceImpl implements RecommendationService
type recommendationServiceImpl struct {
	stayRepo *repositories.StayRepository
	kakao    *kakao.Client
	logger   zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(stayRepo *repositories.StayRepository, kakaoClient *kakao.Client, logger zerolog.Logger) RecommendationService {
	return &recommendationServiceImpl{
		stayRepo: stayRepo,
		kakao:    kakaoClient,
		logger:   logger,
	}
}

// GetRecommendations weighs the caller's stay history per category and
// returns nearby Kakao places ranked by those weights
func (s *recommendationServiceImpl) GetRecommendations(ctx context.Context, userID int64, lat, lng float64) (*dto.RecommendationResponse, error) {
	counts, err := s.stayRepo.GetCategoryCountsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	weights := buildCategoryWeights(counts)
	top := weights
	if len(top) > recommendationCategories {
		top = top[:recommendationCategories]
	}

	var places []dto.RecommendedPlace
	for _, w := range top {
		results, err := s.kakao.SearchByCategory(ctx, w.Category, lng, lat, recommendationRadiusM)
		if err != nil {
			// A category search failure degrades the result set instead of
			// failing the whole request.
			s.logger.Warn().Err(err).Str("category", w.Category).Msg("Kakao category search failed")
			continue
		}
		for _, p := range results {
			places = append(places, mapPlaceToRecommendation(p, w.Weight))
		}
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Weight > places[j].Weight
	})
	if len(places) > recommendationMaxPlaces {
		places = places[:recommendationMaxPlaces]
	}

	return &dto.RecommendationResponse{
		Weights: weights,
		Places:  places,
	}, nil
}

// GetRoute asks Kakao Mobility for a recommended route through the given
// points
func (s *recommendationServiceImpl) GetRoute(ctx context.Context, req *dto.RouteRequest) (*dto.RouteResponse, error) {
	waypoints := make([]kakao.Coord, 0, len(req.Waypoints))
	for _, p := range req.Waypoints {
		waypoints = append(waypoints, routePointToCoord(p))
	}

	summary, err := s.kakao.RequestRoute(ctx, routePointToCoord(req.Origin), routePointToCoord(req.Destination), waypoints)
	if err != nil {
		return nil, err
	}

	return &dto.RouteResponse{
		DistanceMeters:  summary.Distance,
		DurationSeconds: summary.Duration,
	}, nil
}

// buildCategoryWeights turns stay counts into normalized weights sorted by
// count descending, category ascending for equal counts
func buildCategoryWeights(counts map[string]int) []dto.CategoryWeight {
	total := 0
	for _, c := range counts {
		total += c
	}

	weights := make([]dto.CategoryWeight, 0, len(counts))
	for category, count := range counts {
		weight := 0.0
		if total > 0 {
			weight = float64(count) / float64(total)
		}
		weights = append(weights, dto.CategoryWeight{
			Category: category,
			Count:    count,
			Weight:   weight,
		})
	}

	sort.Slice(weights, func(i, j int) bool {
		if weights[i].Count != weights[j].Count {
			return weights[i].Count > weights[j].Count
		}
		return weights[i].Category < weights[j].Category
	})

	return weights
}

func mapPlaceToRecommendation(place kakao.Place, weight float64) dto.RecommendedPlace {
	// Kakao returns coordinates as strings; unparsable values stay zero
	lng, _ := strconv.ParseFloat(place.X, 64)
	lat, _ := strconv.ParseFloat(place.Y, 64)

	return dto.RecommendedPlace{
		PlaceID:     place.ID,
		Name:        place.PlaceName,
		Category:    place.CategoryGroupCode,
		AddressName: place.AddressName,
		PlaceURL:    place.PlaceURL,
		Latitude:    lat,
		Longitude:   lng,
		Weight:      weight,
	}
}

func routePointToCoord(p dto.RoutePoint) kakao.Coord {
	return kakao.Coord{
		Name: p.Name,
		X:    p.Longitude,
		Y:    p.Latitude,
	}
}
