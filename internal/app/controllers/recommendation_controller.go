package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
)

// RecommendationController handles place recommendations and routes
type RecommendationController struct {
	recommendationService services.RecommendationService
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(recommendationService services.RecommendationService) *RecommendationController {
	return &RecommendationController{recommendationService: recommendationService}
}

// GetRecommendations returns places ranked by the caller's stay history
// @Summary Get place recommendations
// @Description Nearby places weighted by the caller's stay categories
// @Tags recommendations
// @Produce json
// @Security CookieAuth
// @Param lat query number true "Latitude of the caller"
// @Param lng query number true "Longitude of the caller"
// @Success 200 {object} dto.APIResponse{data=dto.RecommendationResponse} "Recommendations"
// @Failure 400 {object} dto.APIResponse "Invalid coordinates"
// @Failure 502 {object} dto.APIResponse "Place provider unavailable"
// @Router /recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	lat, latErr := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(ctx.Query("lng"), 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "lat and lng query parameters are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	recommendations, err := c.recommendationService.GetRecommendations(ctx.Request.Context(), userID, lat, lng)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(recommendations))
}

// GetRoute returns a recommended route through selected places
// @Summary Plan a route
// @Description Optimized route through origin, waypoints and destination
// @Tags recommendations
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.RouteRequest true "Route points"
// @Success 200 {object} dto.APIResponse{data=dto.RouteResponse} "Route summary"
// @Failure 502 {object} dto.APIResponse "Route provider unavailable"
// @Router /recommendations/route [post]
func (c *RecommendationController) GetRoute(ctx *gin.Context) {
	if _, ok := requireUserID(ctx); !ok {
		return
	}

	var req dto.RouteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	route, err := c.recommendationService.GetRoute(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(route))
}
