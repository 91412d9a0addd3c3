package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
	"github.com/seojin/tastemap/internal/pkg/helpers"
)

// StayController handles location pings and stay history
type StayController struct {
	stayService services.StayService
}

// NewStayController creates a new StayController
func NewStayController(stayService services.StayService) *StayController {
	return &StayController{stayService: stayService}
}

// RecordPing folds a geolocation ping into the caller's stays
// @Summary Record a location ping
// @Description A ping near the latest stay extends it, otherwise a new stay starts
// @Tags stays
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.LocationPingRequest true "Coordinates"
// @Success 200 {object} dto.APIResponse{data=dto.LocationPingResponse} "Ping recorded"
// @Failure 400 {object} dto.APIResponse "Invalid coordinates"
// @Router /location [post]
func (c *StayController) RecordPing(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.LocationPingRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.stayService.RecordPing(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetStays lists the caller's stays
// @Summary List stays
// @Tags stays
// @Produce json
// @Security CookieAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StayListResponse} "Stays"
// @Router /stays [get]
func (c *StayController) GetStays(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	stays, err := c.stayService.GetStays(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stays))
}
