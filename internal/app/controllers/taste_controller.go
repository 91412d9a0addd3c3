package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
	"github.com/seojin/tastemap/internal/pkg/helpers"
)

// TasteController handles taste records and the taste dashboard
type TasteController struct {
	tasteService services.TasteService
}

// NewTasteController creates a new TasteController
func NewTasteController(tasteService services.TasteService) *TasteController {
	return &TasteController{tasteService: tasteService}
}

// CreateTasteRecord creates a taste record
// @Summary Create a taste record
// @Tags taste-records
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateTasteRecordRequest true "Record details"
// @Success 201 {object} dto.APIResponse{data=dto.TasteRecordResponse} "Record created"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Router /taste-records [post]
func (c *TasteController) CreateTasteRecord(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTasteRecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.tasteService.CreateTasteRecord(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record))
}

// GetTasteRecords lists the caller's taste records
// @Summary List taste records
// @Tags taste-records
// @Produce json
// @Security CookieAuth
// @Param category query string false "Filter by category"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.TasteRecordListResponse} "Records"
// @Router /taste-records [get]
func (c *TasteController) GetTasteRecords(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	records, err := c.tasteService.GetTasteRecords(ctx.Request.Context(), userID, ctx.Query("category"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
}

// GetTasteRecordByID returns one taste record
// @Summary Get taste record
// @Tags taste-records
// @Produce json
// @Security CookieAuth
// @Param recordId path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.TasteRecordResponse} "Record"
// @Failure 404 {object} dto.APIResponse "Record not found"
// @Router /taste-records/{recordId} [get]
func (c *TasteController) GetTasteRecordByID(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}

	record, err := c.tasteService.GetTasteRecordByID(ctx.Request.Context(), userID, recordID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// UpdateTasteRecord updates a taste record
// @Summary Update taste record
// @Tags taste-records
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param recordId path int true "Record ID"
// @Param request body dto.UpdateTasteRecordRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=dto.TasteRecordResponse} "Updated record"
// @Failure 403 {object} dto.APIResponse "Not the author"
// @Router /taste-records/{recordId} [patch]
func (c *TasteController) UpdateTasteRecord(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}

	var req dto.UpdateTasteRecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.tasteService.UpdateTasteRecord(ctx.Request.Context(), userID, recordID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// DeleteTasteRecord removes a taste record
// @Summary Delete taste record
// @Tags taste-records
// @Produce json
// @Security CookieAuth
// @Param recordId path int true "Record ID"
// @Success 200 {object} dto.APIResponse "Record deleted"
// @Failure 403 {object} dto.APIResponse "Not the author"
// @Router /taste-records/{recordId} [delete]
func (c *TasteController) DeleteTasteRecord(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}

	if err := c.tasteService.DeleteTasteRecord(ctx.Request.Context(), userID, recordID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// GetDashboard returns the caller's category-ratio dashboard
// @Summary Taste dashboard
// @Description Aggregates the caller's taste records into category ratios
// @Tags taste-records
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=dto.TasteDashboardResponse} "Dashboard"
// @Router /taste-dashboard [get]
func (c *TasteController) GetDashboard(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.tasteService.GetDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}
