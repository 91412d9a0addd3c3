package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
	"github.com/seojin/tastemap/internal/pkg/helpers"
)

// GuildRecordController handles guild record and comment operations
type GuildRecordController struct {
	recordService services.GuildRecordService
}

// NewGuildRecordController creates a new GuildRecordController
func NewGuildRecordController(recordService services.GuildRecordService) *GuildRecordController {
	return &GuildRecordController{recordService: recordService}
}

// CreateRecord creates a guild record
// @Summary Create a guild record
// @Description Creates a record, awards guild score and advances the author's missions
// @Tags guild-records
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param request body dto.CreateGuildRecordRequest true "Record details"
// @Success 201 {object} dto.APIResponse{data=dto.GuildRecordResponse} "Record created"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Router /guilds/{guildId}/records [post]
func (c *GuildRecordController) CreateRecord(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	var req dto.CreateGuildRecordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	record, err := c.recordService.CreateRecord(ctx.Request.Context(), guildID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record))
}

// GetRecords lists a guild's records
// @Summary List guild records
// @Tags guild-records
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.GuildRecordListResponse} "Records"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Router /guilds/{guildId}/records [get]
func (c *GuildRecordController) GetRecords(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	records, err := c.recordService.GetRecords(ctx.Request.Context(), guildID, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
}

// GetRecordByID returns one record
// @Summary Get guild record
// @Tags guild-records
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param recordId path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.GuildRecordResponse} "Record"
// @Failure 404 {object} dto.APIResponse "Record not found"
// @Router /guilds/{guildId}/records/{recordId} [get]
func (c *GuildRecordController) GetRecordByID(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}

	record, err := c.recordService.GetRecordByID(ctx.Request.Context(), guildID, recordID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record))
}

// DeleteRecord removes a record
// @Summary Delete guild record
// @Description Only the author may delete their record
// @Tags guild-records
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param recordId path int true "Record ID"
// @Success 200 {object} dto.APIResponse "Record deleted"
// @Failure 403 {object} dto.APIResponse "Not the author"
// @Router /guilds/{guildId}/records/{recordId} [delete]
func (c *GuildRecordController) DeleteRecord(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}

	if err := c.recordService.DeleteRecord(ctx.Request.Context(), guildID, recordID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// CreateComment adds a comment to a record
// @Summary Comment on a record
// @Tags guild-records
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param recordId path int true "Record ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Router /guilds/{guildId}/records/{recordId}/comments [post]
func (c *GuildRecordController) CreateComment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	comment, err := c.recordService.CreateComment(ctx.Request.Context(), guildID, recordID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// GetComments lists a record's comments
// @Summary List record comments
// @Tags guild-records
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param recordId path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Router /guilds/{guildId}/records/{recordId}/comments [get]
func (c *GuildRecordController) GetComments(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}

	comments, err := c.recordService.GetComments(ctx.Request.Context(), guildID, recordID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// DeleteComment removes a comment
// @Summary Delete a comment
// @Description Only the comment's author may delete it
// @Tags guild-records
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param recordId path int true "Record ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.APIResponse "Comment deleted"
// @Failure 403 {object} dto.APIResponse "Not the author"
// @Router /guilds/{guildId}/records/{recordId}/comments/{commentId} [delete]
func (c *GuildRecordController) DeleteComment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	recordID, ok := parseIDParam(ctx, "recordId")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(ctx, "commentId")
	if !ok {
		return
	}

	if err := c.recordService.DeleteComment(ctx.Request.Context(), guildID, recordID, commentID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}
