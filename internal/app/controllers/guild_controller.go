package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
	"github.com/seojin/tastemap/internal/pkg/helpers"
)

// GuildController handles guild and membership operations
type GuildController struct {
	guildService services.GuildService
}

// NewGuildController creates a new GuildController
func NewGuildController(guildService services.GuildService) *GuildController {
	return &GuildController{guildService: guildService}
}

// CreateGuild handles guild creation
// @Summary Create a guild
// @Description Creates a guild with the caller as approved owner
// @Tags guilds
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.CreateGuildRequest true "Guild details"
// @Success 201 {object} dto.APIResponse{data=dto.GuildResponse} "Guild created"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Router /guilds [post]
func (c *GuildController) CreateGuild(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGuildRequest
	if !bindJSON(ctx, &req) {
		return
	}

	guild, err := c.guildService.CreateGuild(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(guild))
}

// GetGuilds lists guilds
// @Summary List guilds
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param search query string false "Filter by name"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.GuildListResponse} "Guilds"
// @Router /guilds [get]
func (c *GuildController) GetGuilds(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	guilds, err := c.guildService.GetGuilds(ctx.Request.Context(), ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(guilds))
}

// GetGuildByID returns one guild
// @Summary Get guild
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Success 200 {object} dto.APIResponse{data=dto.GuildResponse} "Guild"
// @Failure 404 {object} dto.APIResponse "Guild not found"
// @Router /guilds/{guildId} [get]
func (c *GuildController) GetGuildByID(ctx *gin.Context) {
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	guild, err := c.guildService.GetGuildByID(ctx.Request.Context(), guildID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(guild))
}

// UpdateGuild updates a guild
// @Summary Update guild
// @Description Changes a guild's details. Owner only.
// @Tags guilds
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param request body dto.UpdateGuildRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=dto.GuildResponse} "Updated guild"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Router /guilds/{guildId} [patch]
func (c *GuildController) UpdateGuild(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	var req dto.UpdateGuildRequest
	if !bindJSON(ctx, &req) {
		return
	}

	guild, err := c.guildService.UpdateGuild(ctx.Request.Context(), guildID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(guild))
}

// DeleteGuild removes a guild
// @Summary Delete guild
// @Description Deletes a guild and everything in it. Owner only.
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Success 200 {object} dto.APIResponse "Guild deleted"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Router /guilds/{guildId} [delete]
func (c *GuildController) DeleteGuild(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	if err := c.guildService.DeleteGuild(ctx.Request.Context(), guildID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// JoinGuild files a membership request
// @Summary Request to join a guild
// @Description Creates a pending membership and notifies the owner
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Success 200 {object} dto.APIResponse "Request filed"
// @Failure 409 {object} dto.APIResponse "Already a member or pending"
// @Router /guilds/{guildId}/join [post]
func (c *GuildController) JoinGuild(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	if err := c.guildService.JoinGuild(ctx.Request.Context(), guildID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "PENDING"}))
}

// ApproveMember approves a pending membership
// @Summary Approve a join request
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param userId path int true "User ID of the requester"
// @Success 200 {object} dto.APIResponse "Member approved"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Router /guilds/{guildId}/members/{userId}/approve [post]
func (c *GuildController) ApproveMember(ctx *gin.Context) {
	callerID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.guildService.ApproveMember(ctx.Request.Context(), guildID, callerID, memberID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "APPROVED"}))
}

// RejectMember removes a pending or approved membership
// @Summary Reject or remove a member
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param userId path int true "User ID of the member"
// @Success 200 {object} dto.APIResponse "Member removed"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Router /guilds/{guildId}/members/{userId}/reject [post]
func (c *GuildController) RejectMember(ctx *gin.Context) {
	callerID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.guildService.RejectMember(ctx.Request.Context(), guildID, callerID, memberID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"removed": true}))
}

// LeaveGuild removes the caller's membership
// @Summary Leave a guild
// @Description The owner cannot leave their own guild
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Success 200 {object} dto.APIResponse "Left the guild"
// @Failure 400 {object} dto.APIResponse "Owner cannot leave"
// @Router /guilds/{guildId}/leave [delete]
func (c *GuildController) LeaveGuild(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	if err := c.guildService.LeaveGuild(ctx.Request.Context(), guildID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"left": true}))
}

// GetMembers lists a guild's members
// @Summary List guild members
// @Description Members only. Pending requests are included for the owner to act on.
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.GuildMemberResponse} "Members"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Router /guilds/{guildId}/members [get]
func (c *GuildController) GetMembers(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	members, err := c.guildService.GetMembers(ctx.Request.Context(), guildID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// GetRanking returns the guild leaderboard
// @Summary Guild ranking
// @Description Top guilds ordered by activity score
// @Tags guilds
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GuildRankingEntry} "Ranking"
// @Router /guilds/ranking [get]
func (c *GuildController) GetRanking(ctx *gin.Context) {
	ranking, err := c.guildService.GetRanking(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ranking))
}
