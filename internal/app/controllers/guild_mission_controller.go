package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
)

// GuildMissionController handles guild mission operations
type GuildMissionController struct {
	missionService services.GuildMissionService
}

// NewGuildMissionController creates a new GuildMissionController
func NewGuildMissionController(missionService services.GuildMissionService) *GuildMissionController {
	return &GuildMissionController{missionService: missionService}
}

// CreateMission creates a mission
// @Summary Create a mission
// @Description Creates a guild mission. Owner only.
// @Tags missions
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param request body dto.CreateMissionRequest true "Mission details"
// @Success 201 {object} dto.APIResponse{data=dto.MissionResponse} "Mission created"
// @Failure 403 {object} dto.APIResponse "Not the owner"
// @Router /guilds/{guildId}/missions [post]
func (c *GuildMissionController) CreateMission(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	var req dto.CreateMissionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mission, err := c.missionService.CreateMission(ctx.Request.Context(), guildID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(mission))
}

// GetMissions lists a guild's missions
// @Summary List missions
// @Description Lists a guild's missions with the caller's progress
// @Tags missions
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MissionResponse} "Missions"
// @Failure 403 {object} dto.APIResponse "Not a member"
// @Router /guilds/{guildId}/missions [get]
func (c *GuildMissionController) GetMissions(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}

	missions, err := c.missionService.GetMissions(ctx.Request.Context(), guildID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(missions))
}

// GetMissionByID returns one mission with its participants
// @Summary Get mission
// @Tags missions
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param missionId path int true "Mission ID"
// @Success 200 {object} dto.APIResponse "Mission with participants"
// @Failure 404 {object} dto.APIResponse "Mission not found"
// @Router /guilds/{guildId}/missions/{missionId} [get]
func (c *GuildMissionController) GetMissionByID(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	missionID, ok := parseIDParam(ctx, "missionId")
	if !ok {
		return
	}

	mission, participants, err := c.missionService.GetMissionByID(ctx.Request.Context(), guildID, missionID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"mission":      mission,
		"participants": participants,
	}))
}

// JoinMission enrolls the caller in a mission
// @Summary Join a mission
// @Description Joins a mission while seats remain and the window is open
// @Tags missions
// @Produce json
// @Security CookieAuth
// @Param guildId path int true "Guild ID"
// @Param missionId path int true "Mission ID"
// @Success 200 {object} dto.APIResponse "Joined"
// @Failure 409 {object} dto.APIResponse "Mission full or already joined"
// @Router /guilds/{guildId}/missions/{missionId}/join [post]
func (c *GuildMissionController) JoinMission(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	guildID, ok := parseIDParam(ctx, "guildId")
	if !ok {
		return
	}
	missionID, ok := parseIDParam(ctx, "missionId")
	if !ok {
		return
	}

	if err := c.missionService.JoinMission(ctx.Request.Context(), guildID, missionID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"joined": true}))
}
