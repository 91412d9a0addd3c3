package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/middleware"
	"github.com/seojin/tastemap/internal/pkg/helpers"
	"github.com/seojin/tastemap/internal/pkg/ws"
)

// NotificationController handles notification operations and the push socket
type NotificationController struct {
	notificationService services.NotificationService
	hub                 *ws.Hub
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService, hub *ws.Hub, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
		logger:              logger,
	}
}

// GetNotifications lists the caller's notifications
// @Summary List notifications
// @Description Unread notifications come first
// @Tags notifications
// @Produce json
// @Security CookieAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications"
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	notifications, err := c.notificationService.GetNotifications(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notifications))
}

// MarkAsRead marks one notification as read
// @Summary Mark notification as read
// @Tags notifications
// @Produce json
// @Security CookieAuth
// @Param notificationId path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Marked as read"
// @Failure 404 {object} dto.APIResponse "Notification not found"
// @Router /notifications/{notificationId}/read [patch]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(ctx, "notificationId")
	if !ok {
		return
	}

	if err := c.notificationService.MarkAsRead(ctx.Request.Context(), userID, notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"read": true}))
}

// MarkAllAsRead marks all notifications as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security CookieAuth
// @Success 200 {object} dto.APIResponse "All marked as read"
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	updated, err := c.notificationService.MarkAllAsRead(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"updated": updated}))
}

// Subscribe upgrades the connection to a notification push socket
// @Summary Notification websocket
// @Description Upgrades to a websocket that pushes new notifications
// @Tags notifications
// @Security CookieAuth
// @Success 101 "Switching protocols"
// @Router /notifications/ws [get]
func (c *NotificationController) Subscribe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := ws.ServeClient(c.hub, ctx.Writer, ctx.Request, userID, c.logger); err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Websocket upgrade failed")
	}
}
