package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/seojin/tastemap/internal/app/controllers"
	"github.com/seojin/tastemap/internal/middleware"
)

// Controllers bundles everything SetupRouter mounts
type Controllers struct {
	Auth           *controllers.AuthController
	Guild          *controllers.GuildController
	GuildRecord    *controllers.GuildRecordController
	GuildMission   *controllers.GuildMissionController
	Notification   *controllers.NotificationController
	Stay           *controllers.StayController
	Taste          *controllers.TasteController
	Recommendation *controllers.RecommendationController
	File           *controllers.FileController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		// Logout works without a live session so it is always safe to call
		auth.POST("/logout", c.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireSession())
	{
		authenticated.GET("/auth/me", c.Auth.GetMe)
		authenticated.PATCH("/auth/me", c.Auth.UpdateMe)

		// Taste records and dashboard
		tasteRecords := authenticated.Group("/taste-records")
		{
			tasteRecords.POST("", c.Taste.CreateTasteRecord)
			tasteRecords.GET("", c.Taste.GetTasteRecords)
			tasteRecords.GET("/:recordId", c.Taste.GetTasteRecordByID)
			tasteRecords.PATCH("/:recordId", c.Taste.UpdateTasteRecord)
			tasteRecords.DELETE("/:recordId", c.Taste.DeleteTasteRecord)
		}
		authenticated.GET("/taste-dashboard", c.Taste.GetDashboard)

		// Location pings and stays
		authenticated.POST("/location", c.Stay.RecordPing)
		authenticated.GET("/stays", c.Stay.GetStays)

		// Recommendations
		authenticated.GET("/recommendations", c.Recommendation.GetRecommendations)
		authenticated.POST("/recommendations/route", c.Recommendation.GetRoute)

		// Uploads
		authenticated.POST("/uploads", c.File.UploadFile)
		authenticated.DELETE("/uploads/:fileId", c.File.DeleteFile)

		// Guilds
		guilds := authenticated.Group("/guilds")
		{
			guilds.POST("", c.Guild.CreateGuild)
			guilds.GET("", c.Guild.GetGuilds)
			guilds.GET("/ranking", c.Guild.GetRanking)
			guilds.GET("/:guildId", c.Guild.GetGuildByID)
			guilds.PATCH("/:guildId", c.Guild.UpdateGuild)
			guilds.DELETE("/:guildId", c.Guild.DeleteGuild)

			guilds.POST("/:guildId/join", c.Guild.JoinGuild)
			guilds.DELETE("/:guildId/leave", c.Guild.LeaveGuild)
			guilds.GET("/:guildId/members", c.Guild.GetMembers)
			guilds.POST("/:guildId/members/:userId/approve", c.Guild.ApproveMember)
			guilds.POST("/:guildId/members/:userId/reject", c.Guild.RejectMember)

			// Records and comments
			guilds.POST("/:guildId/records", c.GuildRecord.CreateRecord)
			guilds.GET("/:guildId/records", c.GuildRecord.GetRecords)
			guilds.GET("/:guildId/records/:recordId", c.GuildRecord.GetRecordByID)
			guilds.DELETE("/:guildId/records/:recordId", c.GuildRecord.DeleteRecord)
			guilds.POST("/:guildId/records/:recordId/comments", c.GuildRecord.CreateComment)
			guilds.GET("/:guildId/records/:recordId/comments", c.GuildRecord.GetComments)
			guilds.DELETE("/:guildId/records/:recordId/comments/:commentId", c.GuildRecord.DeleteComment)

			// Missions
			guilds.POST("/:guildId/missions", c.GuildMission.CreateMission)
			guilds.GET("/:guildId/missions", c.GuildMission.GetMissions)
			guilds.GET("/:guildId/missions/:missionId", c.GuildMission.GetMissionByID)
			guilds.POST("/:guildId/missions/:missionId/join", c.GuildMission.JoinMission)
		}

		// Notifications
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", c.Notification.GetNotifications)
			notifications.POST("/read-all", c.Notification.MarkAllAsRead)
			notifications.PATCH("/:notificationId/read", c.Notification.MarkAsRead)
			notifications.GET("/ws", c.Notification.Subscribe)
		}
	}
}
