package main

import (
	"github.com/seojin/tastemap/internal/pkg/logger"
	"github.com/seojin/tastemap/internal/server"
)

// @title           TasteMap API
// @version         1.0
// @description     Social taste tracking backend with location dwell detection, taste dashboards, guilds, missions and notifications.

// @contact.name   TasteMap Team
// @contact.email  dev@tastemap.io

// @license.name  MIT

// @BasePath  /api/v1

// @securityDefinitions.apikey CookieAuth
// @in header
// @name Cookie
// @description Session cookie issued by the login endpoint.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with error")
	}
}
