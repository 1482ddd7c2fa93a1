// Command api serves the study portal: the resource catalog with watchlists,
// admissions, the tutor chat and the admin generation tools.
package main

import (
	"os"

	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// @title Study Portal API
// @version 1.0
// @description Study materials, watchlists, admissions and AI study tools for a coaching institute

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token issued by /auth/login

func main() {
	log := logger.Component("main")
	log.Info().Str("version", version).Msg("Starting study portal")

	srv, err := server.NewServer()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("Server stopped with errors")
		os.Exit(1)
	}
	log.Info().Msg("Study portal stopped")
}
