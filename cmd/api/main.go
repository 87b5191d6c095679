package main

import (
	"context"
	"os"

	"github.com/yigit/memorial/internal/pkg/logger"
	"github.com/yigit/memorial/internal/server"
)

// @title Memorial Registry API
// @version 1.0
// @description API for the memorial registry of martyrs and injured people, with moderation, CSV import and reference data
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization. The session_token cookie is accepted as well.

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Setup steps log their own details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
