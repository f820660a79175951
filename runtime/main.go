package main

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/fastbite-labs/fastbite-api/services"
)

// @title FastBite API
// @version 1.0
// @description Restaurant ordering and after-sales support backend
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using system environment")
	}

	var sqlSvc context.Service
	if os.Getenv("DB_DRIVER") == "postgres" {
		sqlSvc = &services.PostgresService{}
	} else {
		sqlSvc = &services.SqliteService{}
	}

	ctx, err := context.NewCtx(
		sqlSvc,
		&services.RedisService{},
		&services.MonitoringService{},

		&services.SecurityLogService{},
		&services.RateLimitService{},
		&services.JWTService{},
		&services.EmailService{},

		&services.AuthService{},
		&services.UserService{},
		&services.ConfigService{},
		&services.CatalogService{},
		&services.NotificationService{},
		&services.OrderService{},
		&services.TicketService{},
		&services.ChatService{},
		&services.MediaService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	if err := ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
	}
}
