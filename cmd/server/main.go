package main

import (
	"fmt"
	"os"

	"github.com/astroseva/backend-go/internal/api"
	"github.com/astroseva/backend-go/internal/config"
	"github.com/astroseva/backend-go/internal/database"
	"github.com/astroseva/backend-go/internal/database/repository"
	"github.com/astroseva/backend-go/internal/database/service"
	"github.com/astroseva/backend-go/internal/handler"
	"github.com/astroseva/backend-go/internal/logger"
	"github.com/astroseva/backend-go/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting AstroSeva booking API...",
		"environment", cfg.AppEnv,
	)

	if cfg.UsingFallbackSecret() {
		appLogger.Warn("🚨 [Go] JWT_SECRET is not set - signing tokens with the built-in fallback secret. Do NOT run like this in production.")
	}

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, cfg, appLogger)
	appointmentService := service.NewAppointmentService(appointmentRepo, appLogger)

	// 6. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 7. Initialize Rate Limiter
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 8. Setup Router
	r := api.SetupRouter(cfg, authHandler, appointmentHandler, authMiddleware, rateLimiter, appLogger)

	// 9. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
