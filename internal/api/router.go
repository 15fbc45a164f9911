package api

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/astroseva/backend-go/internal/config"
	"github.com/astroseva/backend-go/internal/handler"
	"github.com/astroseva/backend-go/internal/middleware"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.RateLimiter,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (Public, rate limited)
	authGroup := r.Group("/api/v1/auth")
	authGroup.Use(middleware.LimitAuthAttempts(rateLimiter, logger))
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}

	// Protected API routes
	api := r.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/me", authHandler.Me)
		api.POST("/appointments", appointmentHandler.Book)
		api.GET("/appointments", appointmentHandler.List)
		api.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
		api.DELETE("/appointments/:id", appointmentHandler.Cancel)
	}

	return r
}
