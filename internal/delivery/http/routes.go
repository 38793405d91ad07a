package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cooktimer/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		// Catalog endpoints
		v1.GET("/foods", handler.ListFoods)
		v1.GET("/foods/:foodId", handler.GetFood)
		v1.GET("/foods/:foodId/textures", handler.ListTextures)
		v1.GET("/methods", handler.ListMethods)

		// Estimate endpoints
		estimates := v1.Group("/estimates")
		{
			estimates.POST("", handler.CreateEstimate)
			estimates.POST("/safety", handler.CheckSafety)
		}

		// Timer endpoints
		timers := v1.Group("/timers")
		{
			timers.GET("", handler.ListTimers)
			timers.POST("", handler.CreateTimer)
			timers.GET("/:id", handler.GetTimer)
			timers.DELETE("/:id", handler.DeleteTimer)
			timers.POST("/:id/start", handler.StartTimer)
			timers.POST("/:id/pause", handler.PauseTimer)
			timers.POST("/:id/resume", handler.ResumeTimer)
			timers.POST("/:id/reset", handler.ResetTimer)
			timers.PUT("/:id/time", handler.SetTimerTime)
			timers.POST("/:id/extend", handler.ExtendTimer)
		}

		// Favorite endpoints
		favorites := v1.Group("/favorites")
		{
			favorites.GET("", handler.ListFavorites)
			favorites.POST("", handler.SaveFavorite)
			favorites.DELETE("/:id", handler.DeleteFavorite)
			favorites.POST("/:id/use", handler.UseFavorite)
		}
	}

	return router
}
