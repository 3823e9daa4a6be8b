package http

import (
	"github.com/gin-gonic/gin"

	"github.com/productagent/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	requestLimiter := NewRequestLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitWindow)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(APIKeyAuth(cfg.Server.APIKey))
	v1.Use(requestLimiter.Middleware())
	{
		products := v1.Group("/products")
		{
			products.POST("/lookup", handler.LookupProduct)
			products.POST("/bulk", handler.BulkLookup)
			products.POST("/bulk/csv", handler.BulkCSV)
		}
	}

	return router
}
