package handlers

import (
	"github.com/SAP-F-2025/driver-quiz-service/internal/auth"
	"github.com/SAP-F-2025/driver-quiz-service/internal/services"
	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	analyticsHandler *AnalyticsHandler
	verifier         auth.TokenVerifier
	logger           utils.Logger
}

func NewHandlerManager(
	analyticsService services.AnalyticsService,
	verifier auth.TokenVerifier,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		analyticsHandler: NewAnalyticsHandler(analyticsService, logger),
		verifier:         verifier,
		logger:           logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Analytics routes are admin only
		analytics := v1.Group("/analytics",
			auth.Authenticate(hm.verifier, hm.logger),
			auth.RequireRole(auth.RoleAdmin),
		)
		{
			analytics.GET("/comprehensive", hm.analyticsHandler.GetComprehensiveAnalysis)
			analytics.GET("/comprehensive/export", hm.analyticsHandler.ExportComprehensiveAnalysis)
			analytics.DELETE("/cache", hm.analyticsHandler.InvalidateCache)
		}
	}
}

// NewRouter builds a gin engine with the shared middleware and all routes
func NewRouter(hm *HandlerManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ContextLogger(hm.logger))
	router.Use(utils.LoggerMiddleware(hm.logger))

	hm.SetupRoutes(router)
	return router
}
