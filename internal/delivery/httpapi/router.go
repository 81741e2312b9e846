package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter registers the API routes on a fresh gin engine.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(errorHandler(logger))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		api.GET("/games", h.ListGames)
		api.GET("/games/:id/questions", h.GetQuestions)

		api.GET("/leaderboard", h.GetLeaderboard)
		api.GET("/leaderboard/:game", h.GetLeaderboard)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)
	}

	return router
}
