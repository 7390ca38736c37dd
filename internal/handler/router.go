package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tubelens/youtube-insights-go/internal/middleware"
)

// RouterDeps are the handlers and middleware the router wires up.
type RouterDeps struct {
	Channel  *ChannelHandler
	Video    *VideoHandler
	Comments *CommentsHandler
	Auth     *middleware.APIKeyAuth
	Logger   *zap.Logger
}

// NewRouter builds the gin engine with all routes registered. The
// /api/v1 group sits behind API key authentication; /health and /metrics
// stay open.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(deps.Auth.Middleware())
	{
		api.GET("/channels/stats", deps.Channel.GetStats)
		api.GET("/videos/stats", deps.Video.GetStats)
		api.POST("/comments/extract", deps.Comments.Extract)
	}

	return router
}
