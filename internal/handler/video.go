package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tubelens/youtube-insights-go/internal/resolver"
	"github.com/tubelens/youtube-insights-go/internal/stats"
	"github.com/tubelens/youtube-insights-go/internal/ytapi"
)

// VideoHandler serves video statistics lookups.
type VideoHandler struct {
	api    ytapi.Client
	logger *zap.Logger
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(api ytapi.Client, logger *zap.Logger) *VideoHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VideoHandler{
		api:    api,
		logger: logger,
	}
}

// GetStats handles GET /api/v1/videos/stats?url=...
// The response includes commentsDisabled, which clients must check
// before requesting a comment extraction.
func (h *VideoHandler) GetStats(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		respondError(c, http.StatusBadRequest, "Bad Request", "url query parameter is required")
		return
	}

	videoID, err := resolver.ResolveVideo(raw)
	if err != nil {
		respondLookupError(c, err)
		return
	}

	videoStats, err := stats.FetchVideoStats(c.Request.Context(), h.api, videoID)
	if err != nil {
		h.logger.Warn("video stats fetch failed",
			zap.String("video_id", string(videoID)),
			zap.Error(err),
		)
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, videoStats)
}
