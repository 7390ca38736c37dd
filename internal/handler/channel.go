package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tubelens/youtube-insights-go/internal/resolver"
	"github.com/tubelens/youtube-insights-go/internal/stats"
	"github.com/tubelens/youtube-insights-go/internal/ytapi"
)

// ChannelHandler serves channel statistics lookups.
type ChannelHandler struct {
	api    ytapi.Client
	logger *zap.Logger
}

// NewChannelHandler creates a new ChannelHandler instance.
func NewChannelHandler(api ytapi.Client, logger *zap.Logger) *ChannelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChannelHandler{
		api:    api,
		logger: logger,
	}
}

// GetStats handles GET /api/v1/channels/stats?url=...
// The url parameter accepts a canonical channel ID, a /channel/, /c/ or
// /@handle URL, or a watch URL; it is resolved before the stats lookup.
func (h *ChannelHandler) GetStats(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		respondError(c, http.StatusBadRequest, "Bad Request", "url query parameter is required")
		return
	}

	channelID, err := resolver.ResolveChannel(c.Request.Context(), h.api, raw)
	if err != nil {
		h.logger.Warn("channel resolution failed",
			zap.String("input", raw),
			zap.Error(err),
		)
		respondLookupError(c, err)
		return
	}

	channelStats, err := stats.FetchChannelStats(c.Request.Context(), h.api, channelID)
	if err != nil {
		h.logger.Warn("channel stats fetch failed",
			zap.String("channel_id", string(channelID)),
			zap.Error(err),
		)
		respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, channelStats)
}
