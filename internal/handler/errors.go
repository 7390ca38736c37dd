// Package handler provides HTTP request handlers for the application.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tubelens/youtube-insights-go/internal/models"
	"github.com/tubelens/youtube-insights-go/internal/resolver"
	"github.com/tubelens/youtube-insights-go/internal/stats"
)

func respondError(c *gin.Context, status int, errName, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     errName,
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

// respondLookupError maps the error taxonomy onto HTTP statuses:
// NotFound -> 404, CommentsDisabled -> 422, anything else is an upstream
// API failure -> 502.
func respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not Found",
			"no matching resource exists for the given input")
	case errors.Is(err, stats.ErrCommentsDisabled):
		respondError(c, http.StatusUnprocessableEntity, "Comments Disabled",
			stats.ErrCommentsDisabled.Error())
	default:
		respondError(c, http.StatusBadGateway, "Upstream API Error", err.Error())
	}
}
