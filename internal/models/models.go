// Package models contains the request and response DTOs for the HTTP API.
package models

import (
	"time"

	"github.com/tubelens/youtube-insights-go/internal/comments"
	"github.com/tubelens/youtube-insights-go/internal/stats"
)

// Export formats accepted by the comment extraction endpoint.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ErrorResponse is the error payload returned by all endpoints.
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// ExtractCommentsRequest is the body of POST /api/v1/comments/extract.
type ExtractCommentsRequest struct {
	URL string `json:"url" binding:"required"`
	// MaxComments of 0 fetches everything.
	MaxComments int `json:"maxComments"`
	// IncludeReplies defaults to true when omitted.
	IncludeReplies *bool `json:"includeReplies"`
	// Format is "json" (default) or "csv".
	Format string `json:"format"`
}

// ExtractCommentsResponse is the JSON result of an extraction run.
type ExtractCommentsResponse struct {
	RunID    string            `json:"runId"`
	Video    *stats.VideoStats `json:"video"`
	Expected int               `json:"expected"`
	Fetched  int               `json:"fetched"`
	Partial  bool              `json:"partial"`
	Error    string            `json:"error,omitempty"`
	Records  []comments.Record `json:"records"`
}
