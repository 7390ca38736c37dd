package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tubelens/youtube-insights-go/internal/comments"
	"github.com/tubelens/youtube-insights-go/internal/models"
	"github.com/tubelens/youtube-insights-go/internal/service"
)

// CommentsHandler serves comment extraction requests.
type CommentsHandler struct {
	extractor *service.Extractor
	logger    *zap.Logger
}

// NewCommentsHandler creates a new CommentsHandler instance.
func NewCommentsHandler(extractor *service.Extractor, logger *zap.Logger) *CommentsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentsHandler{
		extractor: extractor,
		logger:    logger,
	}
}

// Extract handles POST /api/v1/comments/extract. The run executes
// synchronously; format "csv" streams the export as an attachment with
// a filename derived from the video title. A run that fails
// mid-pagination answers 206 with everything fetched before the failure.
func (h *CommentsHandler) Extract(c *gin.Context) {
	var req models.ExtractCommentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Bad Request", "invalid request payload: "+err.Error())
		return
	}

	if req.MaxComments < 0 {
		respondError(c, http.StatusBadRequest, "Bad Request", "maxComments must not be negative")
		return
	}

	format := req.Format
	if format == "" {
		format = models.FormatJSON
	}
	if format != models.FormatJSON && format != models.FormatCSV {
		respondError(c, http.StatusBadRequest, "Bad Request", "format must be json or csv")
		return
	}

	includeReplies := true
	if req.IncludeReplies != nil {
		includeReplies = *req.IncludeReplies
	}

	onProgress := func(fraction float64, fetched int) {
		h.logger.Debug("extraction progress",
			zap.Float64("fraction", fraction),
			zap.Int("fetched", fetched),
		)
	}

	result, err := h.extractor.Extract(c.Request.Context(), service.ExtractRequest{
		URL:            req.URL,
		MaxComments:    req.MaxComments,
		IncludeReplies: includeReplies,
	}, onProgress)

	if err != nil && result == nil {
		respondLookupError(c, err)
		return
	}

	status := http.StatusOK
	if result.Partial {
		status = http.StatusPartialContent
	}

	if format == models.FormatCSV {
		h.writeCSV(c, status, result)
		return
	}

	resp := models.ExtractCommentsResponse{
		RunID:    result.RunID.String(),
		Video:    result.Video,
		Expected: result.Expected,
		Fetched:  result.Fetched,
		Partial:  result.Partial,
		Records:  result.Records,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(status, resp)
}

func (h *CommentsHandler) writeCSV(c *gin.Context, status int, result *service.Result) {
	filename := comments.ExportFilename(result.Video.Title, time.Now())

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(status)

	if err := comments.WriteCSV(c.Writer, result.Records); err != nil {
		h.logger.Error("failed to write CSV export",
			zap.String("run_id", result.RunID.String()),
			zap.Error(err),
		)
	}
}
