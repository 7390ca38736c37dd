// Package service orchestrates URL resolution, stats lookup and comment
// pagination into complete extraction runs.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tubelens/youtube-insights-go/internal/comments"
	"github.com/tubelens/youtube-insights-go/internal/metrics"
	"github.com/tubelens/youtube-insights-go/internal/resolver"
	"github.com/tubelens/youtube-insights-go/internal/stats"
	"github.com/tubelens/youtube-insights-go/internal/ytapi"
)

// Extractor runs comment extractions end to end.
type Extractor struct {
	api     ytapi.Client
	fetcher *comments.Fetcher
	logger  *zap.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(api ytapi.Client, fetcher *comments.Fetcher, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		api:     api,
		fetcher: fetcher,
		logger:  logger,
	}
}

// ExtractRequest describes one extraction run.
type ExtractRequest struct {
	// URL is the raw video URL in any supported shape.
	URL string
	// MaxComments caps the run; 0 means fetch all. A cap above the
	// video's reported comment count is clamped to that count.
	MaxComments int
	// IncludeReplies keeps reply records in the result when true.
	IncludeReplies bool
}

// ProgressFunc receives extraction progress: a fraction in [0,1] and the
// cumulative fetched count.
type ProgressFunc func(fraction float64, fetched int)

// Result is the outcome of one extraction run. Partial is set when the
// run failed mid-pagination; Records then holds everything accumulated
// before the failure.
type Result struct {
	RunID    uuid.UUID         `json:"runId"`
	Video    *stats.VideoStats `json:"video"`
	Records  []comments.Record `json:"records"`
	Expected int               `json:"expected"`
	Fetched  int               `json:"fetched"`
	Partial  bool              `json:"partial"`
}

// Extract resolves the video, checks that comments are available,
// resolves the budget against the reported comment count and runs the
// paginator. Returns stats.ErrCommentsDisabled without issuing a single
// comment request when the video has comments turned off, and an empty
// result when the reported count is zero.
//
// On a pagination failure the returned Result is non-nil with Partial
// set and carries the records fetched so far, alongside the error.
func (e *Extractor) Extract(ctx context.Context, req ExtractRequest, onProgress ProgressFunc) (*Result, error) {
	videoID, err := resolver.ResolveVideo(req.URL)
	if err != nil {
		return nil, err
	}

	video, err := stats.FetchVideoStats(ctx, e.api, videoID)
	if err != nil {
		return nil, err
	}
	if video.CommentsDisabled {
		return nil, stats.ErrCommentsDisabled
	}

	result := &Result{
		RunID: uuid.New(),
		Video: video,
	}

	// Resolve the budget against the platform-reported total.
	budget := req.MaxComments
	if budget == 0 || int64(budget) > video.CommentCount {
		budget = int(video.CommentCount)
	}
	result.Expected = budget

	if budget == 0 {
		return result, nil
	}

	e.logger.Info("starting comment extraction",
		zap.String("run_id", result.RunID.String()),
		zap.String("video_id", string(videoID)),
		zap.Int("budget", budget),
	)

	start := time.Now()
	var progress comments.ProgressFunc
	if onProgress != nil {
		progress = func(fetched int) {
			fraction := float64(fetched) / float64(budget)
			if fraction > 1 {
				fraction = 1
			}
			onProgress(fraction, fetched)
		}
	}

	records, fetchErr := e.fetcher.Fetch(ctx, videoID, budget, progress)
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())

	if !req.IncludeReplies {
		records = dropReplies(records)
	}
	result.Records = records
	result.Fetched = len(records)

	if fetchErr != nil {
		result.Partial = true
		e.logger.Warn("extraction failed mid-run, returning partial result",
			zap.String("run_id", result.RunID.String()),
			zap.Int("fetched", result.Fetched),
			zap.Error(fetchErr),
		)
		return result, fetchErr
	}

	e.logger.Info("comment extraction finished",
		zap.String("run_id", result.RunID.String()),
		zap.Int("fetched", result.Fetched),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func dropReplies(records []comments.Record) []comments.Record {
	kept := make([]comments.Record, 0, len(records))
	for _, r := range records {
		if !r.IsReply {
			kept = append(kept, r)
		}
	}
	return kept
}
