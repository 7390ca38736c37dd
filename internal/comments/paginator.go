// Package comments drives cursor-based pagination of a video's comment
// threads, flattening each thread (top-level comment plus replies) into
// an ordered sequence of records.
package comments

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/tubelens/youtube-insights-go/internal/metrics"
	"github.com/tubelens/youtube-insights-go/internal/resolver"
	"github.com/tubelens/youtube-insights-go/internal/ytapi"
)

// DefaultPageDelay is the pause between page requests, kept small to
// stay under the API rate limits.
const DefaultPageDelay = 100 * time.Millisecond

// Record is one comment or reply. IsReply is false exactly when ParentID
// is empty. Timestamps stay in the RFC 3339 form the API returns.
type Record struct {
	CommentID             string `json:"commentId"`
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl"`
	AuthorChannelURL      string `json:"authorChannelUrl,omitempty"`
	TextOriginal          string `json:"textOriginal"`
	LikeCount             int64  `json:"likeCount"`
	PublishedAt           string `json:"publishedAt"`
	UpdatedAt             string `json:"updatedAt"`
	ParentID              string `json:"parentId,omitempty"`
	IsReply               bool   `json:"isReply"`
}

// ProgressFunc receives the cumulative record count after each fully
// processed thread. Invoked synchronously on the fetching goroutine.
type ProgressFunc func(fetched int)

// Fetcher paginates comment threads for videos.
type Fetcher struct {
	api      ytapi.Client
	pageSize int
	limiter  *rate.Limiter
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithPageSize overrides the page size requested per call. Values
// outside (0, 100] fall back to the platform maximum.
func WithPageSize(size int) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 && size <= ytapi.MaxCommentPageSize {
			f.pageSize = size
		}
	}
}

// WithPageDelay overrides the inter-page delay. Zero disables the
// throttle; tests use this.
func WithPageDelay(delay time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
}

// NewFetcher creates a Fetcher over the given API client.
func NewFetcher(api ytapi.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		api:      api,
		pageSize: ytapi.MaxCommentPageSize,
		limiter:  rate.NewLimiter(rate.Every(DefaultPageDelay), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves up to maxComments comment records for the video,
// top-level comments and replies interleaved in API order. maxComments
// of 0 means no cap. When the cap falls mid-page, the thread that
// crosses it is still flattened completely before the loop stops; the
// sequence is never truncated mid-thread.
//
// On an API failure mid-run the records accumulated so far are returned
// together with the error: a long extraction that dies on page N keeps
// pages 1..N-1. No de-duplication is performed.
func (f *Fetcher) Fetch(ctx context.Context, videoID resolver.VideoID, maxComments int, onProgress ProgressFunc) ([]Record, error) {
	var records []Record
	pageToken := ""

	for {
		// First page passes immediately, subsequent pages are spaced by
		// the configured delay. Honors ctx cancellation.
		if err := f.limiter.Wait(ctx); err != nil {
			return records, err
		}

		page, err := f.api.ListCommentThreads(ctx, string(videoID), f.pageSize, pageToken)
		if err != nil {
			return records, fmt.Errorf("list comment threads for %s: %w", videoID, err)
		}
		metrics.CommentPagesTotal.Inc()

		for _, thread := range page.Items {
			records = append(records, flattenThread(thread)...)
			metrics.CommentsFetchedTotal.Add(float64(1 + len(thread.Replies.Comments)))

			if onProgress != nil {
				onProgress(len(records))
			}

			if maxComments > 0 && len(records) >= maxComments {
				return records, nil
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			return records, nil
		}
	}
}

// flattenThread turns one thread item into the top-level record followed
// by its reply records, preserving API order.
func flattenThread(thread ytapi.CommentThread) []Record {
	out := make([]Record, 0, 1+len(thread.Replies.Comments))

	// The thread item ID identifies the top-level comment.
	top := thread.Snippet.TopLevelComment.Snippet
	out = append(out, Record{
		CommentID:             thread.ID,
		AuthorDisplayName:     top.AuthorDisplayName,
		AuthorProfileImageURL: top.AuthorProfileImageURL,
		AuthorChannelURL:      top.AuthorChannelURL,
		TextOriginal:          top.TextOriginal,
		LikeCount:             top.LikeCount,
		PublishedAt:           top.PublishedAt,
		UpdatedAt:             top.UpdatedAt,
		ParentID:              "",
		IsReply:               false,
	})

	for _, reply := range thread.Replies.Comments {
		rs := reply.Snippet
		out = append(out, Record{
			CommentID:             reply.ID,
			AuthorDisplayName:     rs.AuthorDisplayName,
			AuthorProfileImageURL: rs.AuthorProfileImageURL,
			AuthorChannelURL:      rs.AuthorChannelURL,
			TextOriginal:          rs.TextOriginal,
			LikeCount:             rs.LikeCount,
			PublishedAt:           rs.PublishedAt,
			UpdatedAt:             rs.UpdatedAt,
			ParentID:              rs.ParentID,
			IsReply:               true,
		})
	}

	return out
}
