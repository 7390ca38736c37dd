package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubelens/youtube-insights-go/internal/comments"
	"github.com/tubelens/youtube-insights-go/internal/resolver"
	"github.com/tubelens/youtube-insights-go/internal/stats"
	"github.com/tubelens/youtube-insights-go/internal/ytapi"
)

const (
	testVideoID  = "dQw4w9WgXcQ"
	testVideoURL = "https://www.youtube.com/watch?v=" + testVideoID
)

// fakeClient serves one video item plus scripted comment pages.
type fakeClient struct {
	video       *ytapi.VideoItem
	pages       []*ytapi.CommentThreadListResponse
	failAt      int
	threadCalls int
}

func (f *fakeClient) ListChannelByID(ctx context.Context, channelID string) ([]ytapi.ChannelItem, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeClient) ListChannelByUsername(ctx context.Context, username string) ([]ytapi.ChannelItem, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeClient) SearchChannels(ctx context.Context, query string, maxResults int) ([]ytapi.SearchItem, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeClient) ListVideoByID(ctx context.Context, videoID string) ([]ytapi.VideoItem, error) {
	if f.video == nil {
		return nil, nil
	}
	return []ytapi.VideoItem{*f.video}, nil
}

func (f *fakeClient) ListCommentThreads(ctx context.Context, videoID string, maxResults int, pageToken string) (*ytapi.CommentThreadListResponse, error) {
	f.threadCalls++
	if f.failAt > 0 && f.threadCalls == f.failAt {
		return nil, &ytapi.APIError{StatusCode: 500, Endpoint: "commentThreads", Message: "backend error"}
	}
	if f.threadCalls > len(f.pages) {
		return nil, fmt.Errorf("unexpected page request %d", f.threadCalls)
	}
	return f.pages[f.threadCalls-1], nil
}

func video(commentCount string) *ytapi.VideoItem {
	item := &ytapi.VideoItem{ID: testVideoID}
	item.Snippet.Title = "A Video"
	item.Snippet.ChannelID = "UCuAXFkgsw1L7xaCfnd5JJOw"
	item.Statistics.ViewCount = "100"
	if commentCount != "" {
		item.Statistics.CommentCount = &commentCount
	}
	return item
}

func thread(id string, replyIDs ...string) ytapi.CommentThread {
	t := ytapi.CommentThread{ID: id}
	t.Snippet.TopLevelComment.ID = id
	t.Snippet.TotalReplyCount = len(replyIDs)
	for _, rid := range replyIDs {
		r := ytapi.Comment{ID: rid}
		r.Snippet.ParentID = id
		t.Replies.Comments = append(t.Replies.Comments, r)
	}
	return t
}

func page(token string, threads ...ytapi.CommentThread) *ytapi.CommentThreadListResponse {
	return &ytapi.CommentThreadListResponse{Items: threads, NextPageToken: token}
}

func newTestExtractor(api ytapi.Client) *Extractor {
	fetcher := comments.NewFetcher(api, comments.WithPageDelay(0))
	return NewExtractor(api, fetcher, nil)
}

func TestExtract_FullRun(t *testing.T) {
	t.Parallel()

	api := &fakeClient{
		video: video("4"),
		pages: []*ytapi.CommentThreadListResponse{
			page("page-2", thread("a", "a-r1"), thread("b")),
			page("", thread("c")),
		},
	}

	result, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL:            testVideoURL,
		IncludeReplies: true,
	}, nil)

	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())
	assert.Equal(t, resolver.VideoID(testVideoID), result.Video.VideoID)
	assert.Equal(t, 4, result.Expected)
	assert.Equal(t, 4, result.Fetched)
	assert.Len(t, result.Records, 4)
	assert.False(t, result.Partial)
}

func TestExtract_InvalidURL(t *testing.T) {
	t.Parallel()

	api := &fakeClient{video: video("4")}

	_, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL: "https://example.com/nope",
	}, nil)

	assert.ErrorIs(t, err, resolver.ErrNotFound)
	assert.Equal(t, 0, api.threadCalls)
}

func TestExtract_CommentsDisabledShortCircuits(t *testing.T) {
	t.Parallel()

	api := &fakeClient{video: video("")}

	result, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL: testVideoURL,
	}, nil)

	assert.ErrorIs(t, err, stats.ErrCommentsDisabled)
	assert.Nil(t, result)
	assert.Equal(t, 0, api.threadCalls, "no comment requests for a disabled video")
}

func TestExtract_ZeroCommentCount(t *testing.T) {
	t.Parallel()

	api := &fakeClient{video: video("0")}

	result, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL: testVideoURL,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Expected)
	assert.Empty(t, result.Records)
	assert.Equal(t, 0, api.threadCalls)
}

func TestExtract_BudgetClampedToReportedCount(t *testing.T) {
	t.Parallel()

	api := &fakeClient{
		video: video("2"),
		pages: []*ytapi.CommentThreadListResponse{
			page("", thread("a"), thread("b")),
		},
	}

	result, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL:            testVideoURL,
		MaxComments:    1000,
		IncludeReplies: true,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Expected, "cap above the reported count clamps down")
	assert.Equal(t, 2, result.Fetched)
}

func TestExtract_DropsRepliesWhenExcluded(t *testing.T) {
	t.Parallel()

	api := &fakeClient{
		video: video("3"),
		pages: []*ytapi.CommentThreadListResponse{
			page("", thread("a", "a-r1", "a-r2")),
		},
	}

	result, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL:            testVideoURL,
		IncludeReplies: false,
	}, nil)

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "a", result.Records[0].CommentID)
	assert.False(t, result.Records[0].IsReply)
	assert.Equal(t, 1, result.Fetched)
}

func TestExtract_PartialResultOnPaginationFailure(t *testing.T) {
	t.Parallel()

	api := &fakeClient{
		video: video("10"),
		pages: []*ytapi.CommentThreadListResponse{
			page("page-2", thread("a"), thread("b")),
		},
		failAt: 2,
	}

	result, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL:            testVideoURL,
		IncludeReplies: true,
	}, nil)

	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Partial)
	assert.Equal(t, 2, result.Fetched)
	assert.Len(t, result.Records, 2)

	var apiErr *ytapi.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestExtract_ProgressFractions(t *testing.T) {
	t.Parallel()

	api := &fakeClient{
		video: video("4"),
		pages: []*ytapi.CommentThreadListResponse{
			page("", thread("a"), thread("b"), thread("c"), thread("d")),
		},
	}

	var fractions []float64
	var counts []int
	_, err := newTestExtractor(api).Extract(context.Background(), ExtractRequest{
		URL:            testVideoURL,
		IncludeReplies: true,
	}, func(fraction float64, fetched int) {
		fractions = append(fractions, fraction)
		counts = append(counts, fetched)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, counts)
	assert.Equal(t, []float64{0.25, 0.5, 0.75, 1}, fractions)
}
