// Package ytapi is a thin read-only client for the YouTube Data API v3.
package ytapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tubelens/youtube-insights-go/internal/metrics"
)

// DefaultBaseURL is the production endpoint of the YouTube Data API v3.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// MaxCommentPageSize is the maximum page size commentThreads.list accepts.
const MaxCommentPageSize = 100

// Client is the read-only API surface the rest of the service depends on.
type Client interface {
	ListChannelByID(ctx context.Context, channelID string) ([]ChannelItem, error)
	ListChannelByUsername(ctx context.Context, username string) ([]ChannelItem, error)
	SearchChannels(ctx context.Context, query string, maxResults int) ([]SearchItem, error)
	ListVideoByID(ctx context.Context, videoID string) ([]VideoItem, error)
	ListCommentThreads(ctx context.Context, videoID string, maxResults int, pageToken string) (*CommentThreadListResponse, error)
}

// APIError is an API-level failure: the endpoint answered, but with an
// error status or error envelope.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube api %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// HTTPClient implements Client against the real API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) { c.client = client }
}

// NewHTTPClient creates a client for the given API key. The key is
// required; a missing key is a construction-time error.
func NewHTTPClient(apiKey string, opts ...Option) (*HTTPClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}

	c := &HTTPClient{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListChannelByID fetches channel metadata and statistics by channel ID.
func (c *HTTPClient) ListChannelByID(ctx context.Context, channelID string) ([]ChannelItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", channelID)

	var resp channelListResponse
	if err := c.get(ctx, "channels", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ListChannelByUsername fetches channel metadata by legacy username.
func (c *HTTPClient) ListChannelByUsername(ctx context.Context, username string) ([]ChannelItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("forUsername", username)

	var resp channelListResponse
	if err := c.get(ctx, "channels", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// SearchChannels searches for channels matching the query.
func (c *HTTPClient) SearchChannels(ctx context.Context, query string, maxResults int) ([]SearchItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "channel")
	params.Set("maxResults", strconv.Itoa(maxResults))

	var resp searchListResponse
	if err := c.get(ctx, "search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ListVideoByID fetches video metadata and statistics by video ID.
func (c *HTTPClient) ListVideoByID(ctx context.Context, videoID string) ([]VideoItem, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", videoID)

	var resp videoListResponse
	if err := c.get(ctx, "videos", params, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ListCommentThreads fetches one page of top-level comment threads for a
// video. pageToken is the opaque continuation token from the previous
// page, empty for the first page.
func (c *HTTPClient) ListCommentThreads(ctx context.Context, videoID string, maxResults int, pageToken string) (*CommentThreadListResponse, error) {
	if maxResults <= 0 || maxResults > MaxCommentPageSize {
		maxResults = MaxCommentPageSize
	}

	params := url.Values{}
	params.Set("part", "snippet,replies")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(maxResults))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp CommentThreadListResponse
	if err := c.get(ctx, "commentThreads", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs one API request and decodes the JSON response into out.
func (c *HTTPClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.YouTubeAPIRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.YouTubeAPIRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    readErrorMessage(resp.Body, resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}

// readErrorMessage extracts the message from a Google API error envelope,
// falling back to the HTTP status line.
func readErrorMessage(body io.Reader, fallback string) string {
	var envelope errorResponse
	if err := json.NewDecoder(body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return fallback
}
