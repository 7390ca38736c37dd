package ytapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPClient("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestListChannelByID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "UCuAXFkgsw1L7xaCfnd5JJOw", r.URL.Query().Get("id"))
		assert.Equal(t, "snippet,statistics", r.URL.Query().Get("part"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [{
				"id": "UCuAXFkgsw1L7xaCfnd5JJOw",
				"snippet": {
					"title": "Some Channel",
					"description": "About the channel",
					"customUrl": "@somechannel",
					"country": "US",
					"publishedAt": "2009-10-25T06:57:33Z",
					"thumbnails": {"high": {"url": "https://example.com/high.jpg"}}
				},
				"statistics": {
					"viewCount": "123456",
					"subscriberCount": "1000",
					"hiddenSubscriberCount": false,
					"videoCount": "42"
				}
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	items, err := client.ListChannelByID(context.Background(), "UCuAXFkgsw1L7xaCfnd5JJOw")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "UCuAXFkgsw1L7xaCfnd5JJOw", items[0].ID)
	assert.Equal(t, "Some Channel", items[0].Snippet.Title)
	assert.Equal(t, "@somechannel", items[0].Snippet.CustomURL)
	assert.Equal(t, "123456", items[0].Statistics.ViewCount)
	assert.Equal(t, "https://example.com/high.jpg", items[0].Snippet.Thumbnails.High.URL)
}

func TestListChannelByUsername(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels", r.URL.Path)
		assert.Equal(t, "legacyname", r.URL.Query().Get("forUsername"))
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	items, err := client.ListChannelByUsername(context.Background(), "legacyname")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchChannels(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "somecreator", r.URL.Query().Get("q"))
		assert.Equal(t, "channel", r.URL.Query().Get("type"))
		assert.Equal(t, "1", r.URL.Query().Get("maxResults"))

		w.Write([]byte(`{
			"items": [{
				"id": {"kind": "youtube#channel", "channelId": "UCuAXFkgsw1L7xaCfnd5JJOw"},
				"snippet": {"channelId": "UCuAXFkgsw1L7xaCfnd5JJOw", "title": "Some Creator"}
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	items, err := client.SearchChannels(context.Background(), "somecreator", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "UCuAXFkgsw1L7xaCfnd5JJOw", items[0].Snippet.ChannelID)
}

func TestListVideoByID_CommentCountPresence(t *testing.T) {
	t.Parallel()

	t.Run("commentCount present", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"items": [{
					"id": "dQw4w9WgXcQ",
					"snippet": {"title": "A Video", "channelId": "UCuAXFkgsw1L7xaCfnd5JJOw"},
					"statistics": {"viewCount": "100", "commentCount": "7"}
				}]
			}`))
		}))
		defer server.Close()

		client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		items, err := client.ListVideoByID(context.Background(), "dQw4w9WgXcQ")
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Statistics.CommentCount)
		assert.Equal(t, "7", *items[0].Statistics.CommentCount)
	})

	t.Run("commentCount absent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"items": [{
					"id": "dQw4w9WgXcQ",
					"snippet": {"title": "A Video"},
					"statistics": {"viewCount": "100"}
				}]
			}`))
		}))
		defer server.Close()

		client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
		require.NoError(t, err)

		items, err := client.ListVideoByID(context.Background(), "dQw4w9WgXcQ")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].Statistics.CommentCount)
	})
}

func TestListCommentThreads(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commentThreads", r.URL.Path)
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("videoId"))
		assert.Equal(t, "100", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "snippet,replies", r.URL.Query().Get("part"))
		assert.Equal(t, "token-1", r.URL.Query().Get("pageToken"))

		w.Write([]byte(`{
			"items": [{
				"id": "thread-1",
				"snippet": {
					"topLevelComment": {
						"id": "thread-1",
						"snippet": {
							"authorDisplayName": "alice",
							"textOriginal": "first!",
							"likeCount": 3,
							"publishedAt": "2025-01-15T10:00:00Z",
							"updatedAt": "2025-01-15T10:00:00Z"
						}
					},
					"totalReplyCount": 0
				}
			}],
			"nextPageToken": "token-2"
		}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	page, err := client.ListCommentThreads(context.Background(), "dQw4w9WgXcQ", 100, "token-1")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "thread-1", page.Items[0].ID)
	assert.Equal(t, "alice", page.Items[0].Snippet.TopLevelComment.Snippet.AuthorDisplayName)
	assert.Equal(t, "token-2", page.NextPageToken)
}

func TestListCommentThreads_FirstPageOmitsPageToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, has := r.URL.Query()["pageToken"]
		assert.False(t, has, "first page must not send a pageToken")
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	page, err := client.ListCommentThreads(context.Background(), "dQw4w9WgXcQ", 100, "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextPageToken)
}

func TestAPIErrorEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "quotaExceeded", "errors": [{"reason": "quotaExceeded"}]}}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.ListVideoByID(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "videos", apiErr.Endpoint)
	assert.Equal(t, "quotaExceeded", apiErr.Message)
}

func TestAPIErrorWithoutEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`upstream blew up`))
	}))
	defer server.Close()

	client, err := NewHTTPClient("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.ListChannelByID(context.Background(), "UCuAXFkgsw1L7xaCfnd5JJOw")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}
