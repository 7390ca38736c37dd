// Package stats fetches channel and video metadata with aggregate
// statistics. Single request per call, no pagination.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tubelens/youtube-insights-go/internal/resolver"
	"github.com/tubelens/youtube-insights-go/internal/ytapi"
)

// ErrCommentsDisabled means the video's statistics carry no comment
// count, which the platform uses to signal that comments are turned off.
// Terminal for that video; callers must check before paginating comments.
var ErrCommentsDisabled = errors.New("comments are disabled for this video")

// ChannelStats is the resolved metadata and statistics for one channel.
type ChannelStats struct {
	ChannelID       resolver.ChannelID `json:"channelId"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	CustomURL       string             `json:"customUrl,omitempty"`
	Country         string             `json:"country,omitempty"`
	PublishedAt     time.Time          `json:"publishedAt"`
	Thumbnails      ytapi.Thumbnails   `json:"thumbnails"`
	SubscriberCount int64              `json:"subscriberCount"`
	SubscribersHidden bool             `json:"subscribersHidden"`
	ViewCount       int64              `json:"viewCount"`
	VideoCount      int64              `json:"videoCount"`
}

// VideoStats is the resolved metadata and statistics for one video.
type VideoStats struct {
	VideoID          resolver.VideoID   `json:"videoId"`
	Title            string             `json:"title"`
	ChannelID        resolver.ChannelID `json:"channelId"`
	ChannelTitle     string             `json:"channelTitle"`
	PublishedAt      time.Time          `json:"publishedAt"`
	Thumbnails       ytapi.Thumbnails   `json:"thumbnails"`
	ViewCount        int64              `json:"viewCount"`
	CommentCount     int64              `json:"commentCount"`
	CommentsDisabled bool               `json:"commentsDisabled"`
}

// FetchChannelStats retrieves metadata and statistics for a channel.
// Returns resolver.ErrNotFound when the result set is empty.
func FetchChannelStats(ctx context.Context, api ytapi.Client, id resolver.ChannelID) (*ChannelStats, error) {
	items, err := api.ListChannelByID(ctx, string(id))
	if err != nil {
		return nil, fmt.Errorf("fetch channel stats: %w", err)
	}
	if len(items) == 0 {
		return nil, resolver.ErrNotFound
	}

	item := items[0]
	publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
	videoCount, _ := strconv.ParseInt(item.Statistics.VideoCount, 10, 64)

	cs := &ChannelStats{
		ChannelID:         resolver.ChannelID(item.ID),
		Title:             item.Snippet.Title,
		Description:       item.Snippet.Description,
		CustomURL:         item.Snippet.CustomURL,
		Country:           item.Snippet.Country,
		PublishedAt:       publishedAt,
		Thumbnails:        item.Snippet.Thumbnails,
		SubscribersHidden: item.Statistics.HiddenSubscriberCount,
		ViewCount:         viewCount,
		VideoCount:        videoCount,
	}

	if !cs.SubscribersHidden {
		cs.SubscriberCount, _ = strconv.ParseInt(item.Statistics.SubscriberCount, 10, 64)
	}

	return cs, nil
}

// FetchVideoStats retrieves metadata and statistics for a video.
// Returns resolver.ErrNotFound when the result set is empty. A missing
// commentCount field marks the video as CommentsDisabled.
func FetchVideoStats(ctx context.Context, api ytapi.Client, id resolver.VideoID) (*VideoStats, error) {
	items, err := api.ListVideoByID(ctx, string(id))
	if err != nil {
		return nil, fmt.Errorf("fetch video stats: %w", err)
	}
	if len(items) == 0 {
		return nil, resolver.ErrNotFound
	}

	item := items[0]
	publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	viewCount, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)

	vs := &VideoStats{
		VideoID:      resolver.VideoID(item.ID),
		Title:        item.Snippet.Title,
		ChannelID:    resolver.ChannelID(item.Snippet.ChannelID),
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  publishedAt,
		Thumbnails:   item.Snippet.Thumbnails,
		ViewCount:    viewCount,
	}

	if item.Statistics.CommentCount == nil {
		vs.CommentsDisabled = true
	} else {
		vs.CommentCount, _ = strconv.ParseInt(*item.Statistics.CommentCount, 10, 64)
	}

	return vs, nil
}
