// Package resolver normalizes raw YouTube URLs and identifiers into
// canonical channel and video IDs. Matching is pure; only matches that
// need an API lookup reach the network.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/tubelens/youtube-insights-go/internal/ytapi"
)

// ErrNotFound means resolution completed without error but no matching
// resource exists. It is distinct from an API failure.
var ErrNotFound = errors.New("no matching resource found")

// ResolveChannel resolves a raw input string into a canonical channel ID.
// Inputs that already carry the ID (canonical IDs, /channel/ URLs) are
// resolved without any API call; handles, legacy usernames and watch
// URLs require one lookup. Returns ErrNotFound when nothing matches or a
// lookup comes back empty, and a wrapped API error when a lookup fails.
func ResolveChannel(ctx context.Context, api ytapi.Client, raw string) (ChannelID, error) {
	m, ok := matchChannel(raw)
	if !ok {
		return "", ErrNotFound
	}

	switch m.kind {
	case lookupNone:
		return m.resolved, nil

	case lookupSearchHandle:
		items, err := api.SearchChannels(ctx, m.token, 1)
		if err != nil {
			return "", fmt.Errorf("search channel by handle %q: %w", m.token, err)
		}
		if len(items) == 0 {
			return "", ErrNotFound
		}
		return ChannelID(items[0].Snippet.ChannelID), nil

	case lookupByUsername:
		items, err := api.ListChannelByUsername(ctx, m.token)
		if err != nil {
			return "", fmt.Errorf("lookup channel by username %q: %w", m.token, err)
		}
		if len(items) == 0 {
			return "", ErrNotFound
		}
		return ChannelID(items[0].ID), nil

	case lookupByVideo:
		items, err := api.ListVideoByID(ctx, m.token)
		if err != nil {
			return "", fmt.Errorf("lookup video %q: %w", m.token, err)
		}
		if len(items) == 0 {
			return "", ErrNotFound
		}
		return ChannelID(items[0].Snippet.ChannelID), nil
	}

	return "", ErrNotFound
}

// ResolveVideo resolves a raw input string into a canonical video ID.
// Pure pattern matching, no network: the ID is embedded literally in all
// supported URL shapes. Returns ErrNotFound when none match.
func ResolveVideo(raw string) (VideoID, error) {
	if id, ok := matchVideo(raw); ok {
		return id, nil
	}
	return "", ErrNotFound
}
