package resolver

import (
	"regexp"
	"strings"
)

// ChannelID is a canonical channel identifier: "UC" followed by 22
// characters, 24 in total.
type ChannelID string

// VideoID is a canonical video identifier: exactly 11 characters from
// [A-Za-z0-9_-].
type VideoID string

var (
	channelIDPattern = regexp.MustCompile(`^UC[a-zA-Z0-9_-]{22}$`)

	// One pattern covers /channel/<id>, /c/<name> and /@<handle>; the
	// captured segment is disambiguated afterwards.
	channelURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/(?:channel/|c/|@)([a-zA-Z0-9_-]+)`)

	watchURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`)

	videoURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	}
)

// IsChannelID reports whether s already has the canonical channel ID shape.
func IsChannelID(s string) bool {
	return channelIDPattern.MatchString(s)
}

// lookupKind tags which API lookup a matched rule requires.
type lookupKind int

const (
	lookupNone lookupKind = iota
	lookupSearchHandle
	lookupByUsername
	lookupByVideo
)

// channelMatch is the result of the pure matching stage: either a fully
// resolved ID or a lookup request for the dispatcher.
type channelMatch struct {
	resolved ChannelID
	kind     lookupKind
	token    string
}

// matchChannel runs the channel resolution rules in priority order
// without touching the network. The second return value is false when no
// rule matched at all.
func matchChannel(raw string) (channelMatch, bool) {
	// Already a canonical ID, nothing to resolve.
	if IsChannelID(raw) {
		return channelMatch{resolved: ChannelID(raw)}, true
	}

	if groups := channelURLPattern.FindStringSubmatch(raw); groups != nil {
		segment := groups[1]

		// /channel/<id> carries the ID literally.
		if IsChannelID(segment) {
			return channelMatch{resolved: ChannelID(segment)}, true
		}

		// @handle resolves via search, /c/<name> via the legacy
		// username lookup.
		if strings.Contains(raw, "@") {
			return channelMatch{kind: lookupSearchHandle, token: segment}, true
		}
		return channelMatch{kind: lookupByUsername, token: segment}, true
	}

	// A watch URL identifies the channel through the video's metadata.
	if groups := watchURLPattern.FindStringSubmatch(raw); groups != nil {
		return channelMatch{kind: lookupByVideo, token: groups[1]}, true
	}

	return channelMatch{}, false
}

// matchVideo tries the four known video URL shapes in order. The second
// return value is false when none matched.
func matchVideo(raw string) (VideoID, bool) {
	for _, pattern := range videoURLPatterns {
		if groups := pattern.FindStringSubmatch(raw); groups != nil {
			return VideoID(groups[1]), true
		}
	}
	return "", false
}
