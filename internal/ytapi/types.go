package ytapi

// Response shapes for the subset of YouTube Data API v3 endpoints this
// service consumes. Count fields arrive as decimal strings; commentCount
// is a pointer because its absence means comments are disabled.

// Thumbnail is a single thumbnail rendition.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Thumbnails holds the renditions keyed by resolution.
type Thumbnails struct {
	Default  Thumbnail `json:"default"`
	Medium   Thumbnail `json:"medium"`
	High     Thumbnail `json:"high"`
	Standard Thumbnail `json:"standard"`
	Maxres   Thumbnail `json:"maxres"`
}

type channelListResponse struct {
	Items []ChannelItem `json:"items"`
}

// ChannelItem is one item from channels.list.
type ChannelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		CustomURL   string     `json:"customUrl,omitempty"`
		Country     string     `json:"country,omitempty"`
		PublishedAt string     `json:"publishedAt"`
		Thumbnails  Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount             string `json:"viewCount"`
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
		VideoCount            string `json:"videoCount"`
	} `json:"statistics"`
}

type searchListResponse struct {
	Items []SearchItem `json:"items"`
}

// SearchItem is one item from search.list with type=channel.
type SearchItem struct {
	ID struct {
		Kind      string `json:"kind"`
		ChannelID string `json:"channelId"`
	} `json:"id"`
	Snippet struct {
		ChannelID string `json:"channelId"`
		Title     string `json:"title"`
	} `json:"snippet"`
}

type videoListResponse struct {
	Items []VideoItem `json:"items"`
}

// VideoItem is one item from videos.list.
type VideoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string     `json:"title"`
		ChannelID    string     `json:"channelId"`
		ChannelTitle string     `json:"channelTitle"`
		PublishedAt  string     `json:"publishedAt"`
		Thumbnails   Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string  `json:"viewCount"`
		LikeCount    string  `json:"likeCount"`
		CommentCount *string `json:"commentCount,omitempty"`
	} `json:"statistics"`
}

// CommentThreadListResponse is one page of commentThreads.list.
type CommentThreadListResponse struct {
	Items         []CommentThread `json:"items"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

// CommentThread is a top-level comment plus its replies as returned in
// a single list item.
type CommentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment Comment `json:"topLevelComment"`
		TotalReplyCount int     `json:"totalReplyCount"`
	} `json:"snippet"`
	Replies struct {
		Comments []Comment `json:"comments"`
	} `json:"replies,omitempty"`
}

// Comment is a single comment snippet, used for both top-level comments
// and replies. ParentID is set only on replies.
type Comment struct {
	ID      string `json:"id"`
	Snippet struct {
		AuthorDisplayName     string `json:"authorDisplayName"`
		AuthorProfileImageURL string `json:"authorProfileImageUrl"`
		AuthorChannelURL      string `json:"authorChannelUrl,omitempty"`
		TextOriginal          string `json:"textOriginal"`
		LikeCount             int64  `json:"likeCount"`
		PublishedAt           string `json:"publishedAt"`
		UpdatedAt             string `json:"updatedAt"`
		ParentID              string `json:"parentId,omitempty"`
	} `json:"snippet"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}
