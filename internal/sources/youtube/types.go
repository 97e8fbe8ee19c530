package youtube

// SearchResponse is one page of search.list results.
type SearchResponse struct {
	NextPageToken string       `json:"nextPageToken"`
	Items         []SearchItem `json:"items"`
}

// SearchItem is one search hit.
type SearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
	} `json:"snippet"`
}

// VideosResponse is the videos.list payload.
type VideosResponse struct {
	Items []Video `json:"items"`
}

// Video carries a video's statistics. Counts are decimal strings and any of
// them may be absent when the owner hides it.
type Video struct {
	ID         string `json:"id"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}
