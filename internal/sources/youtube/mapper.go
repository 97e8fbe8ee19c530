package youtube

import (
	"strconv"
	"strings"

	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/sanitize"
)

// MapVideo builds a trailer from a search hit and its statistics. Hits without
// a video id, with an empty cleaned title, or that look episodic are rejected.
func MapVideo(item SearchItem, stats Video) (*models.Trailer, bool) {
	if item.ID.VideoID == "" {
		return nil, false
	}
	title := sanitize.CleanVideoTitle(item.Snippet.Title)
	if title == "" || sanitize.IsEpisodic(title) {
		return nil, false
	}

	return &models.Trailer{
		Title:        title,
		VideoID:      item.ID.VideoID,
		ViewCount:    parseCount(stats.Statistics.ViewCount),
		LikeCount:    parseCount(stats.Statistics.LikeCount),
		CommentCount: parseCount(stats.Statistics.CommentCount),
	}, true
}

// parseCount reads a decimal count; absent, malformed or negative is 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
