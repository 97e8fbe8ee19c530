package youtube

import (
	"context"

	"github.com/reelstats/reelstats/internal/logger"
	"github.com/reelstats/reelstats/internal/matcher"
	"github.com/reelstats/reelstats/internal/models"
)

// DefaultPages is how many search pages a fetch walks.
const DefaultPages = 6

// Fetcher collects trailer videos with their engagement counts.
type Fetcher struct {
	client *Client
	log    *logger.Logger
	opts   SearchOptions
	pages  int
}

// NewFetcher creates a new YouTube fetcher. A non-positive pages means DefaultPages.
func NewFetcher(client *Client, log *logger.Logger, opts SearchOptions, pages int) *Fetcher {
	if pages <= 0 {
		pages = DefaultPages
	}
	return &Fetcher{client: client, log: log, opts: opts, pages: pages}
}

// FetchTrailers walks search pages, attaches statistics per page and drops
// duplicate uploads of the same trailer. A failed search page ends the walk
// with what was collected. When a statistics call fails its page keeps zero
// counts; a video absent from a successful statistics response is skipped.
// Only cancellation is returned as an error.
func (f *Fetcher) FetchTrailers(ctx context.Context) ([]*models.Trailer, error) {
	result := make([]*models.Trailer, 0, f.pages*MaxResults)
	token := ""

	for page := 1; page <= f.pages; page++ {
		resp, err := f.client.Search(ctx, f.opts, token)
		if err != nil {
			if ctx.Err() != nil {
				return matcher.Dedupe(result), ctx.Err()
			}
			f.log.Warn("stopping search early", "page", page, "collected", len(result), "error", err)
			break
		}

		ids := make([]string, 0, len(resp.Items))
		for _, item := range resp.Items {
			if item.ID.VideoID != "" {
				ids = append(ids, item.ID.VideoID)
			}
		}

		stats, err := f.client.Statistics(ctx, ids)
		statsOK := err == nil
		if err != nil {
			if ctx.Err() != nil {
				return matcher.Dedupe(result), ctx.Err()
			}
			f.log.Warn("statistics unavailable, counts default to zero", "page", page, "error", err)
			stats = map[string]Video{}
		}

		kept := 0
		for _, item := range resp.Items {
			st, found := stats[item.ID.VideoID]
			if statsOK && !found {
				f.log.Debug("no statistics for video", "video_id", item.ID.VideoID)
				continue
			}
			t, ok := MapVideo(item, st)
			if !ok {
				f.log.Debug("skipping video", "video_id", item.ID.VideoID, "title", item.Snippet.Title)
				continue
			}
			result = append(result, t)
			kept++
		}
		f.log.Info("search page done", "page", page, "hits", len(resp.Items), "kept", kept)

		if resp.NextPageToken == "" {
			break
		}
		token = resp.NextPageToken
	}

	deduped := matcher.Dedupe(result)
	f.log.Info("trailers fetched", "collected", len(result), "unique", len(deduped))
	return deduped, nil
}
