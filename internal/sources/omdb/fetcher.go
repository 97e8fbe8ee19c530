package omdb

import (
	"context"
	"errors"

	"github.com/reelstats/reelstats/internal/logger"
	"github.com/reelstats/reelstats/internal/staging"
)

// Fetcher collects ratings for a list of identifiers.
type Fetcher struct {
	client *Client
	log    *logger.Logger
}

// NewFetcher creates a new OMDb fetcher.
func NewFetcher(client *Client, log *logger.Logger) *Fetcher {
	return &Fetcher{client: client, log: log}
}

// FetchRatings looks up each identifier once. Failed or unrated lookups are
// logged and skipped; only context cancellation aborts the run.
func (f *Fetcher) FetchRatings(ctx context.Context, imdbIDs []string) ([]staging.RatingRecord, error) {
	result := make([]staging.RatingRecord, 0, len(imdbIDs))
	seen := make(map[string]bool, len(imdbIDs))

	for i, id := range imdbIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		resp, err := f.client.ByID(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			if errors.Is(err, ErrNotFound) {
				f.log.Debug("rating not found", "imdb_id", id)
			} else {
				f.log.Warn("skipping rating", "imdb_id", id, "error", err)
			}
			continue
		}

		rec, ok := MapTitle(id, resp)
		if !ok {
			f.log.Debug("no rating", "imdb_id", id, "title", resp.Title)
			continue
		}
		result = append(result, rec)

		if (i+1)%25 == 0 {
			f.log.Info("ratings progress", "looked_up", i+1, "total", len(imdbIDs), "kept", len(result))
		}
	}

	f.log.Info("ratings fetched", "requested", len(imdbIDs), "kept", len(result))
	return result, nil
}
