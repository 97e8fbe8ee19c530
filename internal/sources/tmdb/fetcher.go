package tmdb

import (
	"context"

	"github.com/reelstats/reelstats/internal/logger"
	"github.com/reelstats/reelstats/internal/staging"
)

// DefaultTarget is how many budgeted movies a fetch collects.
const DefaultTarget = 150

// Fetcher walks the popular list until enough budgeted movies are found.
type Fetcher struct {
	client *Client
	log    *logger.Logger
	target int
}

// NewFetcher creates a new TMDB fetcher. A non-positive target means DefaultTarget.
func NewFetcher(client *Client, log *logger.Logger, target int) *Fetcher {
	if target <= 0 {
		target = DefaultTarget
	}
	return &Fetcher{client: client, log: log, target: target}
}

// FetchCatalog pages through popular movies, fetching details for each, and
// keeps those with a budget. It stops at the target, an empty page, or the
// last page. A failed page ends the walk with what was collected; a failed
// detail lookup is skipped. Only cancellation is returned as an error.
func (f *Fetcher) FetchCatalog(ctx context.Context) ([]staging.CatalogRecord, error) {
	result := make([]staging.CatalogRecord, 0, f.target)
	seen := make(map[int64]bool)

	for page := 1; len(result) < f.target; page++ {
		resp, err := f.client.Popular(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			f.log.Warn("stopping catalog walk early", "page", page, "collected", len(result), "error", err)
			break
		}
		if len(resp.Results) == 0 {
			break
		}

		for _, m := range resp.Results {
			if len(result) >= f.target {
				break
			}
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true

			details, err := f.client.Details(ctx, m.ID)
			if err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				f.log.Warn("skipping movie", "tmdb_id", m.ID, "error", err)
				continue
			}

			rec, ok := MapDetails(details)
			if !ok {
				f.log.Debug("no budget", "tmdb_id", m.ID, "title", details.Title)
				continue
			}
			result = append(result, rec)
		}

		f.log.Info("catalog page done", "page", page, "collected", len(result), "target", f.target)

		if resp.TotalPages > 0 && page >= resp.TotalPages {
			break
		}
	}

	return result, nil
}
