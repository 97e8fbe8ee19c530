package repositories

import (
	"context"
	"fmt"

	"github.com/reelstats/reelstats/internal/models"
)

// SaveTrailers inserts trailers not yet stored under the same video_id, up to
// the batch cap.
func (s *Store) SaveTrailers(ctx context.Context, trailers []*models.Trailer) (BatchResult, error) {
	run := s.startRun(ctx, models.SourceYouTube, len(trailers))
	res := BatchResult{Received: len(trailers)}
	var lastErr, aborted error

	for i, t := range trailers {
		if err := ctx.Err(); err != nil {
			aborted, lastErr = err, err
			break
		}

		exists, err := s.db.NewSelect().Model((*models.Trailer)(nil)).Where("video_id = ?", t.VideoID).Exists(ctx)
		if err != nil {
			s.log.Warn("error checking trailer", "video_id", t.VideoID, "error", err)
			res.Failed++
			lastErr = err
			continue
		}
		if exists {
			res.Duplicates++
			continue
		}

		if res.Added >= s.batchCap {
			res.Ignored = len(trailers) - i
			break
		}

		if err := t.Validate(); err != nil {
			s.log.Warn("error saving trailer", "video_id", t.VideoID, "error", err)
			res.Failed++
			lastErr = fmt.Errorf("invalid trailer: %w", err)
			continue
		}
		if _, err := s.db.NewInsert().Model(t).Exec(ctx); err != nil {
			s.log.Warn("error saving trailer", "video_id", t.VideoID, "title", t.Title, "error", err)
			res.Failed++
			lastErr = err
			continue
		}
		res.Added++
	}

	s.finishRun(ctx, run, res, lastErr)
	s.log.Info("trailers saved", "added", res.Added, "duplicates", res.Duplicates, "failed", res.Failed, "ignored", res.Ignored)
	return res, aborted
}

// ListTrailers returns every stored trailer in insertion order.
func (s *Store) ListTrailers(ctx context.Context) ([]*models.Trailer, error) {
	var trailers []*models.Trailer
	err := s.db.NewSelect().Model(&trailers).Order("id ASC").Scan(ctx)
	return trailers, err
}
