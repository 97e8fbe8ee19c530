package repositories

import (
	"context"
	"fmt"

	"github.com/reelstats/reelstats/internal/models"
)

// SaveCatalogMovies inserts catalog movies. A movie whose tmdb_id is already
// stored is skipped, never replaced. Once the batch cap is reached the rest
// of the input is ignored.
func (s *Store) SaveCatalogMovies(ctx context.Context, movies []*models.CatalogMovie) (BatchResult, error) {
	run := s.startRun(ctx, models.SourceTMDB, len(movies))
	res := BatchResult{Received: len(movies)}
	var lastErr, aborted error

	for i, movie := range movies {
		if err := ctx.Err(); err != nil {
			aborted, lastErr = err, err
			break
		}

		exists, err := s.db.NewSelect().Model((*models.CatalogMovie)(nil)).Where("tmdb_id = ?", movie.TMDBID).Exists(ctx)
		if err != nil {
			s.log.Warn("error checking catalog movie", "tmdb_id", movie.TMDBID, "error", err)
			res.Failed++
			lastErr = err
			continue
		}
		if exists {
			res.Duplicates++
			continue
		}

		if res.Added >= s.batchCap {
			res.Ignored = len(movies) - i
			break
		}

		if err := s.insertCatalogMovie(ctx, movie); err != nil {
			s.log.Warn("error saving catalog movie", "tmdb_id", movie.TMDBID, "title", movie.Title, "error", err)
			res.Failed++
			lastErr = err
			continue
		}
		res.Added++
	}

	s.finishRun(ctx, run, res, lastErr)
	s.log.Info("catalog movies saved", "added", res.Added, "duplicates", res.Duplicates, "failed", res.Failed, "ignored", res.Ignored)
	return res, aborted
}

func (s *Store) insertCatalogMovie(ctx context.Context, movie *models.CatalogMovie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("invalid movie: %w", err)
	}
	_, err := s.db.NewInsert().Model(movie).Exec(ctx)
	return err
}

// ListCatalogMovies returns every catalog movie in tmdb_id order.
func (s *Store) ListCatalogMovies(ctx context.Context) ([]*models.CatalogMovie, error) {
	var movies []*models.CatalogMovie
	err := s.db.NewSelect().Model(&movies).Order("tmdb_id ASC").Scan(ctx)
	return movies, err
}
