package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	// Join and lookup indexes.
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_catalog_movies_imdb ON catalog_movies(imdb_id)",
			"CREATE INDEX IF NOT EXISTS idx_rating_records_imdb ON rating_records(imdb_id)",
			"CREATE INDEX IF NOT EXISTS idx_rating_records_genre ON rating_records(genre_id)",
			"CREATE INDEX IF NOT EXISTS idx_ingest_runs_source ON ingest_runs(source, started_at)",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_catalog_movies_imdb",
			"DROP INDEX IF EXISTS idx_rating_records_imdb",
			"DROP INDEX IF EXISTS idx_rating_records_genre",
			"DROP INDEX IF EXISTS idx_ingest_runs_source",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}
		return nil
	})
}
