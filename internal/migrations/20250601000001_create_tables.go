package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/reelstats/reelstats/internal/models"
)

func init() {
	// Entity tables, lookup table first so rating_records can reference it.
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*models.Genre)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.CatalogMovie)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().
			Model((*models.RatingRecord)(nil)).
			IfNotExists().
			ForeignKey(`("genre_id") REFERENCES "genres" ("id")`).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Trailer)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		_, err := db.NewCreateTable().Model((*models.IngestRun)(nil)).IfNotExists().Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.IngestRun)(nil),
			(*models.Trailer)(nil),
			(*models.RatingRecord)(nil),
			(*models.CatalogMovie)(nil),
			(*models.Genre)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
