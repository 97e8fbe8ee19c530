package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/reelstats/reelstats/internal/logger"
)

// Migrations holds every registered schema change.
var Migrations = migrate.NewMigrations()

// RunMigrations creates any missing tables and indexes. Safe to call on every start.
func RunMigrations(ctx context.Context, db *bun.DB, log *logger.Logger) error {
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		log.Debug("no new migrations to run")
		return nil
	}

	log.Info("migrated store", "group", group.String())
	return nil
}

// Rollback undoes the most recent migration group.
func Rollback(ctx context.Context, db *bun.DB, log *logger.Logger) error {
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Rollback(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		log.Info("nothing to roll back")
		return nil
	}

	log.Info("rolled back store", "group", group.String())
	return nil
}
