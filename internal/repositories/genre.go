package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/reelstats/reelstats/internal/models"
)

// ResolveGenre returns the id of the genre with exactly this name, creating
// the row if it does not exist yet.
func ResolveGenre(ctx context.Context, db bun.IDB, name string) (int64, error) {
	var id int64
	err := db.NewSelect().
		Model((*models.Genre)(nil)).
		Column("id").
		Where("name = ?", name).
		Scan(ctx, &id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	genre := &models.Genre{Name: name}
	if _, err := db.NewInsert().Model(genre).Returning("id").Exec(ctx); err != nil {
		return 0, err
	}
	return genre.ID, nil
}

// ListGenres returns the lookup table ordered by id.
func (s *Store) ListGenres(ctx context.Context) ([]*models.Genre, error) {
	var genres []*models.Genre
	err := s.db.NewSelect().Model(&genres).Order("id ASC").Scan(ctx)
	return genres, err
}
