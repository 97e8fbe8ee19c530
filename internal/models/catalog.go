package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// CatalogMovie is a movie from the catalog provider (TMDB).
type CatalogMovie struct {
	bun.BaseModel `bun:"table:catalog_movies,alias:cm"`

	TMDBID    int64     `bun:"tmdb_id,pk" json:"tmdb_id"`
	IMDbID    *string   `bun:"imdb_id" json:"imdb_id,omitempty"`
	Title     string    `bun:"title,notnull" json:"title"`
	Budget    int64     `bun:"budget,notnull,default:0" json:"budget"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Validate checks the fields the store relies on.
func (m *CatalogMovie) Validate() error {
	if m.TMDBID <= 0 {
		return errors.New("tmdb id must be positive")
	}
	if m.Budget < 0 {
		return errors.New("budget must not be negative")
	}
	return nil
}

// HasRatingID reports whether the movie can be joined to a rating record.
func (m *CatalogMovie) HasRatingID() bool {
	return m.IMDbID != nil && *m.IMDbID != ""
}
