package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RatingRecord is a record from the ratings provider (OMDb). Only the first
// genre of the provider's comma separated list is kept.
type RatingRecord struct {
	bun.BaseModel `bun:"table:rating_records,alias:rr"`

	ID        int64           `bun:"id,pk,autoincrement" json:"id"`
	IMDbID    *string         `bun:"imdb_id" json:"imdb_id,omitempty"`
	Title     string          `bun:"title,notnull" json:"title"`
	GenreID   *int64          `bun:"genre_id" json:"genre_id,omitempty"`
	Rating    NullableFloat64 `bun:"rating,type:real" json:"-"`
	CreatedAt time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Genre *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
}
