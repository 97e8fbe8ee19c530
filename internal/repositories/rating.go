package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/sanitize"
)

// RatingInput is an unsanitized record from the ratings provider.
type RatingInput struct {
	IMDbID *string
	Title  string
	// Genre is the provider's comma separated genre list.
	Genre string
	// Rating is whatever the provider sent: a string, a number or nil.
	Rating interface{}
}

// SaveRatingRecords always inserts a new row per input, up to the batch cap.
// The rating is sanitized and the first genre resolved against the lookup
// table before the row is written.
func (s *Store) SaveRatingRecords(ctx context.Context, inputs []RatingInput) (BatchResult, error) {
	run := s.startRun(ctx, models.SourceOMDb, len(inputs))
	res := BatchResult{Received: len(inputs)}
	var lastErr, aborted error

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			aborted, lastErr = err, err
			break
		}
		if res.Added >= s.batchCap {
			res.Ignored = len(inputs) - i
			break
		}

		record := &models.RatingRecord{
			IMDbID: in.IMDbID,
			Title:  in.Title,
			Rating: models.NewNullableFloat64(sanitize.ParseRating(in.Rating)),
		}
		genre, hasGenre := sanitize.FirstGenre(in.Genre)

		err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if hasGenre {
				id, err := ResolveGenre(ctx, tx, genre)
				if err != nil {
					return err
				}
				record.GenreID = &id
			}
			_, err := tx.NewInsert().Model(record).Exec(ctx)
			return err
		})
		if err != nil {
			s.log.Warn("error saving rating record", "imdb_id", deref(in.IMDbID), "title", in.Title, "error", err)
			res.Failed++
			lastErr = err
			continue
		}
		res.Added++
	}

	s.finishRun(ctx, run, res, lastErr)
	s.log.Info("rating records saved", "added", res.Added, "failed", res.Failed, "ignored", res.Ignored)
	return res, aborted
}

// JoinedRating is one catalog movie joined to one of its rating records.
type JoinedRating struct {
	TMDBID int64                  `bun:"tmdb_id"`
	Title  string                 `bun:"title"`
	Budget int64                  `bun:"budget"`
	Rating models.NullableFloat64 `bun:"rating"`
}

// JoinedRatings inner-joins catalog movies and rating records on the shared
// IMDb id, in tmdb_id then insertion order.
func (s *Store) JoinedRatings(ctx context.Context) ([]JoinedRating, error) {
	var rows []JoinedRating
	err := s.db.NewSelect().
		TableExpr("catalog_movies AS cm").
		ColumnExpr("cm.tmdb_id, cm.title, cm.budget, rr.rating").
		Join("JOIN rating_records AS rr ON rr.imdb_id = cm.imdb_id").
		OrderExpr("cm.tmdb_id ASC, rr.id ASC").
		Scan(ctx, &rows)
	return rows, err
}

// GenreRating is a rating paired with its normalized genre name.
type GenreRating struct {
	Genre  string
	Rating models.NullableFloat64
}

// GenreRatings returns every rating record that references a genre, with
// the genre name loaded through the belongs-to relation.
func (s *Store) GenreRatings(ctx context.Context) ([]GenreRating, error) {
	var records []*models.RatingRecord
	err := s.db.NewSelect().
		Model(&records).
		Relation("Genre").
		Where("rr.genre_id IS NOT NULL").
		OrderExpr("rr.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]GenreRating, 0, len(records))
	for _, rec := range records {
		if rec.Genre == nil {
			continue
		}
		rows = append(rows, GenreRating{Genre: rec.Genre.Name, Rating: rec.Rating})
	}
	return rows, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
