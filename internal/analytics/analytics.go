// Package analytics runs the three read-only summaries over the store.
//
// Each summary returns a nil result and a nil error when the store holds no
// usable rows. Only query failures are returned as errors.
package analytics

import (
	"context"
	"errors"

	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/repositories"
)

// ErrNotEnoughData lets callers turn a nil summary into an error if they want one.
var ErrNotEnoughData = errors.New("not enough data")

// Source is the part of the store the summaries read from.
type Source interface {
	JoinedRatings(ctx context.Context) ([]repositories.JoinedRating, error)
	GenreRatings(ctx context.Context) ([]repositories.GenreRating, error)
	ListCatalogMovies(ctx context.Context) ([]*models.CatalogMovie, error)
	ListTrailers(ctx context.Context) ([]*models.Trailer, error)
}

// Results bundles the three summaries. Any of them may be nil.
type Results struct {
	Extremes   *Extremes
	Genres     []GenreAverage
	Popularity *Popularity
}

// RunAll computes every summary in order.
func RunAll(ctx context.Context, src Source) (*Results, error) {
	extremes, err := BudgetRatingExtremes(ctx, src)
	if err != nil {
		return nil, err
	}
	genres, err := AverageRatingByGenre(ctx, src)
	if err != nil {
		return nil, err
	}
	popularity, err := TrailerPopularity(ctx, src)
	if err != nil {
		return nil, err
	}
	return &Results{Extremes: extremes, Genres: genres, Popularity: popularity}, nil
}
