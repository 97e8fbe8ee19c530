package analytics

import (
	"context"
	"fmt"
)

// GenreAverage is the mean rating of one genre.
type GenreAverage struct {
	Genre   string
	Average float64
	Count   int
}

// AverageRatingByGenre averages valid ratings per genre. Genres with no valid
// rating are left out. Output follows the order genres are first seen.
func AverageRatingByGenre(ctx context.Context, src Source) ([]GenreAverage, error) {
	rows, err := src.GenreRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genre ratings: %w", err)
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for _, r := range rows {
		if r.Genre == "" || !r.Rating.Valid {
			continue
		}
		if counts[r.Genre] == 0 {
			order = append(order, r.Genre)
		}
		totals[r.Genre] += r.Rating.Float64
		counts[r.Genre]++
	}
	if len(order) == 0 {
		return nil, nil
	}

	out := make([]GenreAverage, 0, len(order))
	for _, g := range order {
		out = append(out, GenreAverage{Genre: g, Average: totals[g] / float64(counts[g]), Count: counts[g]})
	}
	return out, nil
}
