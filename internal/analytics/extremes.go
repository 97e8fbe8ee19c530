package analytics

import (
	"context"
	"fmt"
)

// RatedMovie is a catalog movie with a valid joined rating.
type RatedMovie struct {
	Title  string
	Budget int64
	Rating float64
}

// Extremes holds the highest budget and the highest rated movie. They are
// picked independently and may be the same movie.
type Extremes struct {
	HighestBudget RatedMovie
	HighestRated  RatedMovie
	// Rows is every joined row that survived sanitization, in scan order.
	Rows []RatedMovie
}

// BudgetRatingExtremes joins catalog movies to rating records and then drops
// rows with an unusable rating. The budget extreme is taken over the
// surviving rows only, so a movie without a valid rating can never be the
// highest budget movie. Ties go to the first row in scan order.
func BudgetRatingExtremes(ctx context.Context, src Source) (*Extremes, error) {
	joined, err := src.JoinedRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load joined ratings: %w", err)
	}

	rows := make([]RatedMovie, 0, len(joined))
	for _, j := range joined {
		if !j.Rating.Valid {
			continue
		}
		rows = append(rows, RatedMovie{Title: j.Title, Budget: j.Budget, Rating: j.Rating.Float64})
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := &Extremes{HighestBudget: rows[0], HighestRated: rows[0], Rows: rows}
	for _, r := range rows[1:] {
		if r.Budget > out.HighestBudget.Budget {
			out.HighestBudget = r
		}
		if r.Rating > out.HighestRated.Rating {
			out.HighestRated = r
		}
	}
	return out, nil
}
