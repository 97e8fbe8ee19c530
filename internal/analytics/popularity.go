package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/reelstats/reelstats/internal/matcher"
)

// MoviePopularity is a catalog movie with the summed engagement of every
// trailer matched to it.
type MoviePopularity struct {
	Title  string
	Budget int64
	matcher.Engagement
}

// Popularity lists every movie with at least one matched trailer, in catalog
// order, and the one with the most total views.
type Popularity struct {
	Movies []MoviePopularity
	Top    MoviePopularity
}

// TopByViews returns up to n movies with the most views, highest first.
func (p *Popularity) TopByViews(n int) []MoviePopularity {
	sorted := make([]MoviePopularity, len(p.Movies))
	copy(sorted, p.Movies)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TrailerPopularity matches every catalog movie against the stored trailers
// and sums their counters. Movies without a match are left out.
func TrailerPopularity(ctx context.Context, src Source) (*Popularity, error) {
	movies, err := src.ListCatalogMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog movies: %w", err)
	}
	trailers, err := src.ListTrailers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trailers: %w", err)
	}
	if len(movies) == 0 || len(trailers) == 0 {
		return nil, nil
	}

	idx := matcher.NewIndex(trailers)
	var out []MoviePopularity
	for _, m := range movies {
		matched := idx.Match(m.Title)
		if len(matched) == 0 {
			continue
		}
		out = append(out, MoviePopularity{Title: m.Title, Budget: m.Budget, Engagement: matcher.Sum(matched)})
	}
	if len(out) == 0 {
		return nil, nil
	}

	top := out[0]
	for _, p := range out[1:] {
		if p.Views > top.Views {
			top = p
		}
	}
	return &Popularity{Movies: out, Top: top}, nil
}
