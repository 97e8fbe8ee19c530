// Package matcher pairs catalog movies with trailers by normalized title
// containment and removes duplicate trailers before they are stored.
//
// Containment is unanchored, so short or generic catalog titles can match
// unrelated videos. That is an accepted approximation.
package matcher

import (
	"strings"

	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/sanitize"
)

// Engagement is the summed counters of every trailer matched to a movie.
type Engagement struct {
	Trailers int
	Views    int64
	Likes    int64
	Comments int64
}

// Add folds one trailer into the totals.
func (e *Engagement) Add(t *models.Trailer) {
	e.Trailers++
	e.Views += t.ViewCount
	e.Likes += t.LikeCount
	e.Comments += t.CommentCount
}

// Sum totals the counters of all given trailers.
func Sum(trailers []*models.Trailer) Engagement {
	var e Engagement
	for _, t := range trailers {
		e.Add(t)
	}
	return e
}

type entry struct {
	key     string
	trailer *models.Trailer
}

// Index holds trailers with their titles normalized once up front.
type Index struct {
	entries []entry
}

// NewIndex normalizes every trailer title.
func NewIndex(trailers []*models.Trailer) *Index {
	idx := &Index{entries: make([]entry, 0, len(trailers))}
	for _, t := range trailers {
		idx.entries = append(idx.entries, entry{key: sanitize.NormalizeTitle(t.Title), trailer: t})
	}
	return idx
}

// Len returns the number of indexed trailers.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Match returns, in index order, every trailer whose normalized title
// contains the normalized catalog title. A title that normalizes to nothing
// matches nothing.
func (idx *Index) Match(title string) []*models.Trailer {
	needle := sanitize.NormalizeTitle(title)
	if needle == "" {
		return nil
	}

	var out []*models.Trailer
	for _, e := range idx.entries {
		if strings.Contains(e.key, needle) {
			out = append(out, e.trailer)
		}
	}
	return out
}

// Match is a one-off containment match without building an index.
func Match(title string, candidates []*models.Trailer) []*models.Trailer {
	return NewIndex(candidates).Match(title)
}

// Dedupe drops trailers whose TrailerKey was already seen. The first
// occurrence wins and input order is kept.
func Dedupe(trailers []*models.Trailer) []*models.Trailer {
	seen := make(map[string]struct{}, len(trailers))
	out := make([]*models.Trailer, 0, len(trailers))
	for _, t := range trailers {
		key := sanitize.TrailerKey(t.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
