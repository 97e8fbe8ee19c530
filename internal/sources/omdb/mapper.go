package omdb

import (
	"strings"

	"github.com/reelstats/reelstats/internal/sanitize"
	"github.com/reelstats/reelstats/internal/staging"
)

// MapTitle converts a lookup into a staged rating record. Titles without a
// rating are rejected. The genre list is staged as received.
func MapTitle(imdbID string, r *TitleResponse) (staging.RatingRecord, bool) {
	if r == nil {
		return staging.RatingRecord{}, false
	}
	rating := strings.TrimSpace(r.IMDbRating)
	if rating == "" || rating == sanitize.MissingRating {
		return staging.RatingRecord{}, false
	}

	id := imdbID
	if r.IMDbID != "" {
		id = r.IMDbID
	}
	rec := staging.RatingRecord{
		IMDbID:     &id,
		Title:      strings.TrimSpace(r.Title),
		IMDbRating: staging.RatingValue(rating),
	}
	if g := strings.TrimSpace(r.Genre); g != "" && g != sanitize.MissingRating {
		rec.Genre = &g
	}
	return rec, true
}
