package tmdb

import (
	"strings"

	"github.com/reelstats/reelstats/internal/staging"
)

// MapDetails converts details into a staged catalog record. Movies without a
// positive budget are rejected.
func MapDetails(d *MovieDetails) (staging.CatalogRecord, bool) {
	if d == nil || d.Budget <= 0 {
		return staging.CatalogRecord{}, false
	}

	rec := staging.CatalogRecord{
		TMDBID: staging.FlexInt(d.ID),
		Title:  strings.TrimSpace(d.Title),
		Budget: staging.FlexInt(d.Budget),
	}
	if d.IMDbID != nil && strings.TrimSpace(*d.IMDbID) != "" {
		id := strings.TrimSpace(*d.IMDbID)
		rec.IMDbID = &id
	}
	return rec, true
}
