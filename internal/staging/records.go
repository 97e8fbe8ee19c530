// Package staging reads and writes the JSON files that sit between fetching
// and loading. Records are flat and tolerant: optional fields may be
// missing or null, numbers may arrive as strings.
package staging

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/repositories"
)

// Default file names inside the staging directory.
const (
	CatalogFile = "movie_master.json"
	RatingsFile = "omdb_master.json"
	TrailerFile = "youtube_trailers_master.json"
)

// FlexInt decodes a JSON number, a numeric string or null. Anything
// unparseable decodes as zero.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int64(v))
		return nil
	}
	*f = 0
	return nil
}

// CatalogRecord is one catalog movie as staged.
type CatalogRecord struct {
	TMDBID FlexInt `json:"tmdb_id"`
	IMDbID *string `json:"imdb_id"`
	Title  string  `json:"title"`
	Budget FlexInt `json:"budget"`
}

// ToModel converts the record for storage.
func (r CatalogRecord) ToModel() *models.CatalogMovie {
	return &models.CatalogMovie{
		TMDBID: int64(r.TMDBID),
		IMDbID: nonEmpty(r.IMDbID),
		Title:  r.Title,
		Budget: int64(r.Budget),
	}
}

// RatingRecord is one ratings provider record as staged. Rating is left raw;
// the store sanitizes it.
type RatingRecord struct {
	IMDbID     *string         `json:"imdb_id"`
	Title      string          `json:"title"`
	Genre      *string         `json:"genre"`
	IMDbRating json.RawMessage `json:"imdb_rating,omitempty"`
}

// ToInput converts the record into a store input.
func (r RatingRecord) ToInput() repositories.RatingInput {
	in := repositories.RatingInput{IMDbID: nonEmpty(r.IMDbID), Title: r.Title, Rating: rawRating(r.IMDbRating)}
	if r.Genre != nil {
		in.Genre = *r.Genre
	}
	return in
}

// rawRating unwraps a JSON string or number; anything else becomes nil.
func rawRating(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// RatingValue encodes a provider rating for staging.
func RatingValue(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// TrailerRecord is one video as staged.
type TrailerRecord struct {
	Title        string  `json:"title"`
	VideoID      string  `json:"video_id"`
	ViewCount    FlexInt `json:"view_count"`
	LikeCount    FlexInt `json:"like_count"`
	CommentCount FlexInt `json:"comment_count"`
}

// ToModel converts the record for storage.
func (r TrailerRecord) ToModel() *models.Trailer {
	return &models.Trailer{
		Title:        r.Title,
		VideoID:      r.VideoID,
		ViewCount:    int64(r.ViewCount),
		LikeCount:    int64(r.LikeCount),
		CommentCount: int64(r.CommentCount),
	}
}

// TrailerFromModel is the inverse of ToModel.
func TrailerFromModel(t *models.Trailer) TrailerRecord {
	return TrailerRecord{
		Title:        t.Title,
		VideoID:      t.VideoID,
		ViewCount:    FlexInt(t.ViewCount),
		LikeCount:    FlexInt(t.LikeCount),
		CommentCount: FlexInt(t.CommentCount),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
