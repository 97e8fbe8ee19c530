package staging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelstats/reelstats/internal/models"
)

func TestFlexInt(t *testing.T) {
	cases := map[string]int64{
		`12`:     12,
		`"345"`:  345,
		`null`:   0,
		`"N/A"`:  0,
		`1.5e3`:  1500,
		`" 42 "`: 42,
		`""`:     0,
	}
	for in, want := range cases {
		var f FlexInt
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		assert.Equal(t, want, int64(f), in)
	}
}

func TestCatalogRecordTolerant(t *testing.T) {
	var records []CatalogRecord
	data := `[{"tmdb_id": 27205, "imdb_id": "tt1375666", "title": "Inception", "budget": 160000000},
	          {"tmdb_id": "11", "title": "Star Wars"},
	          {"tmdb_id": 12, "imdb_id": "", "title": "Finding Nemo", "budget": null}]`
	require.NoError(t, json.Unmarshal([]byte(data), &records))
	require.Len(t, records, 3)

	m := records[0].ToModel()
	assert.Equal(t, int64(27205), m.TMDBID)
	require.NotNil(t, m.IMDbID)
	assert.Equal(t, "tt1375666", *m.IMDbID)

	m = records[1].ToModel()
	assert.Equal(t, int64(11), m.TMDBID)
	assert.Nil(t, m.IMDbID)
	assert.Zero(t, m.Budget)

	assert.Nil(t, records[2].ToModel().IMDbID)
}

func TestRatingRecordToInput(t *testing.T) {
	var records []RatingRecord
	data := `[{"imdb_id": "tt1", "title": "One", "genre": "Action, Drama", "imdb_rating": "8.1"},
	          {"imdb_id": "tt2", "title": "Two", "genre": null, "imdb_rating": 7},
	          {"imdb_id": "tt3", "title": "Three"}]`
	require.NoError(t, json.Unmarshal([]byte(data), &records))

	in := records[0].ToInput()
	assert.Equal(t, "Action, Drama", in.Genre)
	assert.Equal(t, "8.1", in.Rating)

	in = records[1].ToInput()
	assert.Empty(t, in.Genre)
	assert.Equal(t, json.Number("7"), in.Rating)

	assert.Nil(t, records[2].ToInput().Rating)
}

func TestDirRoundTrip(t *testing.T) {
	dir := Dir(filepath.Join(t.TempDir(), "staging"))
	imdb := "tt1375666"
	genre := "Sci-Fi"

	require.NoError(t, dir.WriteCatalog([]CatalogRecord{{TMDBID: 27205, IMDbID: &imdb, Title: "Inception", Budget: 160000000}}))
	require.NoError(t, dir.WriteRatings([]RatingRecord{{IMDbID: &imdb, Title: "Inception", Genre: &genre, IMDbRating: RatingValue("8.8")}}))
	require.NoError(t, dir.WriteTrailers([]TrailerRecord{TrailerFromModel(&models.Trailer{Title: "Inception | Trailer", VideoID: "YoHD9XEInc0", ViewCount: 10})}))

	movies, err := dir.Catalog()
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)

	ratings, err := dir.Ratings()
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "8.8", ratings[0].Rating)
	assert.Equal(t, "Sci-Fi", ratings[0].Genre)

	trailers, err := dir.Trailers()
	require.NoError(t, err)
	require.Len(t, trailers, 1)
	assert.Equal(t, int64(10), trailers[0].ViewCount)

	raw, err := os.ReadFile(filepath.Join(string(dir), TrailerFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    {")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Dir(t.TempDir()).Catalog()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
