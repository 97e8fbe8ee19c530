package sanitize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRatingMissing(t *testing.T) {
	for _, raw := range []interface{}{nil, "", "N/A", "  ", (*string)(nil)} {
		_, ok := ParseRating(raw)
		assert.False(t, ok, "%#v", raw)
	}
}

func TestParseRatingDecimal(t *testing.T) {
	cases := map[string]float64{
		"7.5":   7.5,
		"8":     8,
		" 6.1":  6.1,
		"+9.0":  9,
		".5":    0.5,
		"1e1":   10,
		"-2.25": -2.25,
	}
	for in, want := range cases {
		got, ok := ParseRating(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRatingRejectsGarbage(t *testing.T) {
	for _, in := range []string{"abc", "7.5/10", "NaN", "inf", "0x1p-2", "1e999", "7,5"} {
		_, ok := ParseRatingString(in)
		assert.False(t, ok, in)
	}
}

func TestParseRatingNonString(t *testing.T) {
	v, ok := ParseRating(7.25)
	assert.True(t, ok)
	assert.Equal(t, 7.25, v)

	v, ok = ParseRating(int64(8))
	assert.True(t, ok)
	assert.Equal(t, 8.0, v)

	v, ok = ParseRating(json.Number("6.5"))
	assert.True(t, ok)
	assert.Equal(t, 6.5, v)

	_, ok = ParseRating(math.NaN())
	assert.False(t, ok)

	_, ok = ParseRating(struct{}{})
	assert.False(t, ok)
}

func TestFirstGenre(t *testing.T) {
	g, ok := FirstGenre("Action, Adventure, Sci-Fi")
	assert.True(t, ok)
	assert.Equal(t, "Action", g)

	g, ok = FirstGenre("  Drama  ")
	assert.True(t, ok)
	assert.Equal(t, "Drama", g)

	for _, in := range []string{"", "   ", ", Comedy", "N/A"} {
		_, ok := FirstGenre(in)
		assert.False(t, ok, in)
	}
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "", "Comedy"}, SplitGenres(" Action ,, Comedy "))
	assert.Equal(t, []string{"", "Drama"}, SplitGenres(", Drama"))
	assert.Nil(t, SplitGenres("  "))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "inside out 2  official trailer", NormalizeTitle("  Inside Out 2 | Official Trailer! "))
	assert.Equal(t, "spiderman across the spiderverse", NormalizeTitle("Spider-Man: Across the Spider-Verse"))
	assert.Equal(t, "amélie", NormalizeTitle("Amélie"))
}

func TestTrailerKey(t *testing.T) {
	a := TrailerKey("Movie X | Official Trailer")
	b := TrailerKey("Movie X (2024) official trailer HD")
	assert.Equal(t, "movie x", a)
	assert.Equal(t, a, b)
	assert.Equal(t, "dune part two", TrailerKey("DUNE: PART TWO - Official Trailer 3"))
}

func TestCleanVideoTitle(t *testing.T) {
	assert.Equal(t, "Fast & Furious - Director's Cut", CleanVideoTitle("Fast &amp; Furious - Director&#39;s Cut ★"))
}

func TestIsEpisodic(t *testing.T) {
	assert.True(t, IsEpisodic("The Bear Season 3 | Official Trailer"))
	assert.True(t, IsEpisodic("Andor Episode: One"))
	assert.False(t, IsEpisodic("Wicked | Official Trailer"))
}
