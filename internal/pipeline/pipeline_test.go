package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelstats/reelstats/internal/config"
	"github.com/reelstats/reelstats/internal/database"
	"github.com/reelstats/reelstats/internal/logger"
	"github.com/reelstats/reelstats/internal/migrations"
	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/repositories"
	"github.com/reelstats/reelstats/internal/staging"
)

type fakeCatalog struct {
	records []staging.CatalogRecord
	err     error
}

func (f fakeCatalog) FetchCatalog(context.Context) ([]staging.CatalogRecord, error) {
	return f.records, f.err
}

type fakeRatings struct {
	byID      map[string]staging.RatingRecord
	requested []string
}

func (f *fakeRatings) FetchRatings(_ context.Context, ids []string) ([]staging.RatingRecord, error) {
	f.requested = ids
	var out []staging.RatingRecord
	for _, id := range ids {
		if r, ok := f.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTrailers struct {
	trailers []*models.Trailer
	err      error
}

func (f fakeTrailers) FetchTrailers(context.Context) ([]*models.Trailer, error) {
	return f.trailers, f.err
}

func strPtr(s string) *string { return &s }

func rating(id, title, genre, value string) staging.RatingRecord {
	return staging.RatingRecord{IMDbID: strPtr(id), Title: title, Genre: strPtr(genre), IMDbRating: staging.RatingValue(value)}
}

func newTestRunner(t *testing.T, ratings *fakeRatings, trailers fakeTrailers) (*Runner, *config.Config) {
	t.Helper()
	return newTestRunnerWithCatalog(t, testCatalog(), ratings, trailers)
}

func testCatalog() fakeCatalog {
	return fakeCatalog{records: []staging.CatalogRecord{
		{TMDBID: 1, IMDbID: strPtr("tt1"), Title: "Alpha", Budget: 100},
		{TMDBID: 2, IMDbID: strPtr("tt2"), Title: "Beta", Budget: 300},
		{TMDBID: 3, Title: "Gamma", Budget: 50},
	}}
}

func newTestRunnerWithCatalog(t *testing.T, catalog fakeCatalog, ratings *fakeRatings, trailers fakeTrailers) (*Runner, *config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Staging.Dir = filepath.Join(dir, "staging")
	cfg.Report.CSVPath = filepath.Join(dir, "report.csv")
	cfg.Report.ChartsDir = filepath.Join(dir, "charts")

	db, err := database.NewDB(filepath.Join(dir, "movies.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.NewNop()
	require.NoError(t, migrations.RunMigrations(context.Background(), db, log))
	store := repositories.NewStore(db, log, repositories.WithBatchCap(cfg.Store.BatchCap))

	return NewRunner(cfg, store, log, WithFetchers(catalog, ratings, trailers)), cfg
}

func TestRun(t *testing.T) {
	ratings := &fakeRatings{byID: map[string]staging.RatingRecord{
		"tt1": rating("tt1", "Alpha", "Drama, Crime", "8.0"),
		"tt2": rating("tt2", "Beta", "Action", "6.0"),
	}}
	trailers := fakeTrailers{trailers: []*models.Trailer{
		{Title: "Alpha Official Trailer", VideoID: "a", ViewCount: 1000, LikeCount: 10, CommentCount: 1},
		{Title: "Beta Teaser", VideoID: "b", ViewCount: 5000},
	}}
	r, cfg := newTestRunner(t, ratings, trailers)

	paths, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"tt1", "tt2"}, ratings.requested)
	for _, name := range []string{staging.CatalogFile, staging.RatingsFile, staging.TrailerFile} {
		assert.FileExists(t, filepath.Join(cfg.Staging.Dir, name))
	}

	require.NotEmpty(t, paths)
	assert.Equal(t, cfg.Report.CSVPath, paths[0])
	assert.Len(t, paths, 6)

	data, err := os.ReadFile(cfg.Report.CSVPath)
	require.NoError(t, err)
	csv := string(data)
	assert.Contains(t, csv, "Highest Budget Movie,Beta,300")
	assert.Contains(t, csv, "Highest Rated Movie,Alpha,8")
	assert.Contains(t, csv, "Drama,8")
	assert.Contains(t, csv, "Beta,300,5000,0,0")

	st, err := r.Status(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, repositories.Counts{CatalogMovies: 3, RatingRecords: 2, Genres: 2, Trailers: 2}, st.Counts)
	assert.Len(t, st.Runs, 3)
}

func TestLoadIsCapped(t *testing.T) {
	r, cfg := newTestRunner(t, &fakeRatings{}, fakeTrailers{})

	records := make([]staging.CatalogRecord, 30)
	for i := range records {
		records[i] = staging.CatalogRecord{TMDBID: staging.FlexInt(i + 1), Title: "Movie", Budget: 10}
	}
	dir := staging.Dir(cfg.Staging.Dir)
	require.NoError(t, dir.WriteCatalog(records))
	require.NoError(t, dir.WriteRatings(nil))
	require.NoError(t, dir.WriteTrailers(nil))

	sum, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, sum.Catalog.Added)
	assert.Equal(t, 5, sum.Catalog.Ignored)

	sum, err = r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Catalog.Added)
	assert.Equal(t, 25, sum.Catalog.Duplicates)
}

func TestLoadSkipsMissingStaging(t *testing.T) {
	r, _ := newTestRunner(t, &fakeRatings{}, fakeTrailers{})
	sum, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LoadSummary{}, *sum)

	st, err := r.Status(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, repositories.Counts{}, st.Counts)
	assert.Empty(t, st.Runs)
}

func TestRunContinuesWhenTrailerSearchFails(t *testing.T) {
	ratings := &fakeRatings{byID: map[string]staging.RatingRecord{
		"tt1": rating("tt1", "Alpha", "Drama", "8.0"),
	}}
	r, cfg := newTestRunner(t, ratings, fakeTrailers{err: errors.New("quota exceeded")})

	paths, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	assert.FileExists(t, cfg.Report.CSVPath)

	var staged []staging.TrailerRecord
	require.NoError(t, staging.Read(filepath.Join(cfg.Staging.Dir, staging.TrailerFile), &staged))
	assert.Empty(t, staged)

	st, err := r.Status(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Counts.CatalogMovies)
	assert.Equal(t, 1, st.Counts.RatingRecords)
	assert.Equal(t, 0, st.Counts.Trailers)

	data, err := os.ReadFile(cfg.Report.CSVPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Highest Rated Movie,Alpha,8")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "Total_Comments"))
}

func TestFetchStagesPartialCatalog(t *testing.T) {
	partial := testCatalog()
	partial.records = partial.records[:1]
	partial.err = errors.New("popular page 2: unexpected status: 500")
	ratings := &fakeRatings{}
	r, cfg := newTestRunnerWithCatalog(t, partial, ratings, fakeTrailers{})

	require.NoError(t, r.Fetch(context.Background()))
	assert.Equal(t, []string{"tt1"}, ratings.requested)

	movies, err := staging.Dir(cfg.Staging.Dir).Catalog()
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Alpha", movies[0].Title)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	r, cfg := newTestRunner(t, &fakeRatings{}, fakeTrailers{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, cfg.Report.CSVPath)
}

func TestAnalyzeEmptyStore(t *testing.T) {
	r, cfg := newTestRunner(t, &fakeRatings{}, fakeTrailers{})
	cfg.Report.ChartsEnabled = new(bool)

	res, err := r.Analyze(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res.Extremes)
	assert.Nil(t, res.Genres)
	assert.Nil(t, res.Popularity)

	paths, err := r.Report(res)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.Report.CSVPath}, paths)
}

func TestFetchRequiresKeys(t *testing.T) {
	t.Setenv(config.EnvTMDBKey, "")
	t.Setenv(config.EnvOMDbKey, "")
	t.Setenv(config.EnvYouTubeKey, "")

	cfg := config.Default()
	cfg.Staging.Dir = t.TempDir()
	r := NewRunner(cfg, nil, logger.NewNop())

	err := r.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingKeys)
}
