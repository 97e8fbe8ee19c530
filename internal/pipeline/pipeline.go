// Package pipeline wires fetching, loading, analysis and reporting into the
// steps the CLI runs.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/reelstats/reelstats/internal/analytics"
	"github.com/reelstats/reelstats/internal/config"
	"github.com/reelstats/reelstats/internal/logger"
	"github.com/reelstats/reelstats/internal/models"
	"github.com/reelstats/reelstats/internal/ratelimit"
	"github.com/reelstats/reelstats/internal/report"
	"github.com/reelstats/reelstats/internal/repositories"
	"github.com/reelstats/reelstats/internal/sources/omdb"
	"github.com/reelstats/reelstats/internal/sources/tmdb"
	"github.com/reelstats/reelstats/internal/sources/youtube"
	"github.com/reelstats/reelstats/internal/staging"
)

// CatalogFetcher collects budgeted catalog movies.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) ([]staging.CatalogRecord, error)
}

// RatingFetcher collects ratings for catalog identifiers.
type RatingFetcher interface {
	FetchRatings(ctx context.Context, imdbIDs []string) ([]staging.RatingRecord, error)
}

// TrailerFetcher collects trailer videos.
type TrailerFetcher interface {
	FetchTrailers(ctx context.Context) ([]*models.Trailer, error)
}

// Runner executes pipeline steps against one store and staging directory.
type Runner struct {
	cfg     *config.Config
	store   *repositories.Store
	staging staging.Dir
	log     *logger.Logger

	catalog  CatalogFetcher
	ratings  RatingFetcher
	trailers TrailerFetcher
}

// Option customises a Runner.
type Option func(*Runner)

// WithFetchers replaces the API-backed fetchers.
func WithFetchers(c CatalogFetcher, r RatingFetcher, t TrailerFetcher) Option {
	return func(rn *Runner) {
		rn.catalog = c
		rn.ratings = r
		rn.trailers = t
	}
}

// NewRunner creates a runner. API-backed fetchers are built on first Fetch
// unless WithFetchers supplies them.
func NewRunner(cfg *config.Config, store *repositories.Store, log *logger.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		store:   store,
		staging: staging.Dir(cfg.Staging.Dir),
		log:     log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) ensureFetchers() error {
	if r.catalog != nil && r.ratings != nil && r.trailers != nil {
		return nil
	}
	if err := r.cfg.RequireKeys(); err != nil {
		return err
	}

	limits := r.cfg.RateLimits
	keys := r.cfg.APIKeys
	r.catalog = tmdb.NewFetcher(
		tmdb.NewClient(ratelimit.New(limits.For(string(models.SourceTMDB))), keys.TMDB),
		r.log.With("source", models.SourceTMDB), r.cfg.Fetch.CatalogTarget)
	r.ratings = omdb.NewFetcher(
		omdb.NewClient(ratelimit.New(limits.For(string(models.SourceOMDb))), keys.OMDb),
		r.log.With("source", models.SourceOMDb))
	r.trailers = youtube.NewFetcher(
		youtube.NewClient(ratelimit.New(limits.For(string(models.SourceYouTube))), keys.YouTube),
		r.log.With("source", models.SourceYouTube), r.cfg.Fetch.SearchOptions(), r.cfg.Fetch.TrailerPages)
	return nil
}

// Fetch pulls from all three APIs and writes the staging files. Ratings are
// looked up for the identifiers the catalog fetch returned; the trailer search
// does not depend on the catalog and runs alongside it. A failing source is
// logged and stages whatever it produced; neither chain stops the other.
// Only missing credentials and cancellation are returned.
func (r *Runner) Fetch(ctx context.Context) error {
	if err := r.ensureFetchers(); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		r.fetchCatalogAndRatings(ctx)
		return nil
	})
	g.Go(func() error {
		r.fetchTrailers(ctx)
		return nil
	})
	_ = g.Wait()
	return ctx.Err()
}

func (r *Runner) fetchCatalogAndRatings(ctx context.Context) {
	catalog, err := r.catalog.FetchCatalog(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.log.Warn("catalog fetch incomplete", "source", models.SourceTMDB, "movies", len(catalog), "error", err)
	}
	if err := r.staging.WriteCatalog(catalog); err != nil {
		r.log.Error("could not stage catalog", "error", err)
	} else {
		r.log.Info("catalog staged", "movies", len(catalog))
	}

	ids := make([]string, 0, len(catalog))
	for _, rec := range catalog {
		if m := rec.ToModel(); m.HasRatingID() {
			ids = append(ids, *m.IMDbID)
		}
	}
	ratings, err := r.ratings.FetchRatings(ctx, ids)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.log.Warn("ratings fetch incomplete", "source", models.SourceOMDb, "records", len(ratings), "error", err)
	}
	if err := r.staging.WriteRatings(ratings); err != nil {
		r.log.Error("could not stage ratings", "error", err)
		return
	}
	r.log.Info("ratings staged", "records", len(ratings))
}

func (r *Runner) fetchTrailers(ctx context.Context) {
	trailers, err := r.trailers.FetchTrailers(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.log.Warn("trailer fetch incomplete", "source", models.SourceYouTube, "videos", len(trailers), "error", err)
	}
	records := make([]staging.TrailerRecord, len(trailers))
	for i, t := range trailers {
		records[i] = staging.TrailerFromModel(t)
	}
	if err := r.staging.WriteTrailers(records); err != nil {
		r.log.Error("could not stage trailers", "error", err)
		return
	}
	r.log.Info("trailers staged", "videos", len(records))
}

// LoadSummary reports one Load call per source.
type LoadSummary struct {
	Catalog  repositories.BatchResult
	Ratings  repositories.BatchResult
	Trailers repositories.BatchResult
}

// Load reads the staging files and makes one capped save call per source.
// Repeated loads continue where the previous one stopped for catalog movies
// and trailers, which skip existing keys. A missing or unreadable staging
// file skips its source; only cancellation is returned.
func (r *Runner) Load(ctx context.Context) (*LoadSummary, error) {
	var sum LoadSummary
	r.log.Info("loading staged records", "dir", string(r.staging), "batch_cap", r.store.BatchCap())

	if movies, ok := readStaged(r, models.SourceTMDB, staging.CatalogFile, r.staging.Catalog); ok {
		res, err := r.store.SaveCatalogMovies(ctx, movies)
		sum.Catalog = res
		if err != nil {
			return &sum, fmt.Errorf("save catalog: %w", err)
		}
		r.logBatch(models.SourceTMDB, res)
	}

	if ratings, ok := readStaged(r, models.SourceOMDb, staging.RatingsFile, r.staging.Ratings); ok {
		res, err := r.store.SaveRatingRecords(ctx, ratings)
		sum.Ratings = res
		if err != nil {
			return &sum, fmt.Errorf("save ratings: %w", err)
		}
		r.logBatch(models.SourceOMDb, res)
	}

	if trailers, ok := readStaged(r, models.SourceYouTube, staging.TrailerFile, r.staging.Trailers); ok {
		res, err := r.store.SaveTrailers(ctx, trailers)
		sum.Trailers = res
		if err != nil {
			return &sum, fmt.Errorf("save trailers: %w", err)
		}
		r.logBatch(models.SourceYouTube, res)
	}

	return &sum, nil
}

func (r *Runner) logBatch(source models.DataSource, res repositories.BatchResult) {
	r.log.Info("batch saved",
		"source", source,
		"received", res.Received,
		"added", res.Added,
		"duplicates", res.Duplicates,
		"failed", res.Failed,
		"ignored", res.Ignored,
	)
}

// readStaged loads one staging file, logging and reporting false when it
// cannot be read.
func readStaged[T any](r *Runner, source models.DataSource, file string, load func() (T, error)) (T, bool) {
	v, err := load()
	if err != nil {
		r.log.Warn("skipping source, staging file unavailable", "source", source, "file", file, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

// Analyze runs the three summaries. Summaries without data are logged.
func (r *Runner) Analyze(ctx context.Context) (*analytics.Results, error) {
	res, err := analytics.RunAll(ctx, r.store)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if res.Extremes == nil {
		r.log.Warn("budget and rating extremes", "error", analytics.ErrNotEnoughData)
	} else {
		r.log.Info("budget and rating extremes",
			"highest_budget", res.Extremes.HighestBudget.Title,
			"highest_rated", res.Extremes.HighestRated.Title)
	}
	if res.Genres == nil {
		r.log.Warn("average rating by genre", "error", analytics.ErrNotEnoughData)
	} else {
		r.log.Info("average rating by genre", "genres", len(res.Genres))
	}
	if res.Popularity == nil {
		r.log.Warn("trailer popularity", "error", analytics.ErrNotEnoughData)
	} else {
		r.log.Info("trailer popularity", "matched", len(res.Popularity.Movies), "top", res.Popularity.Top.Title)
	}
	return res, nil
}

// Report writes the CSV and, when enabled, the charts. It returns every path written.
func (r *Runner) Report(res *analytics.Results) ([]string, error) {
	if err := report.WriteCSVFile(r.cfg.Report.CSVPath, res); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	paths := []string{r.cfg.Report.CSVPath}

	if r.cfg.Report.Charts() {
		charts, err := report.RenderCharts(r.cfg.Report.ChartsDir, res)
		paths = append(paths, charts...)
		if err != nil {
			return paths, fmt.Errorf("report: %w", err)
		}
	}

	r.log.Info("report written", "files", len(paths), "csv", r.cfg.Report.CSVPath)
	return paths, nil
}

// Run executes Fetch, Load, Analyze and Report in order. A failed fetch is
// logged and the run continues with whatever is staged, so missing data
// surfaces as empty summaries in the report. Cancellation stops the run.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if err := r.Fetch(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.log.Error("fetch failed, continuing with staged data", "error", err)
	}
	if _, err := r.Load(ctx); err != nil {
		return nil, err
	}
	res, err := r.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return r.Report(res)
}

// Status is a snapshot of the store.
type Status struct {
	Counts repositories.Counts
	Runs   []*models.IngestRun
}

// Status returns row counts and the most recent ingest runs.
func (r *Runner) Status(ctx context.Context, recent int) (*Status, error) {
	counts, err := r.store.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}
	runs, err := r.store.ListIngestRuns(ctx, recent)
	if err != nil {
		return nil, fmt.Errorf("list ingest runs: %w", err)
	}
	return &Status{Counts: counts, Runs: runs}, nil
}
