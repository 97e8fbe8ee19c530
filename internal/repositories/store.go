package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/reelstats/reelstats/internal/logger"
	"github.com/reelstats/reelstats/internal/models"
)

// BatchCap is the default number of successful inserts a single save call performs.
const BatchCap = 25

// Store is the handle the pipeline passes around for persistence. The
// caller owns the underlying *bun.DB and closes it.
type Store struct {
	db       *bun.DB
	log      *logger.Logger
	batchCap int
	now      func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithBatchCap overrides the per-call insert cap. Non-positive values are ignored.
func WithBatchCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batchCap = n
		}
	}
}

// NewStore wraps an open database.
func NewStore(db *bun.DB, log *logger.Logger, opts ...Option) *Store {
	s := &Store{db: db, log: log, batchCap: BatchCap, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BatchCap returns the configured insert cap.
func (s *Store) BatchCap() int {
	return s.batchCap
}

// BatchResult summarises a save call.
type BatchResult struct {
	Received   int
	Added      int
	Duplicates int
	Failed     int
	// Ignored counts records left unprocessed once the cap was reached.
	Ignored int
}

// startRun records a save call as running. Failure to record is logged and
// yields nil, which finishRun ignores.
func (s *Store) startRun(ctx context.Context, source models.DataSource, received int) *models.IngestRun {
	run := &models.IngestRun{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: s.now(),
		Status:    models.RunRunning,
		Received:  received,
	}
	if _, err := s.db.NewInsert().Model(run).Returning("id").Exec(ctx); err != nil {
		s.log.Warn("could not record ingest run", "source", source, "error", err)
		return nil
	}
	return run
}

// finishRun stores the outcome of a save call. It is written even when ctx
// has been cancelled so an aborted call ends up marked failed.
func (s *Store) finishRun(ctx context.Context, run *models.IngestRun, res BatchResult, lastErr error) {
	if run == nil {
		return
	}
	finished := s.now()
	run.FinishedAt = &finished
	run.Status = models.RunCompleted
	run.Added = res.Added
	run.Skipped = res.Duplicates + res.Ignored
	run.Failed = res.Failed
	if lastErr != nil {
		msg := lastErr.Error()
		run.ErrorLog = &msg
		if ctx.Err() != nil || (res.Added == 0 && res.Failed > 0) {
			run.Status = models.RunFailed
		}
	}

	if _, err := s.db.NewUpdate().Model(run).WherePK().Exec(context.WithoutCancel(ctx)); err != nil {
		s.log.Warn("could not finish ingest run", "run_id", run.RunID, "error", err)
	}
}

// ListIngestRuns returns the most recent runs first.
func (s *Store) ListIngestRuns(ctx context.Context, limit int) ([]*models.IngestRun, error) {
	var runs []*models.IngestRun
	q := s.db.NewSelect().Model(&runs).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(ctx)
	return runs, err
}

// Counts is a row count per table.
type Counts struct {
	CatalogMovies int
	RatingRecords int
	Genres        int
	Trailers      int
}

// CountAll reports how many rows each entity table holds.
func (s *Store) CountAll(ctx context.Context) (Counts, error) {
	var c Counts
	var err error
	if c.CatalogMovies, err = s.db.NewSelect().Model((*models.CatalogMovie)(nil)).Count(ctx); err != nil {
		return c, err
	}
	if c.RatingRecords, err = s.db.NewSelect().Model((*models.RatingRecord)(nil)).Count(ctx); err != nil {
		return c, err
	}
	if c.Genres, err = s.db.NewSelect().Model((*models.Genre)(nil)).Count(ctx); err != nil {
		return c, err
	}
	if c.Trailers, err = s.db.NewSelect().Model((*models.Trailer)(nil)).Count(ctx); err != nil {
		return c, err
	}
	return c, nil
}
