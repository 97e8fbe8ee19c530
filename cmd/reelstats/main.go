// Command reelstats fetches movie metadata, loads it into SQLite and reports
// on budgets, ratings and trailer engagement.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/reelstats/reelstats/internal/config"
	"github.com/reelstats/reelstats/internal/database"
	"github.com/reelstats/reelstats/internal/logger"
	"github.com/reelstats/reelstats/internal/migrations"
	"github.com/reelstats/reelstats/internal/pipeline"
	"github.com/reelstats/reelstats/internal/repositories"
)

const usage = `usage: reelstats [-config file] <command>

commands:
  fetch     pull catalog, ratings and trailers into the staging directory
  load      save one capped batch per source from staging into the database
  analyze   run the summaries and log them
  report    run the summaries and write the CSV report and charts
  run       fetch, load, analyze and report
  migrate   apply schema migrations (-rollback to undo the last group)
  status    show row counts and recent ingest runs
`

var errUsage = errors.New("usage")

var commands = map[string]bool{
	"fetch":   true,
	"load":    true,
	"analyze": true,
	"report":  true,
	"run":     true,
	"migrate": true,
	"status":  true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "reelstats: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("reelstats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", os.Getenv("REELSTATS_CONFIG"), "path to YAML config")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		return errUsage
	}
	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	if !commands[cmd] {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	if _, err := maxprocs.Set(maxprocs.Logger(log.SugaredLogger.Debugf)); err != nil {
		log.Warn("could not set GOMAXPROCS", "error", err)
	}

	db, err := database.NewDB(cfg.Database.Path, cfg.Database.Debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	if cmd == "migrate" {
		mfs := flag.NewFlagSet("migrate", flag.ContinueOnError)
		mfs.SetOutput(io.Discard)
		rollback := mfs.Bool("rollback", false, "undo the most recent migration group")
		if err := mfs.Parse(cmdArgs); err != nil {
			return errUsage
		}
		if *rollback {
			return migrations.Rollback(ctx, db, log)
		}
		return migrations.RunMigrations(ctx, db, log)
	}

	if err := migrations.RunMigrations(ctx, db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store := repositories.NewStore(db, log, repositories.WithBatchCap(cfg.Store.BatchCap))
	runner := pipeline.NewRunner(cfg, store, log)

	switch cmd {
	case "fetch":
		return runner.Fetch(ctx)
	case "load":
		sum, err := runner.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "catalog: %d added, ratings: %d added, trailers: %d added\n",
			sum.Catalog.Added, sum.Ratings.Added, sum.Trailers.Added)
		return nil
	case "analyze":
		_, err := runner.Analyze(ctx)
		return err
	case "report":
		res, err := runner.Analyze(ctx)
		if err != nil {
			return err
		}
		paths, err := runner.Report(res)
		printPaths(stdout, paths)
		return err
	case "run":
		paths, err := runner.Run(ctx)
		printPaths(stdout, paths)
		return err
	case "status":
		st, err := runner.Status(ctx, 10)
		if err != nil {
			return err
		}
		printStatus(stdout, st)
		return nil
	default:
		return errUsage
	}
}

func printPaths(w io.Writer, paths []string) {
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}

func printStatus(w io.Writer, st *pipeline.Status) {
	fmt.Fprintf(w, "catalog movies: %d\nrating records: %d\ngenres: %d\ntrailers: %d\n\n",
		st.Counts.CatalogMovies, st.Counts.RatingRecords, st.Counts.Genres, st.Counts.Trailers)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSOURCE\tSTATUS\tADDED\tSKIPPED\tFAILED\tSTARTED")
	for _, r := range st.Runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.RunID[:8], r.Source, r.Status, r.Added, r.Skipped, r.Failed, humanize.Time(r.StartedAt))
	}
	_ = tw.Flush()
}
