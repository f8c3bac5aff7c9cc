// Command seed loads the reference users into the PETPAL users collection.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/petpal/petpal/internal/cache"
	"github.com/petpal/petpal/internal/config"
	"github.com/petpal/petpal/internal/logging"
	"github.com/petpal/petpal/internal/metrics"
	"github.com/petpal/petpal/internal/repository"
	"github.com/petpal/petpal/internal/seed"
)

const runTimeout = 30 * time.Second

type options struct {
	database   string
	collection string
	format     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run performs one seed and returns the process exit code. Deferred closes
// run before the caller exits.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "load config:", err)
		return 1
	}

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		return 1
	}

	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	mongoURI := cfg.MongoConnectionURI()
	repo, err := repository.New(ctx, repository.Options{
		URI:             mongoURI,
		Database:        opts.database,
		UsersCollection: opts.collection,
		PetsCollection:  cfg.MongoPetsCollection,
		Timeout:         cfg.MongoTimeout,
	})
	if err != nil {
		logger.Error("failed to connect to MongoDB",
			slog.String("error", logging.SanitizeError(err, mongoURI)),
			slog.String("mongo_uri", logging.RedactURL(mongoURI)),
		)
		return 1
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Warn("failed to disconnect from MongoDB", "error", err)
		}
	}()

	var invalidator usersInvalidator
	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, cached users list not invalidated",
				slog.String("error", logging.SanitizeError(err, cfg.RedisURL)),
			)
		} else {
			defer c.Close()
			invalidator = c
		}
	}

	recorder := metrics.NewInMemory()
	loader := seed.New(repo, seed.Config{Database: opts.database, Collection: opts.collection}, logger, recorder)
	report, err := runSeed(ctx, loader, invalidator, logger)
	if err != nil {
		logger.Error("seed failed", "error", logging.SanitizeError(err, mongoURI))
		return 1
	}

	if err := printReport(stdout, report, recorder.Snapshot(), opts.format); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.database, "database", cfg.MongoDatabase, "Database to seed")
	fs.StringVar(&opts.collection, "collection", cfg.MongoUsersCollection, "Collection to seed")
	fs.StringVar(&opts.format, "format", "plain", "Output format: plain or json")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.format = strings.ToLower(opts.format)
	if opts.format != "plain" && opts.format != "json" {
		fmt.Fprintln(stderr, "invalid format; use plain or json")
		return opts, errors.New("invalid format")
	}
	if opts.database == "" || opts.collection == "" {
		fmt.Fprintln(stderr, "database and collection must not be empty")
		return opts, errors.New("empty namespace")
	}
	return opts, nil
}

type usersInvalidator interface {
	InvalidateUsers(ctx context.Context) error
}

// runSeed loads the reference users and drops the API's cached users list.
// A failed invalidation is logged only; the cache entry expires on its own.
func runSeed(ctx context.Context, loader *seed.Loader, invalidator usersInvalidator, logger *slog.Logger) (*seed.Report, error) {
	report, err := loader.Seed(ctx, seed.DefaultUsers())
	if err != nil {
		return report, err
	}

	if invalidator != nil {
		if err := invalidator.InvalidateUsers(ctx); err != nil {
			logger.Warn("failed to invalidate cached users list", "error", err)
		}
	}
	return report, nil
}

// output is the JSON form of a run: the report plus the run's counters.
type output struct {
	*seed.Report
	UsersSeeded uint64 `json:"users_seeded_total"`
}

func printReport(w io.Writer, report *seed.Report, snap metrics.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output{Report: report, UsersSeeded: snap.UsersSeeded})
	case "plain":
		status := "existing"
		if report.Created {
			status = "created"
		}
		fmt.Fprintf(w, "run %s: %s.%s (%s), inserted %d, total %d\n",
			report.RunID, report.Database, report.Collection, status, report.Inserted, len(report.Users))
		for _, u := range report.Users {
			fmt.Fprintf(w, "%s\t%s\n", u.User, u.Email)
		}
		fmt.Fprintf(w, "users_seeded_total %d\n", snap.UsersSeeded)
		return nil
	default:
		return fmt.Errorf("invalid format %q", format)
	}
}
