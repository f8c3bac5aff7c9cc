// Package seed loads the fixed development directory of users into a
// collection and reads it back.
package seed

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/petpal/petpal/internal/metrics"
	"github.com/petpal/petpal/internal/model"
	"github.com/petpal/petpal/internal/repository"
)

// Loader errors. Store failures are wrapped so that both the loader error and
// the store's classified cause match with errors.Is.
var (
	ErrNoRecords     = errors.New("no records to insert")
	ErrInsertFailure = errors.New("insert failed")
	ErrQueryFailure  = errors.New("query failed")
)

// Store is the data-store collaborator. *repository.Repository satisfies it.
type Store interface {
	CreateCollection(ctx context.Context, database, name string) error
	InsertMany(ctx context.Context, database, collection string, records []model.SeedUser) (int, error)
	FindAll(ctx context.Context, database, collection string) (repository.Cursor, error)
}

// Config selects the target collection.
type Config struct {
	Database   string
	Collection string
}

// Loader seeds one collection. Calls are synchronous; a Loader adds no
// locking of its own.
type Loader struct {
	store   Store
	cfg     Config
	logger  *slog.Logger
	metrics metrics.Recorder
}

// New creates a Loader.
func New(store Store, cfg Config, logger *slog.Logger, recorder metrics.Recorder) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Loader{
		store:   store,
		cfg:     cfg,
		logger:  logger.With("database", cfg.Database, "collection", cfg.Collection),
		metrics: recorder,
	}
}

// EnsureCollection creates the target collection. An error matching
// repository.ErrCollectionExists is informational.
func (l *Loader) EnsureCollection(ctx context.Context) error {
	if err := l.store.CreateCollection(ctx, l.cfg.Database, l.cfg.Collection); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	l.logger.Info("collection created")
	return nil
}

// SeedUsers inserts records as a single batch and returns the inserted count.
// A record missing its user or email rejects the whole batch before the store
// is called. Duplicates are not detected.
func (l *Loader) SeedUsers(ctx context.Context, records []model.SeedUser) (int, error) {
	if len(records) == 0 {
		return 0, ErrNoRecords
	}
	for i, rec := range records {
		if !rec.IsComplete() {
			return 0, fmt.Errorf("%w: %w: record %d missing user or email", ErrInsertFailure, repository.ErrValidation, i)
		}
	}

	n, err := l.store.InsertMany(ctx, l.cfg.Database, l.cfg.Collection, records)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInsertFailure, err)
	}

	l.metrics.AddUsersSeeded(n)
	l.logger.Info("users seeded", "count", n)
	return n, nil
}

// ListAll returns every record in the collection. Each range over the
// sequence runs a new query. A failure is yielded once, matching
// ErrQueryFailure, and ends the sequence.
func (l *Loader) ListAll(ctx context.Context) iter.Seq2[model.SeedUser, error] {
	return func(yield func(model.SeedUser, error) bool) {
		cur, err := l.store.FindAll(ctx, l.cfg.Database, l.cfg.Collection)
		if err != nil {
			yield(model.SeedUser{}, fmt.Errorf("%w: %w", ErrQueryFailure, err))
			return
		}
		defer func() {
			if err := cur.Close(ctx); err != nil {
				l.logger.Warn("failed to close cursor", "error", err)
			}
		}()

		for cur.Next(ctx) {
			var u model.SeedUser
			if err := cur.Decode(&u); err != nil {
				yield(model.SeedUser{}, fmt.Errorf("%w: decode: %w", ErrQueryFailure, err))
				return
			}
			if !yield(u, nil) {
				return
			}
		}

		if err := cur.Err(); err != nil {
			yield(model.SeedUser{}, fmt.Errorf("%w: %w", ErrQueryFailure, err))
		}
	}
}

// Collect drains seq, stopping at the first error.
func Collect(seq iter.Seq2[model.SeedUser, error]) ([]model.SeedUser, error) {
	var out []model.SeedUser
	for u, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Report summarises a Seed run.
type Report struct {
	RunID      string           `json:"run_id"`
	Database   string           `json:"database"`
	Collection string           `json:"collection"`
	Created    bool             `json:"created"`
	Inserted   int              `json:"inserted"`
	Users      []model.SeedUser `json:"users"`
}

// Seed runs EnsureCollection, SeedUsers and ListAll in order. An existing
// collection is logged and skipped; any other failure aborts the run.
func (l *Loader) Seed(ctx context.Context, records []model.SeedUser) (*Report, error) {
	report := &Report{
		RunID:      ulid.Make().String(),
		Database:   l.cfg.Database,
		Collection: l.cfg.Collection,
	}
	logger := l.logger.With("run_id", report.RunID)

	err := l.EnsureCollection(ctx)
	switch {
	case err == nil:
		report.Created = true
	case errors.Is(err, repository.ErrCollectionExists):
		logger.Info("collection already exists, continuing")
	default:
		return report, err
	}

	n, err := l.SeedUsers(ctx, records)
	if err != nil {
		return report, err
	}
	report.Inserted = n

	users, err := Collect(l.ListAll(ctx))
	if err != nil {
		return report, err
	}
	report.Users = users

	logger.Info("seed complete", "created", report.Created, "inserted", n, "total", len(users))
	return report, nil
}
