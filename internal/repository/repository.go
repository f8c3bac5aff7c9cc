// Package repository provides database access layer.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Options configures a Repository.
type Options struct {
	URI             string
	Database        string
	UsersCollection string
	PetsCollection  string
	Timeout         time.Duration
}

// Repository provides database access methods.
type Repository struct {
	client   *mongo.Client
	database string
	users    string
	pets     string
}

// New creates a new Repository with a connection pool.
func New(ctx context.Context, opts Options) (*Repository, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if err := clientOpts.Validate(); err != nil {
		return nil, fmt.Errorf("failed to parse MongoDB URI: %w", err)
	}

	// Connection pool settings
	clientOpts.SetMaxPoolSize(10)
	clientOpts.SetMinPoolSize(2)
	if opts.Timeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.Timeout)
		clientOpts.SetConnectTimeout(opts.Timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", classify(err))
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", classify(err))
	}

	return &Repository{
		client:   client,
		database: opts.Database,
		users:    opts.UsersCollection,
		pets:     opts.PetsCollection,
	}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Client returns the underlying MongoDB client.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Client() *mongo.Client {
	return r.client
}

func (r *Repository) usersColl() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.users)
}

func (r *Repository) petsColl() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.pets)
}
