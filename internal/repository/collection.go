package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petpal/petpal/internal/model"
)

// Cursor streams documents from a find. *mongo.Cursor satisfies it.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

// CreateCollection creates the named collection in database.
// Returns ErrCollectionExists if the server already has it.
func (r *Repository) CreateCollection(ctx context.Context, database, name string) error {
	if err := r.client.Database(database).CreateCollection(ctx, name); err != nil {
		return fmt.Errorf("failed to create collection %s.%s: %w", database, name, classify(err))
	}
	return nil
}

// InsertMany inserts records as one ordered batch and returns the number the
// server acknowledged. Each document gets a fresh UUID _id.
func (r *Repository) InsertMany(ctx context.Context, database, collection string, records []model.SeedUser) (int, error) {
	docs := make([]any, 0, len(records))
	for _, rec := range records {
		docs = append(docs, newUserDocument(rec.User, rec.Email))
	}

	res, err := r.client.Database(database).Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s.%s: %w", database, collection, classify(err))
	}

	return len(res.InsertedIDs), nil
}

// FindAll returns a cursor over every document in the collection, in the
// server's natural order. Returns ErrNotFound if the collection does not exist.
func (r *Repository) FindAll(ctx context.Context, database, collection string) (Cursor, error) {
	db := r.client.Database(database)

	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: collection}})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections in %s: %w", database, classify(err))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotFound, database, collection)
	}

	cur, err := db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s.%s: %w", database, collection, classify(err))
	}

	return &classifiedCursor{Cursor: cur}, nil
}

// classifiedCursor reports iteration failures with the same taxonomy as the
// calls that opened it.
type classifiedCursor struct {
	*mongo.Cursor
}

func (c *classifiedCursor) Err() error {
	if err := c.Cursor.Err(); err != nil {
		return fmt.Errorf("cursor: %w", classify(err))
	}
	return nil
}
