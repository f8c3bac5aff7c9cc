package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/petpal/petpal/internal/model"
	"github.com/petpal/petpal/internal/repository"
)

// MemoryStore is an in-memory stand-in for the MongoDB collection operations.
// Collections behave like MongoDB's: creating an existing one fails and
// inserts never deduplicate.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]model.SeedUser

	// Err, when set, is returned by every operation.
	Err error
	// Calls records operation names in invocation order.
	Calls []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]model.SeedUser)}
}

func key(database, collection string) string {
	return database + "." + collection
}

func (m *MemoryStore) record(op string) error {
	m.Calls = append(m.Calls, op)
	return m.Err
}

// CreateCollection creates an empty collection.
func (m *MemoryStore) CreateCollection(_ context.Context, database, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("CreateCollection"); err != nil {
		return err
	}

	k := key(database, name)
	if _, ok := m.collections[k]; ok {
		return fmt.Errorf("%w: %s", repository.ErrCollectionExists, k)
	}
	m.collections[k] = []model.SeedUser{}
	return nil
}

// InsertMany appends records, implicitly creating the collection.
func (m *MemoryStore) InsertMany(_ context.Context, database, collection string, records []model.SeedUser) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("InsertMany"); err != nil {
		return 0, err
	}

	k := key(database, collection)
	m.collections[k] = append(m.collections[k], records...)
	return len(records), nil
}

// FindAll returns a cursor over a snapshot of the collection.
func (m *MemoryStore) FindAll(_ context.Context, database, collection string) (repository.Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.record("FindAll"); err != nil {
		return nil, err
	}

	k := key(database, collection)
	docs, ok := m.collections[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, k)
	}

	snapshot := make([]model.SeedUser, len(docs))
	copy(snapshot, docs)
	return &SliceCursor{Items: snapshot}, nil
}

// Len returns the number of records in a collection.
func (m *MemoryStore) Len(database, collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[key(database, collection)])
}

// SliceCursor iterates over a fixed slice of records.
type SliceCursor struct {
	Items []model.SeedUser
	// FailAt makes Decode fail at that position when DecodeErr is set.
	FailAt    int
	DecodeErr error

	pos    int
	closed bool
}

// Next advances to the next record.
func (c *SliceCursor) Next(context.Context) bool {
	if c.closed || c.pos >= len(c.Items) {
		return false
	}
	c.pos++
	return true
}

// Decode copies the current record into v, which must be *model.SeedUser.
func (c *SliceCursor) Decode(v any) error {
	if c.DecodeErr != nil && c.pos-1 == c.FailAt {
		return c.DecodeErr
	}
	dst, ok := v.(*model.SeedUser)
	if !ok {
		return fmt.Errorf("cannot decode into %T", v)
	}
	*dst = c.Items[c.pos-1]
	return nil
}

// Err always returns nil.
func (c *SliceCursor) Err() error { return nil }

// Close marks the cursor closed.
func (c *SliceCursor) Close(context.Context) error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *SliceCursor) Closed() bool { return c.closed }
