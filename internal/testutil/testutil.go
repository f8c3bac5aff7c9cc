// Package testutil provides shared helpers and in-memory fakes for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petpal/petpal/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// DropDatabase removes a scratch database created by an integration test.
func DropDatabase(ctx context.Context, client *mongo.Client, name string) error {
	if err := client.Database(name).Drop(ctx); err != nil {
		return fmt.Errorf("drop database %s: %w", name, err)
	}
	return nil
}

// UniqueName generates a unique database or collection name for tests.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// NewTestUser creates a test user with a fresh ID.
func NewTestUser(t testing.TB, name string) *model.User {
	t.Helper()
	return &model.User{
		ID:    uuid.New(),
		User:  name,
		Email: fmt.Sprintf("%s@example.com", name),
	}
}

// NewTestPet creates a test pet owned by userID.
func NewTestPet(t testing.TB, name string, userID uuid.UUID) *model.Pet {
	t.Helper()
	return &model.Pet{
		ID:     uuid.New(),
		Pet:    name,
		UserID: userID,
	}
}
