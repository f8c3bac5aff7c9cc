package seed

import "github.com/petpal/petpal/internal/model"

// Default target.
const (
	DefaultDatabase   = "PETPAL"
	DefaultCollection = "users"
)

// DefaultUsers returns the reference development directory.
func DefaultUsers() []model.SeedUser {
	return []model.SeedUser{
		{User: "Alice", Email: "alice@example.com"},
		{User: "Bob", Email: "bob@example.com"},
		{User: "Charlie", Email: "charlie@example.com"},
		{User: "Diana", Email: "diana@example.com"},
		{User: "Eve", Email: "eve@example.com"},
	}
}
