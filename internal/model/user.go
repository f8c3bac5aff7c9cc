// Package model defines domain entities for the application.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// SeedUser is a single directory entry as written by the seed loader.
// Both fields are required; the email is not checked for format or uniqueness.
type SeedUser struct {
	User  string `bson:"user" json:"user"`
	Email string `bson:"email" json:"email"`
}

// IsComplete reports whether both fields are present.
func (s SeedUser) IsComplete() bool {
	return strings.TrimSpace(s.User) != "" && strings.TrimSpace(s.Email) != ""
}

// User is a stored directory entry as exposed by the API.
type User struct {
	ID    uuid.UUID `json:"user_id"`
	User  string    `json:"user"`
	Email string    `json:"email"`
}
