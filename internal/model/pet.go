package model

import "github.com/google/uuid"

// Pet is an animal owned by a single user.
type Pet struct {
	ID     uuid.UUID `json:"pet_id"`
	Pet    string    `json:"pet"`
	UserID uuid.UUID `json:"user_id"`
}
