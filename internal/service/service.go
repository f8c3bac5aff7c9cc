// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/petpal/petpal/internal/model"
)

// Service errors.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNoUsers        = errors.New("no users found")
	ErrInvalidUser    = errors.New("user and email are required")
	ErrUserIDMismatch = errors.New("user ID mismatch")
	ErrPetNotFound    = errors.New("pet not found")
	ErrNoPets         = errors.New("no pets found for this user")
	ErrInvalidPet     = errors.New("pet name is required")
)

// UserStore persists users. *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// PetStore persists pets. *repository.Repository satisfies it.
type PetStore interface {
	CreatePet(ctx context.Context, pet *model.Pet) error
	ListPetsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Pet, error)
	DeletePet(ctx context.Context, id uuid.UUID) error
}

// UsersCache caches the full users list. *cache.Cache satisfies it.
type UsersCache interface {
	GetUsers(ctx context.Context) ([]*model.User, error)
	SetUsers(ctx context.Context, users []*model.User, ttl time.Duration) error
	InvalidateUsers(ctx context.Context) error
}
