package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petpal/petpal/internal/metrics"
	"github.com/petpal/petpal/internal/model"
	"github.com/petpal/petpal/internal/repository"
)

// UserService handles user directory business logic.
type UserService struct {
	repo     UserStore
	cache    UsersCache
	cacheTTL time.Duration
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// NewUserService creates a new UserService. cache may be nil.
func NewUserService(repo UserStore, cache UsersCache, cacheTTL time.Duration, logger *slog.Logger, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  recorder,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	User  string
	Email string
}

// UpdateUserInput defines input for updating a user. BodyID is the ID carried
// in the request body and must match ID.
type UpdateUserInput struct {
	ID     uuid.UUID
	BodyID uuid.UUID
	User   string
	Email  string
}

// CreateUser stores a new user under a freshly generated ID.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if err := validateUser(input.User, input.Email); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:    uuid.New(),
		User:  input.User,
		Email: input.Email,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.invalidate(ctx)
	s.metrics.IncUserCreated()

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns every user, from cache when possible.
// Returns ErrNoUsers when the directory is empty.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	if s.cache != nil {
		users, err := s.cache.GetUsers(ctx)
		if err == nil {
			s.metrics.IncUsersCacheHit()
			if len(users) == 0 {
				return nil, ErrNoUsers
			}
			return users, nil
		}
		s.metrics.IncUsersCacheMiss()
	}

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	if s.cache != nil {
		if err := s.cache.SetUsers(ctx, users, s.cacheTTL); err != nil {
			s.logger.Warn("users cache write failed", "error", err)
		}
	}

	return users, nil
}

// UpdateUser replaces name and email. The user must exist before the body ID
// is compared with the path ID.
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*model.User, error) {
	if _, err := s.GetUser(ctx, input.ID); err != nil {
		return nil, err
	}

	if input.BodyID != input.ID {
		return nil, ErrUserIDMismatch
	}

	if err := validateUser(input.User, input.Email); err != nil {
		return nil, err
	}

	user := &model.User{ID: input.ID, User: input.User, Email: input.Email}
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx)
	s.metrics.IncUserUpdated()

	return s.GetUser(ctx, input.ID)
}

// DeleteUser removes a user. Pets owned by the user are left in place.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx)
	s.metrics.IncUserDeleted()

	return nil
}

func (s *UserService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUsers(ctx); err != nil {
		s.logger.Warn("users cache invalidation failed", "error", err)
	}
}

func validateUser(name, email string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return ErrInvalidUser
	}
	return nil
}
