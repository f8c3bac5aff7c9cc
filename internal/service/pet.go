package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/petpal/petpal/internal/metrics"
	"github.com/petpal/petpal/internal/model"
	"github.com/petpal/petpal/internal/repository"
)

// PetService handles pet business logic.
type PetService struct {
	pets    PetStore
	users   UserStore
	metrics metrics.Recorder
}

// NewPetService creates a new PetService.
func NewPetService(pets PetStore, users UserStore, recorder metrics.Recorder) *PetService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PetService{pets: pets, users: users, metrics: recorder}
}

// CreatePetInput defines input for creating a pet.
type CreatePetInput struct {
	Pet    string
	UserID uuid.UUID
}

// CreatePet stores a pet for an existing user.
func (s *PetService) CreatePet(ctx context.Context, input CreatePetInput) (*model.Pet, error) {
	if strings.TrimSpace(input.Pet) == "" {
		return nil, ErrInvalidPet
	}

	if _, err := s.users.GetUserByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	pet := &model.Pet{
		ID:     uuid.New(),
		Pet:    input.Pet,
		UserID: input.UserID,
	}

	if err := s.pets.CreatePet(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.metrics.IncPetCreated()

	return pet, nil
}

// ListPets returns the pets owned by userID.
// Returns ErrNoPets when there are none.
func (s *PetService) ListPets(ctx context.Context, userID uuid.UUID) ([]*model.Pet, error) {
	pets, err := s.pets.ListPetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	if len(pets) == 0 {
		return nil, ErrNoPets
	}

	return pets, nil
}

// DeletePet removes a pet by ID.
func (s *PetService) DeletePet(ctx context.Context, id uuid.UUID) error {
	if err := s.pets.DeletePet(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return ErrPetNotFound
		}
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	s.metrics.IncPetDeleted()

	return nil
}
