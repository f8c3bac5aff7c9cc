package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/petpal/petpal/internal/model"
)

// Common errors for pet repository operations.
var (
	ErrPetNotFound = errors.New("pet not found")
)

// CreatePet inserts a new pet. The owner is not checked here.
func (r *Repository) CreatePet(ctx context.Context, pet *model.Pet) error {
	doc := petDocument{
		ID:     uuidToBinary(pet.ID),
		Pet:    pet.Pet,
		UserID: uuidToBinary(pet.UserID),
	}

	if _, err := r.petsColl().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create pet: %w", classify(err))
	}

	return nil
}

// ListPetsByUser returns all pets owned by userID.
func (r *Repository) ListPetsByUser(ctx context.Context, userID uuid.UUID) ([]*model.Pet, error) {
	cur, err := r.petsColl().Find(ctx, bson.M{"user_id": uuidToBinary(userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", classify(err))
	}

	var docs []petDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", classify(err))
	}

	pets := make([]*model.Pet, 0, len(docs))
	for _, d := range docs {
		pets = append(pets, d.toModel())
	}

	return pets, nil
}

// DeletePet removes a pet by ID.
func (r *Repository) DeletePet(ctx context.Context, id uuid.UUID) error {
	res, err := r.petsColl().DeleteOne(ctx, bson.M{"_id": uuidToBinary(id)})
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", classify(err))
	}

	if res.DeletedCount == 0 {
		return ErrPetNotFound
	}

	return nil
}
