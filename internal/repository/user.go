package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petpal/petpal/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
)

// CreateUser inserts a new user into the users collection.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	doc := userDocument{
		ID:    uuidToBinary(user.ID),
		User:  user.User,
		Email: user.Email,
	}

	if _, err := r.usersColl().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create user: %w", classify(err))
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var doc storedUser
	err := r.usersColl().FindOne(ctx, bson.M{"_id": uuidToBinary(id)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", classify(err))
	}

	return doc.toModel(), nil
}

// ListUsers returns every user in the collection.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	cur, err := r.usersColl().Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", classify(err))
	}

	var docs []storedUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", classify(err))
	}

	users := make([]*model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}

	return users, nil
}

// UpdateUser replaces the name and email of an existing user.
func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	res, err := r.usersColl().UpdateOne(ctx,
		bson.M{"_id": uuidToBinary(user.ID)},
		bson.M{"$set": bson.M{"user": user.User, "email": user.Email}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", classify(err))
	}

	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser removes a user by ID.
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := r.usersColl().DeleteOne(ctx, bson.M{"_id": uuidToBinary(id)})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", classify(err))
	}

	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}
