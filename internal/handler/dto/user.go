// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/google/uuid"

	"github.com/petpal/petpal/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	User  string `json:"user" validate:"required,max=256"`
	Email string `json:"email" validate:"required,max=320"`
}

// UpdateUserRequest represents the request body for updating a user.
// UserID must repeat the ID from the path.
type UpdateUserRequest struct {
	UserID uuid.UUID `json:"user_id"`
	User   string    `json:"user" validate:"required,max=256"`
	Email  string    `json:"email" validate:"required,max=320"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	UserID uuid.UUID `json:"user_id"`
	User   string    `json:"user"`
	Email  string    `json:"email"`
}

// CreatePetRequest represents the request body for creating a pet.
type CreatePetRequest struct {
	Pet    string    `json:"pet" validate:"required,max=256"`
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// PetResponse represents a pet in API responses.
type PetResponse struct {
	PetID  uuid.UUID `json:"pet_id"`
	Pet    string    `json:"pet"`
	UserID uuid.UUID `json:"user_id"`
}

// DeleteResponse acknowledges a deletion.
type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{UserID: u.ID, User: u.User, Email: u.Email}
}

// ToUserListResponse converts User models to DTOs.
func ToUserListResponse(users []*model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// ToPetResponse converts a Pet model to PetResponse DTO.
func ToPetResponse(p *model.Pet) PetResponse {
	return PetResponse{PetID: p.ID, Pet: p.Pet, UserID: p.UserID}
}

// ToPetListResponse converts Pet models to DTOs.
func ToPetListResponse(pets []*model.Pet) []PetResponse {
	out := make([]PetResponse, 0, len(pets))
	for _, p := range pets {
		out = append(out, ToPetResponse(p))
	}
	return out
}
