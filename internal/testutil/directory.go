package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/petpal/petpal/internal/model"
	"github.com/petpal/petpal/internal/repository"
)

// MemoryDirectory is an in-memory users and pets store that reports the same
// errors as the MongoDB repository.
type MemoryDirectory struct {
	mu    sync.Mutex
	users []*model.User
	pets  []*model.Pet

	// Err, when set, is returned by every operation.
	Err error
	// ListCalls counts ListUsers calls.
	ListCalls int
}

// NewMemoryDirectory returns an empty directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{}
}

// Ping reports Err, standing in for a store health check.
func (d *MemoryDirectory) Ping(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Err
}

// CreateUser stores a copy of user.
func (d *MemoryDirectory) CreateUser(_ context.Context, user *model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	u := *user
	d.users = append(d.users, &u)
	return nil
}

// GetUserByID returns a copy of the user with id.
func (d *MemoryDirectory) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	for _, u := range d.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// ListUsers returns copies of every user in insertion order.
func (d *MemoryDirectory) ListUsers(context.Context) ([]*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ListCalls++
	if d.Err != nil {
		return nil, d.Err
	}
	out := make([]*model.User, 0, len(d.users))
	for _, u := range d.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

// UpdateUser overwrites name and email.
func (d *MemoryDirectory) UpdateUser(_ context.Context, user *model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	for _, u := range d.users {
		if u.ID == user.ID {
			u.User = user.User
			u.Email = user.Email
			return nil
		}
	}
	return repository.ErrUserNotFound
}

// DeleteUser removes the user with id.
func (d *MemoryDirectory) DeleteUser(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	for i, u := range d.users {
		if u.ID == id {
			d.users = append(d.users[:i], d.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

// CreatePet stores a copy of pet.
func (d *MemoryDirectory) CreatePet(_ context.Context, pet *model.Pet) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	p := *pet
	d.pets = append(d.pets, &p)
	return nil
}

// ListPetsByUser returns copies of the pets owned by userID.
func (d *MemoryDirectory) ListPetsByUser(_ context.Context, userID uuid.UUID) ([]*model.Pet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	var out []*model.Pet
	for _, p := range d.pets {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

// DeletePet removes the pet with id.
func (d *MemoryDirectory) DeletePet(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	for i, p := range d.pets {
		if p.ID == id {
			d.pets = append(d.pets[:i], d.pets[i+1:]...)
			return nil
		}
	}
	return repository.ErrPetNotFound
}
