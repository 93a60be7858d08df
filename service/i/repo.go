package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// ModelRepo persists maze model definitions.
type ModelRepo interface {
	// Save inserts or replaces a model.
	Save(ctx context.Context, model *dmn.Model) error

	// ByID retrieves a model. Returns dmn.ErrNotFound when it does not exist.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Model, error)
}

// RunRepo persists completed filter runs.
type RunRepo interface {
	// Save inserts a run.
	Save(ctx context.Context, run *dmn.Run) error

	// ByID retrieves a run. Returns dmn.ErrNotFound when it does not exist.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
}
