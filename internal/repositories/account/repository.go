// Package account provides the interface for character account
// persistence.
package account

//go:generate mockgen -destination=mock/mock_repository.go -package=accountmock github.com/quailworks/quail-api/internal/repositories/account Repository

import (
	"context"

	"github.com/quailworks/quail-api/internal/entities"
)

// Repository defines the interface for character account persistence
type Repository interface {
	// Create stores a new account
	// Returns errors.AlreadyExists if an account with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an account by ID
	// Returns errors.NotFound if the account doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing account
	// Returns errors.NotFound if the account doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}

// CreateInput defines the input for creating an account
type CreateInput struct {
	Account *entities.CharacterAccount
}

// CreateOutput defines the output for creating an account
type CreateOutput struct {
	Account *entities.CharacterAccount
}

// GetInput defines the input for getting an account
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an account
type GetOutput struct {
	Account *entities.CharacterAccount
}

// UpdateInput defines the input for updating an account
type UpdateInput struct {
	Account *entities.CharacterAccount
}

// UpdateOutput defines the output for updating an account
type UpdateOutput struct {
	Account *entities.CharacterAccount
}
