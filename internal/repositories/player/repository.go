// Package player provides the interface for player aggregate
// persistence. The whole aggregate is the unit of save/load; there is
// no partial update.
package player

//go:generate mockgen -destination=mock/mock_repository.go -package=playermock github.com/quailworks/quail-api/internal/repositories/player Repository

import (
	"context"

	"github.com/quailworks/quail-api/internal/entities"
)

// Repository defines the interface for player persistence
type Repository interface {
	// Create stores a new player aggregate
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a player with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a player aggregate by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the player doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing player aggregate
	// Returns errors.NotFound if the player doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a player aggregate by ID
	// Returns errors.NotFound if the player doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByAccountID retrieves all player aggregates for an account
	ListByAccountID(ctx context.Context, input ListByAccountIDInput) (*ListByAccountIDOutput, error)
}

// CreateInput defines the input for creating a player
type CreateInput struct {
	Player *entities.Player
}

// CreateOutput defines the output for creating a player
type CreateOutput struct {
	Player *entities.Player
}

// GetInput defines the input for getting a player
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a player
type GetOutput struct {
	Player *entities.Player
}

// UpdateInput defines the input for updating a player
type UpdateInput struct {
	Player *entities.Player
}

// UpdateOutput defines the output for updating a player
type UpdateOutput struct {
	Player *entities.Player
}

// DeleteInput defines the input for deleting a player
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a player
type DeleteOutput struct{}

// ListByAccountIDInput defines the input for listing players by account
type ListByAccountIDInput struct {
	AccountID string
}

// ListByAccountIDOutput defines the output for listing players by account
type ListByAccountIDOutput struct {
	Players []*entities.Player
}
