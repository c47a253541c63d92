// Package account orchestrates character slot lifecycle: creation,
// soft deletion, restore, switching and slot capacity purchases.
package account

import (
	"context"

	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/progression"
)

//go:generate mockgen -destination=mock/mock_service.go -package=accountorcmock github.com/quailworks/quail-api/internal/orchestrators/account Service

// Result tags the expected business outcomes of a slot operation
type Result string

const (
	// ResultSuccess means the operation was applied.
	ResultSuccess Result = "SUCCESS"
	// ResultSlotLimitReached means the account is at slot capacity.
	// Soft-deleted slots still count toward the limit.
	ResultSlotLimitReached Result = "SLOT_LIMIT_REACHED"
	// ResultSlotNotFound means no slot has the given id.
	ResultSlotNotFound Result = "SLOT_NOT_FOUND"
	// ResultSlotDeleted means the slot exists but is soft-deleted.
	ResultSlotDeleted Result = "SLOT_DELETED"
	// ResultSlotNotDeleted means restore targeted a live slot.
	ResultSlotNotDeleted Result = "SLOT_NOT_DELETED"
)

// Service handles character account and slot management
type Service interface {
	// CreateCharacter creates a fresh player aggregate and its account
	// slot, making the new slot current. An account that does not
	// exist yet is created on first use.
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// DeleteCharacter soft-deletes a slot. If it was the current slot,
	// the most recently played remaining slot becomes current.
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// RestoreCharacter undeletes a soft-deleted slot.
	RestoreCharacter(ctx context.Context, input *RestoreCharacterInput) (*RestoreCharacterOutput, error)

	// SwitchCharacter makes an active slot current.
	SwitchCharacter(ctx context.Context, input *SwitchCharacterInput) (*SwitchCharacterOutput, error)

	// ListCharacters returns active slots, most recently played first.
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// UpdateCharacterMetadata accumulates playtime and refreshes the
	// denormalized display stats on a slot.
	UpdateCharacterMetadata(ctx context.Context, input *UpdateCharacterMetadataInput) (*UpdateCharacterMetadataOutput, error)

	// PurchaseExtraSlots raises the slot capacity.
	PurchaseExtraSlots(ctx context.Context, input *PurchaseExtraSlotsInput) (*PurchaseExtraSlotsOutput, error)
}

// CreateCharacterInput names the new character
type CreateCharacterInput struct {
	AccountID string
	Name      string
	Archetype progression.Archetype
}

// CreateCharacterOutput reports the created slot and player
type CreateCharacterOutput struct {
	Result Result
	Slot   entities.CharacterSlot
	Player *entities.Player
}

// DeleteCharacterInput identifies the slot to soft-delete
type DeleteCharacterInput struct {
	AccountID string
	SlotID    string
}

// DeleteCharacterOutput reports the resulting current slot
type DeleteCharacterOutput struct {
	Result        Result
	CurrentSlotID string
}

// RestoreCharacterInput identifies the slot to undelete
type RestoreCharacterInput struct {
	AccountID string
	SlotID    string
}

// RestoreCharacterOutput reports the restore outcome
type RestoreCharacterOutput struct {
	Result Result
	Slot   entities.CharacterSlot
}

// SwitchCharacterInput identifies the slot to make current
type SwitchCharacterInput struct {
	AccountID string
	SlotID    string
}

// SwitchCharacterOutput reports the switch outcome
type SwitchCharacterOutput struct {
	Result Result
	Slot   entities.CharacterSlot
}

// ListCharactersInput identifies the account to list
type ListCharactersInput struct {
	AccountID string
}

// ListCharactersOutput lists active slots ordered by LastPlayedAt
// descending
type ListCharactersOutput struct {
	Slots         []entities.CharacterSlot
	CurrentSlotID string
	MaxSlots      int
}

// UpdateCharacterMetadataInput carries a session's playtime delta and
// fresh display stats
type UpdateCharacterMetadataInput struct {
	AccountID                 string
	SlotID                    string
	DisplayStats              entities.DisplayStats
	AdditionalPlaytimeSeconds int64
}

// UpdateCharacterMetadataOutput reports the updated slot
type UpdateCharacterMetadataOutput struct {
	Result Result
	Slot   entities.CharacterSlot
}

// PurchaseExtraSlotsInput raises slot capacity by Count
type PurchaseExtraSlotsInput struct {
	AccountID string
	Count     int
}

// PurchaseExtraSlotsOutput reports the new capacity
type PurchaseExtraSlotsOutput struct {
	MaxSlots int
}
