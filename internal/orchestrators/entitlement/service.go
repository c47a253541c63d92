// Package entitlement manages non-consumable purchase entitlements on
// a character account, such as extra character slot unlocks.
package entitlement

import (
	"context"

	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/iap"
)

//go:generate mockgen -destination=mock/mock_service.go -package=entitlementmock github.com/quailworks/quail-api/internal/orchestrators/entitlement Service

// GrantResult tells the caller how a grant request resolved.
type GrantResult string

const (
	// GrantResultGranted means the entitlement was newly applied.
	GrantResultGranted GrantResult = "GRANTED"
	// GrantResultAlreadyOwned means the account already held the entitlement.
	GrantResultAlreadyOwned GrantResult = "ALREADY_OWNED"
)

// Service handles entitlement grants and restore-purchases flows.
type Service interface {
	// GrantCharacterSlot applies a character slot entitlement to an account.
	// Granting an entitlement the account already owns is a no-op.
	GrantCharacterSlot(ctx context.Context, input *GrantCharacterSlotInput) (*GrantCharacterSlotOutput, error)

	// RestoreFromReceipts replays a set of store receipts against the
	// account and grants any non-consumable entitlements not yet owned.
	RestoreFromReceipts(ctx context.Context, input *RestoreFromReceiptsInput) (*RestoreFromReceiptsOutput, error)
}

// GrantCharacterSlotInput requests an entitlement grant for an account.
type GrantCharacterSlotInput struct {
	AccountID     string
	EntitlementID string
	TransactionID string
}

// GrantCharacterSlotOutput reports the grant result and resulting capacity.
type GrantCharacterSlotOutput struct {
	Result   GrantResult
	Account  *entities.CharacterAccount
	MaxSlots int
}

// RestoreFromReceiptsInput carries receipts recovered from the store.
type RestoreFromReceiptsInput struct {
	AccountID string
	Receipts  []iap.Receipt
}

// RestoreFromReceiptsOutput lists only the entitlements granted by this
// restore pass. Receipts for consumables or unknown products are skipped.
type RestoreFromReceiptsOutput struct {
	NewlyGranted []string
	Account      *entities.CharacterAccount
}
