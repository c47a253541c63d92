// Package nest orchestrates nest customization over the player
// aggregate: cosmetic placement and functional upgrade tiers with
// multi-resource affordability checks.
package nest

import (
	"context"

	"github.com/quailworks/quail-api/internal/nest"
)

//go:generate mockgen -destination=mock/mock_service.go -package=nestorcmock github.com/quailworks/quail-api/internal/orchestrators/nest Service

// Service handles nest customization and upgrades
type Service interface {
	// UpgradeFunctionalTier advances an upgrade one tier, deducting
	// seeds, glimmer and ingredients in one atomic save.
	UpgradeFunctionalTier(ctx context.Context, input *UpgradeFunctionalTierInput) (*UpgradeFunctionalTierOutput, error)

	// CanAffordUpgradeTier projects the resource shortage for the next
	// tier without mutating anything.
	CanAffordUpgradeTier(ctx context.Context, input *CanAffordUpgradeTierInput) (*CanAffordUpgradeTierOutput, error)

	// PlaceCosmetic places an owned cosmetic in the nest.
	PlaceCosmetic(ctx context.Context, input *PlaceCosmeticInput) (*PlaceCosmeticOutput, error)

	// RemoveCosmetic removes a placed cosmetic instance.
	RemoveCosmetic(ctx context.Context, input *RemoveCosmeticInput) (*RemoveCosmeticOutput, error)

	// SetUpgradeActive toggles an owned upgrade's active flag.
	SetUpgradeActive(ctx context.Context, input *SetUpgradeActiveInput) (*SetUpgradeActiveOutput, error)

	// GetUpgradeBonus reads the bonus magnitude of an upgrade's
	// current tier. Inactive or unowned upgrades contribute zero.
	GetUpgradeBonus(ctx context.Context, input *GetUpgradeBonusInput) (*GetUpgradeBonusOutput, error)
}

// UpgradeFunctionalTierInput identifies the upgrade to advance
type UpgradeFunctionalTierInput struct {
	PlayerID string
	Type     nest.UpgradeType
}

// UpgradeFunctionalTierOutput reports the outcome. Shortage is
// populated for the insufficient-resource codes.
type UpgradeFunctionalTierOutput struct {
	Code     nest.UpgradeCode
	NewTier  nest.Tier
	Shortage nest.Shortage
}

// CanAffordUpgradeTierInput identifies the upgrade to project
type CanAffordUpgradeTierInput struct {
	PlayerID string
	Type     nest.UpgradeType
}

// CanAffordUpgradeTierOutput is the read-only affordability projection
type CanAffordUpgradeTierOutput struct {
	Code       nest.UpgradeCode
	NextTier   nest.Tier
	Affordable bool
	Shortage   nest.Shortage
}

// PlaceCosmeticInput positions an owned cosmetic
type PlaceCosmeticInput struct {
	PlayerID   string
	CosmeticID string
	X          float64
	Y          float64
}

// PlaceCosmeticOutput reports the placement outcome
type PlaceCosmeticOutput struct {
	Code       nest.PlaceCode
	InstanceID string
}

// RemoveCosmeticInput identifies the placed instance to remove
type RemoveCosmeticInput struct {
	PlayerID   string
	InstanceID string
}

// RemoveCosmeticOutput reports whether the instance existed
type RemoveCosmeticOutput struct {
	Removed bool
}

// SetUpgradeActiveInput toggles an upgrade
type SetUpgradeActiveInput struct {
	PlayerID string
	Type     nest.UpgradeType
	Active   bool
}

// SetUpgradeActiveOutput reports whether the upgrade was owned
type SetUpgradeActiveOutput struct {
	Updated bool
}

// GetUpgradeBonusInput identifies the upgrade to read
type GetUpgradeBonusInput struct {
	PlayerID string
	Type     nest.UpgradeType
}

// GetUpgradeBonusOutput carries the active bonus magnitude
type GetUpgradeBonusOutput struct {
	Magnitude float64
	Tier      nest.Tier
}
