package nest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/ledger"
	"github.com/quailworks/quail-api/internal/nest"
	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/pkg/idgen"
	playerrepo "github.com/quailworks/quail-api/internal/repositories/player"
)

// Config holds the dependencies for the nest orchestrator
type Config struct {
	PlayerRepo  playerrepo.Repository
	Upgrades    catalogs.NestUpgradeCatalog
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.Upgrades == nil {
		vb.RequiredField("Upgrades")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the nest Service interface
type Orchestrator struct {
	mu sync.Mutex

	playerRepo playerrepo.Repository
	upgrades   catalogs.NestUpgradeCatalog
	clock      clock.Clock
	idGen      idgen.Generator
}

// New creates a new nest orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		playerRepo: cfg.PlayerRepo,
		upgrades:   cfg.Upgrades,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// nextTierDef resolves the catalog definition for the tier after the
// upgrade's current one. Returns nil when unowned, at max tier, or
// the catalog has no entry.
func (o *Orchestrator) nextTierDef(c nest.Customization, typ nest.UpgradeType) (*nest.TierDef, nest.Tier) {
	current, owned := c.CurrentTier(typ)
	if !owned {
		return nil, ""
	}
	next, ok := current.Next()
	if !ok {
		return nil, ""
	}
	def, ok := o.upgrades.TierDef(typ, next)
	if !ok {
		return nil, next
	}
	return &def, next
}

// UpgradeFunctionalTier advances an upgrade one tier
func (o *Orchestrator) UpgradeFunctionalTier(ctx context.Context, input *UpgradeFunctionalTierInput) (*UpgradeFunctionalTierOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("type", string(input.Type), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	def, _ := o.nextTierDef(player.NestCustomization, input.Type)
	res := player.NestResources()
	code := player.NestCustomization.CheckUpgrade(input.Type, def, player.ArchetypeProgress.Level, res)
	if code != nest.UpgradeOK {
		output := &UpgradeFunctionalTierOutput{Code: code}
		if def != nil {
			switch code {
			case nest.UpgradeInsufficientSeeds, nest.UpgradeInsufficientGlimmer, nest.UpgradeInsufficientIngredients:
				output.Shortage = nest.ComputeShortage(*def, res)
			}
		}
		return output, nil
	}

	now := o.clock.Now()
	next := player.Clone()

	if def.SeedCost > 0 {
		inv, ok := next.Inventory.Remove(entities.SeedItemID, def.SeedCost)
		if !ok {
			return nil, errors.Internalf("seed deduction failed for player %s", input.PlayerID)
		}
		next.Inventory = inv
	}
	if def.GlimmerCost > 0 {
		wallet, ok := next.Wallet.Spend(def.GlimmerCost, ledger.TransactionNestUpgrade, now, o.idGen.Generate())
		if !ok {
			return nil, errors.Internalf("glimmer deduction failed for player %s", input.PlayerID)
		}
		next.Wallet = wallet
	}
	if len(def.IngredientCosts) > 0 {
		ingredients, ok := next.IngredientInventory.RemoveAll(def.IngredientCosts)
		if !ok {
			return nil, errors.Internalf("ingredient deduction failed for player %s", input.PlayerID)
		}
		next.IngredientInventory = ingredients
	}

	upgraded, ok := next.NestCustomization.ApplyUpgrade(input.Type)
	if !ok {
		return nil, errors.Internalf("tier advance failed for player %s", input.PlayerID)
	}
	next.NestCustomization = upgraded
	next.ChoiceLog = next.ChoiceLog.Append("nest.upgrade", now, map[string]string{
		"type": string(input.Type),
		"tier": string(def.Tier),
	})

	if _, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("nest upgrade applied",
		"player_id", input.PlayerID,
		"type", input.Type,
		"tier", def.Tier,
	)

	return &UpgradeFunctionalTierOutput{Code: nest.UpgradeOK, NewTier: def.Tier}, nil
}

// CanAffordUpgradeTier projects the shortage for the next tier
func (o *Orchestrator) CanAffordUpgradeTier(ctx context.Context, input *CanAffordUpgradeTierInput) (*CanAffordUpgradeTierOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("type", string(input.Type), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	def, nextTier := o.nextTierDef(player.NestCustomization, input.Type)
	res := player.NestResources()
	code := player.NestCustomization.CheckUpgrade(input.Type, def, player.ArchetypeProgress.Level, res)

	output := &CanAffordUpgradeTierOutput{
		Code:       code,
		NextTier:   nextTier,
		Affordable: code == nest.UpgradeOK,
	}
	if def != nil {
		output.Shortage = nest.ComputeShortage(*def, res)
	}
	return output, nil
}

// PlaceCosmetic places an owned cosmetic in the nest
func (o *Orchestrator) PlaceCosmetic(ctx context.Context, input *PlaceCosmeticInput) (*PlaceCosmeticOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("cosmeticID", input.CosmeticID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	instanceID := o.idGen.Generate()
	placed, code := player.NestCustomization.PlaceCosmetic(instanceID, input.CosmeticID, input.X, input.Y)
	if code != nest.PlaceOK {
		return &PlaceCosmeticOutput{Code: code}, nil
	}

	next := player.Clone()
	next.NestCustomization = placed

	if _, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	return &PlaceCosmeticOutput{Code: nest.PlaceOK, InstanceID: instanceID}, nil
}

// RemoveCosmetic removes a placed cosmetic instance
func (o *Orchestrator) RemoveCosmetic(ctx context.Context, input *RemoveCosmeticInput) (*RemoveCosmeticOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("instanceID", input.InstanceID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	removed, ok := player.NestCustomization.RemoveCosmetic(input.InstanceID)
	if !ok {
		return &RemoveCosmeticOutput{Removed: false}, nil
	}

	next := player.Clone()
	next.NestCustomization = removed

	if _, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	return &RemoveCosmeticOutput{Removed: true}, nil
}

// SetUpgradeActive toggles an owned upgrade's active flag
func (o *Orchestrator) SetUpgradeActive(ctx context.Context, input *SetUpgradeActiveInput) (*SetUpgradeActiveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("type", string(input.Type), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	toggled, ok := player.NestCustomization.SetUpgradeActive(input.Type, input.Active)
	if !ok {
		return &SetUpgradeActiveOutput{Updated: false}, nil
	}

	next := player.Clone()
	next.NestCustomization = toggled

	if _, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	return &SetUpgradeActiveOutput{Updated: true}, nil
}

// GetUpgradeBonus reads the active bonus magnitude for an upgrade
func (o *Orchestrator) GetUpgradeBonus(ctx context.Context, input *GetUpgradeBonusInput) (*GetUpgradeBonusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("type", string(input.Type), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	up, ok := player.NestCustomization.FunctionalUpgrades[input.Type]
	if !ok || !up.Active {
		return &GetUpgradeBonusOutput{}, nil
	}
	def, ok := o.upgrades.TierDef(input.Type, up.CurrentTier)
	if !ok {
		return &GetUpgradeBonusOutput{Tier: up.CurrentTier}, nil
	}

	return &GetUpgradeBonusOutput{
		Magnitude: def.BonusMagnitude,
		Tier:      up.CurrentTier,
	}, nil
}
