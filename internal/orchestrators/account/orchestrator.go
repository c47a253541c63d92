package account

import (
	"context"
	"log/slog"
	"sync"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/entities"
	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/pkg/idgen"
	"github.com/quailworks/quail-api/internal/progression"
	accountrepo "github.com/quailworks/quail-api/internal/repositories/account"
	playerrepo "github.com/quailworks/quail-api/internal/repositories/player"
)

// Config holds the dependencies for the account orchestrator
type Config struct {
	AccountRepo accountrepo.Repository
	PlayerRepo  playerrepo.Repository
	Talents     catalogs.TalentCatalog
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AccountRepo == nil {
		vb.RequiredField("AccountRepo")
	}
	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.Talents == nil {
		vb.RequiredField("Talents")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the account Service interface
type Orchestrator struct {
	mu sync.Mutex

	accountRepo accountrepo.Repository
	playerRepo  playerrepo.Repository
	talents     catalogs.TalentCatalog
	clock       clock.Clock
	idGen       idgen.Generator
}

// New creates a new account orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		accountRepo: cfg.AccountRepo,
		playerRepo:  cfg.PlayerRepo,
		talents:     cfg.Talents,
		clock:       cfg.Clock,
		idGen:       cfg.IDGenerator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// getOrCreateAccount loads the account, creating an empty one on
// first use.
func (o *Orchestrator) getOrCreateAccount(ctx context.Context, accountID string) (*entities.CharacterAccount, error) {
	getOut, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: accountID})
	if err == nil {
		return getOut.Account, nil
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrapf(err, "failed to get account %s", accountID)
	}

	createOut, err := o.accountRepo.Create(ctx, accountrepo.CreateInput{
		Account: entities.NewCharacterAccount(accountID),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create account %s", accountID)
	}
	slog.Info("created account on first use", "account_id", accountID)
	return createOut.Account, nil
}

// CreateCharacter creates a fresh player aggregate and its slot
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("accountID", input.AccountID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	acct, err := o.getOrCreateAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if !acct.CanCreateSlot() {
		return &CreateCharacterOutput{Result: ResultSlotLimitReached}, nil
	}

	now := o.clock.Now()
	player := entities.NewPlayer(o.idGen.Generate(), input.AccountID, now)

	if input.Archetype != "" {
		talents, ok := o.talents.TalentsFor(input.Archetype)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown archetype %s", input.Archetype)
		}
		tree := progression.NewTalentTree(string(input.Archetype), talents)
		progress, err := player.ArchetypeProgress.SelectArchetype(input.Archetype, tree)
		if err != nil {
			return nil, err
		}
		player.ArchetypeProgress = progress
	}

	createOut, err := o.playerRepo.Create(ctx, playerrepo.CreateInput{Player: player})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create player for account %s", input.AccountID)
	}
	player = createOut.Player

	slot := entities.CharacterSlot{
		ID:           player.ID,
		Name:         input.Name,
		Archetype:    string(input.Archetype),
		CreatedAt:    now,
		LastPlayedAt: now,
		DisplayStats: player.Snapshot(),
	}

	next, ok := acct.AddSlot(slot)
	if !ok {
		// Capacity was checked above; a failure here means the
		// aggregate changed underneath us.
		o.deleteOrphanPlayer(ctx, player.ID)
		return nil, errors.Internalf("failed to add slot for account %s", input.AccountID)
	}

	if _, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: next}); err != nil {
		o.deleteOrphanPlayer(ctx, player.ID)
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	slog.Info("created character",
		"account_id", input.AccountID,
		"player_id", player.ID,
		"archetype", input.Archetype,
	)

	return &CreateCharacterOutput{
		Result: ResultSuccess,
		Slot:   slot,
		Player: player,
	}, nil
}

// deleteOrphanPlayer compensates a player Create whose slot was never
// committed to the account. A failed delete only logs: the orphan is
// unreachable without a slot and the original error still surfaces.
func (o *Orchestrator) deleteOrphanPlayer(ctx context.Context, playerID string) {
	if _, err := o.playerRepo.Delete(ctx, playerrepo.DeleteInput{ID: playerID}); err != nil {
		slog.Warn("failed to delete orphaned player",
			"player_id", playerID,
			"error", err,
		)
	}
}

// DeleteCharacter soft-deletes a slot
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("accountID", input.AccountID, vb)
	errors.ValidateRequired("slotID", input.SlotID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", input.AccountID)
	}
	acct := getOut.Account

	slot, found := acct.Slot(input.SlotID)
	if !found {
		return &DeleteCharacterOutput{Result: ResultSlotNotFound}, nil
	}
	if slot.IsDeleted {
		return &DeleteCharacterOutput{Result: ResultSlotDeleted}, nil
	}

	next, _ := acct.SoftDeleteSlot(input.SlotID)
	updateOut, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	slog.Info("soft-deleted character slot",
		"account_id", input.AccountID,
		"slot_id", input.SlotID,
		"current_slot_id", updateOut.Account.CurrentSlotID,
	)

	return &DeleteCharacterOutput{
		Result:        ResultSuccess,
		CurrentSlotID: updateOut.Account.CurrentSlotID,
	}, nil
}

// RestoreCharacter undeletes a soft-deleted slot
func (o *Orchestrator) RestoreCharacter(ctx context.Context, input *RestoreCharacterInput) (*RestoreCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("accountID", input.AccountID, vb)
	errors.ValidateRequired("slotID", input.SlotID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", input.AccountID)
	}
	acct := getOut.Account

	slot, found := acct.Slot(input.SlotID)
	if !found {
		return &RestoreCharacterOutput{Result: ResultSlotNotFound}, nil
	}
	if !slot.IsDeleted {
		return &RestoreCharacterOutput{Result: ResultSlotNotDeleted}, nil
	}

	next, _ := acct.RestoreSlot(input.SlotID)
	if _, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	restored, _ := next.Slot(input.SlotID)
	return &RestoreCharacterOutput{Result: ResultSuccess, Slot: restored}, nil
}

// SwitchCharacter makes an active slot current
func (o *Orchestrator) SwitchCharacter(ctx context.Context, input *SwitchCharacterInput) (*SwitchCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("accountID", input.AccountID, vb)
	errors.ValidateRequired("slotID", input.SlotID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", input.AccountID)
	}
	acct := getOut.Account

	slot, found := acct.Slot(input.SlotID)
	if !found {
		return &SwitchCharacterOutput{Result: ResultSlotNotFound}, nil
	}
	if slot.IsDeleted {
		return &SwitchCharacterOutput{Result: ResultSlotDeleted}, nil
	}

	next, _ := acct.SwitchSlot(input.SlotID, o.clock.Now())
	if _, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	switched, _ := next.Slot(input.SlotID)
	return &SwitchCharacterOutput{Result: ResultSuccess, Slot: switched}, nil
}

// ListCharacters returns active slots, most recently played first
func (o *Orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("accountID is required")
	}

	getOut, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", input.AccountID)
	}
	acct := getOut.Account

	return &ListCharactersOutput{
		Slots:         acct.ActiveSlots(),
		CurrentSlotID: acct.CurrentSlotID,
		MaxSlots:      acct.MaxSlots(),
	}, nil
}

// UpdateCharacterMetadata accumulates playtime and refreshes display
// stats
func (o *Orchestrator) UpdateCharacterMetadata(ctx context.Context, input *UpdateCharacterMetadataInput) (*UpdateCharacterMetadataOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("accountID", input.AccountID, vb)
	errors.ValidateRequired("slotID", input.SlotID, vb)
	if input.AdditionalPlaytimeSeconds < 0 {
		vb.Field("additionalPlaytimeSeconds", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", input.AccountID)
	}
	acct := getOut.Account

	slot, found := acct.Slot(input.SlotID)
	if !found {
		return &UpdateCharacterMetadataOutput{Result: ResultSlotNotFound}, nil
	}
	if slot.IsDeleted {
		return &UpdateCharacterMetadataOutput{Result: ResultSlotDeleted}, nil
	}

	next, _ := acct.UpdateSlotMetadata(input.SlotID, input.DisplayStats, input.AdditionalPlaytimeSeconds)
	if _, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: next}); err != nil {
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	updated, _ := next.Slot(input.SlotID)
	return &UpdateCharacterMetadataOutput{Result: ResultSuccess, Slot: updated}, nil
}

// PurchaseExtraSlots raises slot capacity
func (o *Orchestrator) PurchaseExtraSlots(ctx context.Context, input *PurchaseExtraSlotsInput) (*PurchaseExtraSlotsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("accountID is required")
	}
	if input.Count <= 0 {
		return nil, errors.InvalidArgumentf("slot count must be positive, got %d", input.Count)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	acct, err := o.getOrCreateAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	next := acct.AddExtraSlots(input.Count)
	updateOut, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	slog.Info("purchased extra character slots",
		"account_id", input.AccountID,
		"count", input.Count,
		"max_slots", updateOut.Account.MaxSlots(),
	)

	return &PurchaseExtraSlotsOutput{MaxSlots: updateOut.Account.MaxSlots()}, nil
}
