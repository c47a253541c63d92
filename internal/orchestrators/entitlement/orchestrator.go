package entitlement

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/errors"
	accountrepo "github.com/quailworks/quail-api/internal/repositories/account"
)

// Config holds the dependencies for the entitlement orchestrator
type Config struct {
	AccountRepo accountrepo.Repository
	Products    catalogs.ProductCatalog
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AccountRepo == nil {
		vb.RequiredField("AccountRepo")
	}
	if c.Products == nil {
		vb.RequiredField("Products")
	}

	return vb.Build()
}

// Orchestrator implements the entitlement Service interface. The mutex
// serializes grant/restore read-modify-write cycles so concurrent
// purchase completions cannot overwrite each other's grants.
type Orchestrator struct {
	mu sync.Mutex

	accountRepo accountrepo.Repository
	products    catalogs.ProductCatalog
}

// New creates a new entitlement orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		accountRepo: cfg.AccountRepo,
		products:    cfg.Products,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// GrantCharacterSlot applies a character slot entitlement to an account
func (o *Orchestrator) GrantCharacterSlot(ctx context.Context, input *GrantCharacterSlotInput) (*GrantCharacterSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("accountID", input.AccountID, vb)
	errors.ValidateRequired("entitlementID", input.EntitlementID, vb)
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

	next, granted := acct.GrantEntitlement(input.EntitlementID)
	if !granted {
		return &GrantCharacterSlotOutput{
			Result:   GrantResultAlreadyOwned,
			Account:  acct,
			MaxSlots: acct.MaxSlots(),
		}, nil
	}

	updateOut, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	slog.Info("granted character slot entitlement",
		"account_id", input.AccountID,
		"entitlement_id", input.EntitlementID,
		"transaction_id", input.TransactionID,
		"max_slots", updateOut.Account.MaxSlots(),
	)

	return &GrantCharacterSlotOutput{
		Result:   GrantResultGranted,
		Account:  updateOut.Account,
		MaxSlots: updateOut.Account.MaxSlots(),
	}, nil
}

// RestoreFromReceipts replays store receipts and grants missing
// non-consumable entitlements
func (o *Orchestrator) RestoreFromReceipts(ctx context.Context, input *RestoreFromReceiptsInput) (*RestoreFromReceiptsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.AccountID == "" {
		return nil, errors.InvalidArgument("accountID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.accountRepo.Get(ctx, accountrepo.GetInput{ID: input.AccountID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account %s", input.AccountID)
	}
	acct := getOut.Account

	var newlyGranted []string
	for _, receipt := range input.Receipts {
		product, ok := o.products.Product(receipt.ProductID)
		if !ok {
			slog.Warn("skipping receipt for unknown product",
				"product_id", receipt.ProductID,
				"transaction_id", receipt.TransactionID,
			)
			continue
		}
		// Consumables are re-deliverable and never restored as
		// entitlements.
		if product.Consumable || product.EntitlementID == "" {
			continue
		}

		next, granted := acct.GrantEntitlement(product.EntitlementID)
		if granted {
			acct = next
			newlyGranted = append(newlyGranted, product.EntitlementID)
		}
	}

	if len(newlyGranted) == 0 {
		return &RestoreFromReceiptsOutput{Account: acct}, nil
	}
	sort.Strings(newlyGranted)

	updateOut, err := o.accountRepo.Update(ctx, accountrepo.UpdateInput{Account: acct})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update account %s", input.AccountID)
	}

	slog.Info("restored entitlements from receipts",
		"account_id", input.AccountID,
		"receipts", len(input.Receipts),
		"newly_granted", len(newlyGranted),
	)

	return &RestoreFromReceiptsOutput{
		NewlyGranted: newlyGranted,
		Account:      updateOut.Account,
	}, nil
}
