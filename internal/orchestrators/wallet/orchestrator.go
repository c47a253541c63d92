package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/quailworks/quail-api/internal/catalogs"
	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/ledger"
	"github.com/quailworks/quail-api/internal/orchestrators/entitlement"
	"github.com/quailworks/quail-api/internal/pkg/clock"
	"github.com/quailworks/quail-api/internal/pkg/idgen"
	playerrepo "github.com/quailworks/quail-api/internal/repositories/player"
)

// Config holds the dependencies for the wallet orchestrator
type Config struct {
	PlayerRepo   playerrepo.Repository
	Entitlements entitlement.Service
	Products     catalogs.ProductCatalog
	Clock        clock.Clock
	IDGenerator  idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.Entitlements == nil {
		vb.RequiredField("Entitlements")
	}
	if c.Products == nil {
		vb.RequiredField("Products")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the wallet Service interface. A single mutex
// serializes read-modify-write cycles over the player aggregate.
type Orchestrator struct {
	mu sync.Mutex

	playerRepo   playerrepo.Repository
	entitlements entitlement.Service
	products     catalogs.ProductCatalog
	clock        clock.Clock
	idGen        idgen.Generator
}

// New creates a new wallet orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		playerRepo:   cfg.PlayerRepo,
		entitlements: cfg.Entitlements,
		products:     cfg.Products,
		clock:        cfg.Clock,
		idGen:        cfg.IDGenerator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// PurchaseGlimmer applies a verified store purchase to the wallet
func (o *Orchestrator) PurchaseGlimmer(ctx context.Context, input *PurchaseGlimmerInput) (*PurchaseGlimmerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("productID", input.ProductID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	start := time.Now()
	o.mu.Lock()
	defer o.mu.Unlock()

	product, ok := o.products.Product(input.ProductID)
	if !ok {
		return &PurchaseGlimmerOutput{Result: ResultUnknownProduct}, nil
	}
	if product.GlimmerAmount < 0 {
		return nil, errors.InvalidArgumentf("product %s has negative glimmer amount %d", product.ID, product.GlimmerAmount)
	}

	// Zero-amount products carry no currency, only an entitlement.
	if product.GlimmerAmount == 0 {
		grantOut, err := o.entitlements.GrantCharacterSlot(ctx, &entitlement.GrantCharacterSlotInput{
			AccountID:     input.AccountID,
			EntitlementID: product.EntitlementID,
			TransactionID: input.Receipt.TransactionID,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to grant entitlement for product %s", product.ID)
		}
		return &PurchaseGlimmerOutput{
			Result:            ResultEntitlementOnly,
			EntitlementResult: grantOut.Result,
		}, nil
	}

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	if player.Wallet.HasReceipt(input.Receipt.ReceiptData) {
		return &PurchaseGlimmerOutput{
			Result: ResultDuplicateTransaction,
			Wallet: player.Wallet,
		}, nil
	}

	now := o.clock.Now()
	txID := input.Receipt.TransactionID
	if txID == "" {
		txID = o.idGen.Generate()
	}

	next := player.Clone()
	next.Wallet, err = next.Wallet.Add(product.GlimmerAmount, ledger.TransactionIAPPurchase, now, txID, &ledger.TxDetails{
		ReceiptData: input.Receipt.ReceiptData,
		ProductID:   product.ID,
	})
	if err != nil {
		return nil, err
	}
	next.ChoiceLog = next.ChoiceLog.Append("wallet.purchase", now, map[string]string{
		"product_id":     product.ID,
		"transaction_id": txID,
	})

	updateOut, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("glimmer purchase applied",
		"player_id", input.PlayerID,
		"product_id", product.ID,
		"amount", product.GlimmerAmount,
		"balance", updateOut.Player.Wallet.Balance,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &PurchaseGlimmerOutput{
		Result: ResultSuccess,
		Wallet: updateOut.Player.Wallet,
	}, nil
}

// SpendGlimmer debits the wallet for an in-game sink
func (o *Orchestrator) SpendGlimmer(ctx context.Context, input *SpendGlimmerInput) (*SpendGlimmerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("playerID is required")
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgumentf("spend amount must be positive, got %d", input.Amount)
	}
	if input.Type == "" {
		return nil, errors.InvalidArgument("transaction type is required")
	}

	start := time.Now()
	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	now := o.clock.Now()
	txID := fmt.Sprintf("spend_%d_%s", now.UnixMilli(), strings.ToLower(string(input.Type)))

	spent, ok := player.Wallet.Spend(input.Amount, input.Type, now, txID)
	if !ok {
		return &SpendGlimmerOutput{
			Result: ResultInsufficientBalance,
			Wallet: player.Wallet,
		}, nil
	}

	next := player.Clone()
	next.Wallet = spent
	next.ChoiceLog = next.ChoiceLog.Append("wallet.spend", now, map[string]string{
		"type":           string(input.Type),
		"transaction_id": txID,
	})

	updateOut, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("glimmer spent",
		"player_id", input.PlayerID,
		"amount", input.Amount,
		"type", input.Type,
		"balance", updateOut.Player.Wallet.Balance,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &SpendGlimmerOutput{
		Result:        ResultSuccess,
		Wallet:        updateOut.Player.Wallet,
		TransactionID: txID,
	}, nil
}

// GrantGlimmer credits glimmer outside the store flow
func (o *Orchestrator) GrantGlimmer(ctx context.Context, input *GrantGlimmerInput) (*GrantGlimmerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("playerID is required")
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgumentf("grant amount must be positive, got %d", input.Amount)
	}

	start := time.Now()
	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	now := o.clock.Now()
	txID := o.idGen.Generate()
	txType := classifyGrantReason(input.Reason)

	next := player.Clone()
	next.Wallet, err = next.Wallet.Add(input.Amount, txType, now, txID, &ledger.TxDetails{
		Metadata: map[string]string{"reason": input.Reason},
	})
	if err != nil {
		return nil, err
	}
	next.ChoiceLog = next.ChoiceLog.Append("wallet.grant", now, map[string]string{
		"type":   string(txType),
		"reason": input.Reason,
	})

	updateOut, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("glimmer granted",
		"player_id", input.PlayerID,
		"amount", input.Amount,
		"type", txType,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &GrantGlimmerOutput{
		Result: ResultSuccess,
		Type:   txType,
		Wallet: updateOut.Player.Wallet,
	}, nil
}

// RefundPurchase reverses a prior IAP purchase transaction
func (o *Orchestrator) RefundPurchase(ctx context.Context, input *RefundPurchaseInput) (*RefundPurchaseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("originalTransactionID", input.OriginalTransactionID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	start := time.Now()
	o.mu.Lock()
	defer o.mu.Unlock()

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}
	player := getOut.Player

	now := o.clock.Now()
	refundID := o.idGen.Generate()

	refunded, code := player.Wallet.Refund(input.OriginalTransactionID, refundID, now)
	if code != ledger.RefundOK {
		result := refundCodeResult(code)
		if code == ledger.RefundInsufficientBalance {
			// The credited glimmer was already spent. Surface for
			// manual review instead of driving the balance negative.
			slog.Warn("refund requires manual review",
				"player_id", input.PlayerID,
				"transaction_id", input.OriginalTransactionID,
				"balance", player.Wallet.Balance,
			)
		}
		return &RefundPurchaseOutput{Result: result, Wallet: player.Wallet}, nil
	}

	next := player.Clone()
	next.Wallet = refunded
	next.ChoiceLog = next.ChoiceLog.Append("wallet.refund", now, map[string]string{
		"original_transaction_id": input.OriginalTransactionID,
		"refund_transaction_id":   refundID,
	})

	updateOut, err := o.playerRepo.Update(ctx, playerrepo.UpdateInput{Player: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update player %s", input.PlayerID)
	}

	slog.Info("purchase refunded",
		"player_id", input.PlayerID,
		"transaction_id", input.OriginalTransactionID,
		"balance", updateOut.Player.Wallet.Balance,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &RefundPurchaseOutput{
		Result: ResultSuccess,
		Wallet: updateOut.Player.Wallet,
	}, nil
}

// GetBalance reads the current wallet snapshot
func (o *Orchestrator) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("playerID is required")
	}

	getOut, err := o.playerRepo.Get(ctx, playerrepo.GetInput{ID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get player %s", input.PlayerID)
	}

	return &GetBalanceOutput{
		Balance: getOut.Player.Wallet.Balance,
		Wallet:  getOut.Player.Wallet,
	}, nil
}

// classifyGrantReason maps a free-form grant reason to a transaction
// type. promo-prefixed reasons are promotional; compensation, bug and
// downtime reasons are compensation; everything else is an admin grant.
func classifyGrantReason(reason string) ledger.TransactionType {
	lower := strings.ToLower(reason)
	switch {
	case strings.HasPrefix(lower, "promo"):
		return ledger.TransactionPromotional
	case strings.Contains(lower, "compensation"),
		strings.Contains(lower, "bug"),
		strings.Contains(lower, "downtime"):
		return ledger.TransactionCompensation
	default:
		return ledger.TransactionAdminGrant
	}
}

func refundCodeResult(code ledger.RefundCode) Result {
	switch code {
	case ledger.RefundTransactionNotFound:
		return ResultTransactionNotFound
	case ledger.RefundAlreadyRefunded:
		return ResultAlreadyRefunded
	case ledger.RefundNotRefundable:
		return ResultNotRefundable
	case ledger.RefundInsufficientBalance:
		return ResultInsufficientBalance
	default:
		return ResultSuccess
	}
}
