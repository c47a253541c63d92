// Package wallet orchestrates glimmer currency mutations over the
// player aggregate: store purchases, spends, grants and refunds.
package wallet

import (
	"context"

	"github.com/quailworks/quail-api/internal/iap"
	"github.com/quailworks/quail-api/internal/ledger"
	"github.com/quailworks/quail-api/internal/orchestrators/entitlement"
)

//go:generate mockgen -destination=mock/mock_service.go -package=walletmock github.com/quailworks/quail-api/internal/orchestrators/wallet Service

// Result tags the expected business outcomes of a wallet operation.
// These are recoverable results the caller branches on, not errors.
type Result string

const (
	// ResultSuccess means the mutation was applied.
	ResultSuccess Result = "SUCCESS"
	// ResultDuplicateTransaction means the receipt was already consumed.
	ResultDuplicateTransaction Result = "DUPLICATE_TRANSACTION"
	// ResultInsufficientBalance means the wallet could not cover the
	// amount. On refunds this is flagged for manual review.
	ResultInsufficientBalance Result = "INSUFFICIENT_BALANCE"
	// ResultUnknownProduct means the product id is not in the catalog.
	ResultUnknownProduct Result = "UNKNOWN_PRODUCT"
	// ResultEntitlementOnly means a zero-amount product resolved to an
	// entitlement grant and the wallet was not touched.
	ResultEntitlementOnly Result = "ENTITLEMENT_ONLY"
	// ResultTransactionNotFound means the referenced transaction does
	// not exist in the ledger.
	ResultTransactionNotFound Result = "TRANSACTION_NOT_FOUND"
	// ResultAlreadyRefunded means the transaction was refunded before.
	ResultAlreadyRefunded Result = "ALREADY_REFUNDED"
	// ResultNotRefundable means the transaction type does not support
	// refunds.
	ResultNotRefundable Result = "NOT_REFUNDABLE"
)

// Service handles glimmer wallet mutations
type Service interface {
	// PurchaseGlimmer applies a verified store purchase to the wallet.
	// Zero-amount products are entitlement-only and bypass the wallet.
	PurchaseGlimmer(ctx context.Context, input *PurchaseGlimmerInput) (*PurchaseGlimmerOutput, error)

	// SpendGlimmer debits the wallet, refusing overdrafts.
	SpendGlimmer(ctx context.Context, input *SpendGlimmerInput) (*SpendGlimmerOutput, error)

	// GrantGlimmer credits glimmer outside the store flow, classifying
	// the transaction type from the grant reason.
	GrantGlimmer(ctx context.Context, input *GrantGlimmerInput) (*GrantGlimmerOutput, error)

	// RefundPurchase reverses a prior IAP purchase.
	RefundPurchase(ctx context.Context, input *RefundPurchaseInput) (*RefundPurchaseOutput, error)

	// GetBalance reads the current wallet snapshot.
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)
}

// PurchaseGlimmerInput carries a store receipt for a product
type PurchaseGlimmerInput struct {
	PlayerID  string
	AccountID string
	ProductID string
	Receipt   iap.Receipt
}

// PurchaseGlimmerOutput reports the purchase outcome. Wallet is the
// post-mutation snapshot; EntitlementResult is set only for
// ResultEntitlementOnly.
type PurchaseGlimmerOutput struct {
	Result            Result
	Wallet            ledger.Wallet
	EntitlementResult entitlement.GrantResult
}

// SpendGlimmerInput debits the wallet for an in-game sink
type SpendGlimmerInput struct {
	PlayerID string
	Amount   int64
	Type     ledger.TransactionType
}

// SpendGlimmerOutput reports the spend outcome
type SpendGlimmerOutput struct {
	Result        Result
	Wallet        ledger.Wallet
	TransactionID string
}

// GrantGlimmerInput credits glimmer for a stated reason
type GrantGlimmerInput struct {
	PlayerID string
	Amount   int64
	Reason   string
}

// GrantGlimmerOutput reports the applied grant
type GrantGlimmerOutput struct {
	Result Result
	Type   ledger.TransactionType
	Wallet ledger.Wallet
}

// RefundPurchaseInput references the original purchase transaction
type RefundPurchaseInput struct {
	PlayerID              string
	OriginalTransactionID string
}

// RefundPurchaseOutput reports the refund outcome
type RefundPurchaseOutput struct {
	Result Result
	Wallet ledger.Wallet
}

// GetBalanceInput identifies the player wallet to read
type GetBalanceInput struct {
	PlayerID string
}

// GetBalanceOutput is the current wallet snapshot
type GetBalanceOutput struct {
	Balance int64
	Wallet  ledger.Wallet
}
