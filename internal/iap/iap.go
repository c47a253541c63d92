// Package iap abstracts platform billing. The core never talks to a
// store SDK directly; purchase completions and restores arrive
// through this interface and its response union.
package iap

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_client.go -package=iapmock github.com/quailworks/quail-api/internal/iap Client

// ResponseKind tags the closed purchase response union
type ResponseKind string

// Purchase response kinds
const (
	ResponseSuccess      ResponseKind = "SUCCESS"
	ResponseCancelled    ResponseKind = "CANCELLED"
	ResponseError        ResponseKind = "ERROR"
	ResponseAlreadyOwned ResponseKind = "ALREADY_OWNED"
	ResponseNetworkError ResponseKind = "NETWORK_ERROR"
)

// Receipt is the platform's proof of purchase
type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	ReceiptData   string    `json:"receipt_data"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

// PurchaseResponse is the outcome of a purchase flow. Receipt is set
// only for ResponseSuccess.
type PurchaseResponse struct {
	Kind    ResponseKind `json:"kind"`
	Receipt *Receipt     `json:"receipt,omitempty"`
	Message string       `json:"message,omitempty"`
}

// StoreProduct is the store-front listing for a product id
type StoreProduct struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// Client is the platform billing collaborator
type Client interface {
	Initialize(ctx context.Context) error
	QueryProducts(ctx context.Context, ids []string) (map[string]StoreProduct, error)
	LaunchPurchaseFlow(ctx context.Context, productID string) (*PurchaseResponse, error)
	VerifyPurchase(ctx context.Context, receipt Receipt) (bool, error)
	RestorePurchases(ctx context.Context) ([]Receipt, error)
	ConsumePurchase(ctx context.Context, purchaseToken string) (bool, error)
	AcknowledgePurchase(ctx context.Context, purchaseToken string) (bool, error)
}
