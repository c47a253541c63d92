// Package ledger implements the Glimmer wallet as an immutable value
// with pure transition functions. Managers copy, transition, then
// publish; the wallet itself never mutates in place.
package ledger

import (
	"time"

	"github.com/quailworks/quail-api/internal/errors"
)

// TransactionType classifies a wallet transaction
type TransactionType string

// Transaction types
const (
	TransactionIAPPurchase     TransactionType = "IAP_PURCHASE"
	TransactionShopPurchase    TransactionType = "SHOP_PURCHASE"
	TransactionQuestReward     TransactionType = "QUEST_REWARD"
	TransactionDiscoveryReward TransactionType = "DISCOVERY_REWARD"
	TransactionNestUpgrade     TransactionType = "NEST_UPGRADE"
	TransactionPromotional     TransactionType = "PROMOTIONAL_GRANT"
	TransactionCompensation    TransactionType = "COMPENSATION"
	TransactionAdminGrant      TransactionType = "ADMIN_GRANT"
	TransactionRefund          TransactionType = "REFUND"
)

// Transaction is an immutable ledger record. Amount is signed: credits
// are positive, debits negative, so the balance is always the signed
// sum of the transaction list.
type Transaction struct {
	ID          string            `json:"id"`
	Amount      int64             `json:"amount"`
	Type        TransactionType   `json:"type"`
	Timestamp   time.Time         `json:"timestamp"`
	ReceiptData string            `json:"receipt_data,omitempty"`
	ProductID   string            `json:"product_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Refunded    bool              `json:"refunded,omitempty"`
}

// TxDetails carries optional receipt/product/metadata for a credit
type TxDetails struct {
	ReceiptData string
	ProductID   string
	Metadata    map[string]string
}

// Wallet is the premium-currency ledger. Zero value is a valid empty
// wallet.
type Wallet struct {
	Balance      int64         `json:"balance"`
	TotalEarned  int64         `json:"total_earned"`
	TotalSpent   int64         `json:"total_spent"`
	Transactions []Transaction `json:"transactions"`
}

// NewWallet returns an empty wallet
func NewWallet() Wallet {
	return Wallet{}
}

// RefundCode reports the outcome of a refund transition
type RefundCode string

// Refund outcomes
const (
	RefundOK                  RefundCode = "OK"
	RefundTransactionNotFound RefundCode = "TRANSACTION_NOT_FOUND"
	RefundAlreadyRefunded     RefundCode = "ALREADY_REFUNDED"
	RefundNotRefundable       RefundCode = "NOT_REFUNDABLE"
	RefundInsufficientBalance RefundCode = "INSUFFICIENT_BALANCE"
)

// Add credits the wallet and returns the new snapshot. A negative
// amount is caller misuse and returns an invalid argument error.
func (w Wallet) Add(amount int64, typ TransactionType, ts time.Time, id string, details *TxDetails) (Wallet, error) {
	if amount < 0 {
		return w, errors.InvalidArgumentf("cannot add negative amount %d", amount)
	}

	tx := Transaction{
		ID:        id,
		Amount:    amount,
		Type:      typ,
		Timestamp: ts,
	}
	if details != nil {
		tx.ReceiptData = details.ReceiptData
		tx.ProductID = details.ProductID
		tx.Metadata = details.Metadata
	}

	next := w.clone()
	next.Transactions = append(next.Transactions, tx)
	next.Balance += amount
	next.TotalEarned += amount
	return next, nil
}

// Spend debits the wallet. It returns the receiver unchanged and false
// when the balance cannot cover the amount. The balance is never
// clamped and never goes negative.
func (w Wallet) Spend(amount int64, typ TransactionType, ts time.Time, id string) (Wallet, bool) {
	if amount < 0 || amount > w.Balance {
		return w, false
	}

	next := w.clone()
	next.Transactions = append(next.Transactions, Transaction{
		ID:        id,
		Amount:    -amount,
		Type:      typ,
		Timestamp: ts,
	})
	next.Balance -= amount
	next.TotalSpent += amount
	return next, true
}

// Refund reverses an IAP purchase by debiting its original amount
// under a REFUND transaction and marking the original as refunded.
// RefundInsufficientBalance means the player already spent the
// credited Glimmer; the caller flags that case for manual review.
func (w Wallet) Refund(originalTxID, refundTxID string, ts time.Time) (Wallet, RefundCode) {
	idx := -1
	for i := range w.Transactions {
		if w.Transactions[i].ID == originalTxID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return w, RefundTransactionNotFound
	}

	original := w.Transactions[idx]
	if original.Refunded {
		return w, RefundAlreadyRefunded
	}
	if original.Type != TransactionIAPPurchase {
		return w, RefundNotRefundable
	}
	if original.Amount > w.Balance {
		return w, RefundInsufficientBalance
	}

	next := w.clone()
	next.Transactions[idx].Refunded = true
	next.Transactions = append(next.Transactions, Transaction{
		ID:        refundTxID,
		Amount:    -original.Amount,
		Type:      TransactionRefund,
		Timestamp: ts,
		Metadata:  map[string]string{"refunds": originalTxID},
	})
	next.Balance -= original.Amount
	next.TotalSpent += original.Amount
	return next, RefundOK
}

// HasReceipt reports whether any transaction already carries the given
// receipt data. Receipt-bearing credits are unique by receipt.
func (w Wallet) HasReceipt(receiptData string) bool {
	if receiptData == "" {
		return false
	}
	for i := range w.Transactions {
		if w.Transactions[i].ReceiptData == receiptData {
			return true
		}
	}
	return false
}

// FindTransaction looks up a transaction by id
func (w Wallet) FindTransaction(id string) (Transaction, bool) {
	for i := range w.Transactions {
		if w.Transactions[i].ID == id {
			return w.Transactions[i], true
		}
	}
	return Transaction{}, false
}

func (w Wallet) clone() Wallet {
	next := w
	next.Transactions = make([]Transaction, len(w.Transactions))
	copy(next.Transactions, w.Transactions)
	return next
}
