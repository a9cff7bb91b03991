package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the longest description a purchase may carry.
const MaxDescriptionLength = 50

// Purchase represents a purchase transaction recorded in USD.
type Purchase struct {
	PurchaseID      string          `json:"purchaseID"` // Primary Key (UUID)
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"` // date only
	AmountUSD       decimal.Decimal `json:"amountUSD"`       // rounded to cents
	CreatedAt       time.Time       `json:"createdAt"`
}

// NewPurchase builds a purchase with its date truncated to the day and its amount
// rounded to the nearest cent.
func NewPurchase(id, description string, transactionDate time.Time, amountUSD decimal.Decimal, now time.Time) Purchase {
	return Purchase{
		PurchaseID:      id,
		Description:     description,
		TransactionDate: DateOnly(transactionDate),
		AmountUSD:       RoundAmount(amountUSD),
		CreatedAt:       now,
	}
}

// LatestTransactionDate is the last transaction date accepted at time now.
// One day of slack covers clients ahead of UTC.
func LatestTransactionDate(now time.Time) time.Time {
	return DateOnly(now.UTC()).AddDate(0, 0, 1)
}
