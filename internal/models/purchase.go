package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is the row stored in the purchases table.
type Purchase struct {
	PurchaseID      string          `json:"purchaseID"` // Primary Key (UUID)
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"` // DATE column
	AmountUSD       decimal.Decimal `json:"amountUSD"`       // NUMERIC(18,2)
	CreatedAt       time.Time       `json:"createdAt"`
}
