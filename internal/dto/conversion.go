package dto

import (
	"time"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertPurchaseQuery carries the target currency for a conversion request.
type ConvertPurchaseQuery struct {
	Currency string `form:"currency" binding:"required"` // e.g. "Brazil-Real"
}

// ConvertedPurchaseResponse defines the structure for a purchase converted to a target currency.
type ConvertedPurchaseResponse struct {
	PurchaseID       string          `json:"purchaseID"`
	Description      string          `json:"description"`
	TransactionDate  string          `json:"transactionDate"`
	AmountUSD        string          `json:"amountUSD"`
	TargetCurrency   string          `json:"targetCurrency"`
	Country          string          `json:"country"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ExchangeRateDate string          `json:"exchangeRateDate"`
	ConvertedAmount  string          `json:"convertedAmount"`
}

// ToConvertedPurchaseResponse converts a domain.ConvertedPurchase to its response DTO.
// Amounts are rendered with exactly two decimal places.
func ToConvertedPurchaseResponse(c *domain.ConvertedPurchase) ConvertedPurchaseResponse {
	return ConvertedPurchaseResponse{
		PurchaseID:       c.PurchaseID,
		Description:      c.Description,
		TransactionDate:  c.TransactionDate.Format(time.DateOnly),
		AmountUSD:        c.AmountUSD.StringFixed(domain.AmountPlaces),
		TargetCurrency:   c.TargetCurrency,
		Country:          c.Country,
		ExchangeRate:     c.ExchangeRate,
		ExchangeRateDate: c.ExchangeRateDate.Format(time.DateOnly),
		ConvertedAmount:  c.ConvertedAmount.StringFixed(domain.AmountPlaces),
	}
}
