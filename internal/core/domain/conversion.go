package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places kept for stored and converted amounts.
const AmountPlaces int32 = 2

// RoundAmount rounds to cents, half away from zero.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero; RoundBank would give half-even.
	return amount.Round(AmountPlaces)
}

// ConvertAmount multiplies a USD amount by rate and rounds the product to cents.
// It uses the same rounding as RoundAmount so that a converted value carries
// the same precision as the stored purchase amount.
func ConvertAmount(usdAmount, rate decimal.Decimal) decimal.Decimal {
	return RoundAmount(usdAmount.Mul(rate))
}

// DateOnly drops the time of day, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ConvertedPurchase is the result of converting a stored purchase into a target currency.
// It is computed per request and never persisted.
type ConvertedPurchase struct {
	PurchaseID       string
	Description      string
	TransactionDate  time.Time
	AmountUSD        decimal.Decimal
	TargetCurrency   string
	Country          string
	ExchangeRate     decimal.Decimal
	ExchangeRateDate time.Time
	ConvertedAmount  decimal.Decimal
}
