package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExchangeRate is a published rate from USD to a foreign currency.
// Rate is expressed as foreign-currency units per 1 USD.
type ExchangeRate struct {
	Country       string          `json:"country"`
	Currency      string          `json:"currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
}

// NewExchangeRate validates its inputs and strips the time of day from effectiveDate.
func NewExchangeRate(country, currency string, rate decimal.Decimal, effectiveDate time.Time) (*ExchangeRate, error) {
	if strings.TrimSpace(country) == "" {
		return nil, fmt.Errorf("%w: country cannot be empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(currency) == "" {
		return nil, fmt.Errorf("%w: currency cannot be empty", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	return &ExchangeRate{
		Country:       country,
		Currency:      currency,
		Rate:          rate,
		EffectiveDate: DateOnly(effectiveDate),
	}, nil
}

// ConvertFromUSD converts a USD amount into this rate's currency.
func (r ExchangeRate) ConvertFromUSD(usdAmount decimal.Decimal) decimal.Decimal {
	return ConvertAmount(usdAmount, r.Rate)
}
