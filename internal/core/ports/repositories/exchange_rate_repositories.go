package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
)

// ExchangeRateReader defines read operations against the published exchange rate source.
type ExchangeRateReader interface {
	// FindExchangeRate returns the most recent rate for currency published within the
	// lookback window ending on date. A missing rate is reported as apperrors.ErrNotFound.
	FindExchangeRate(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error)
}

// CurrencyLister defines listing of the currencies the rate source knows about.
type CurrencyLister interface {
	// ListCurrencies returns distinct currency descriptions, sorted.
	ListCurrencies(ctx context.Context) ([]string, error)
}

// ExchangeRateSourceFacade combines all exchange rate source interfaces
type ExchangeRateSourceFacade interface {
	ExchangeRateReader
	CurrencyLister
}
