package services

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
)

// ExchangeRateResolverSvc resolves the rate applicable to a transaction date.
type ExchangeRateResolverSvc interface {
	// ResolveRate returns the latest rate for currency within the six-month window ending on date.
	// A missing rate yields an error matching apperrors.ErrNotFound; an unreachable source
	// yields one matching apperrors.ErrUpstreamUnavailable.
	ResolveRate(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error)
}

// CurrencyReaderSvc defines read operations for available currencies
type CurrencyReaderSvc interface {
	// AvailableCurrencies lists the currency descriptions accepted by ResolveRate.
	AvailableCurrencies(ctx context.Context) ([]string, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateResolverSvc
	CurrencyReaderSvc
}
