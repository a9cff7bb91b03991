package services

import (
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_fx_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_fx_app/internal/platform/cache"
	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
)

// RateInfra groups the collaborators of the exchange rate resolver that live
// outside the database.
type RateInfra struct {
	Source        portsrepo.ExchangeRateSourceFacade
	RateCache     cache.Store[domain.ExchangeRate]
	CurrencyCache cache.Store[[]string]
	Metrics       *metrics.RateMetrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, rates RateInfra) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The resolver is created first since purchase conversion depends on it
	container.ExchangeRate = NewExchangeRateService(
		rates.Source,
		rates.RateCache,
		WithCurrencyListCache(rates.CurrencyCache),
		WithExchangeRateMetrics(rates.Metrics),
	)

	container.Purchase = NewPurchaseService(
		repos.PurchaseRepo,
		container.ExchangeRate,
		WithConversionMetrics(rates.Metrics),
	)

	return container
}
