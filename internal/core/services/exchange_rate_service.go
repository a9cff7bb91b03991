package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_fx_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_fx_app/internal/platform/cache"
	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
)

// AvailableCurrenciesCacheKey is the cache key holding the currency list.
const AvailableCurrenciesCacheKey = "available_currencies"

// RateCacheKey is the cache key for the rate of currency applicable on date.
func RateCacheKey(currency string, date time.Time) string {
	return fmt.Sprintf("exchange_rate_%s_%s", currency, date.Format(time.DateOnly))
}

// exchangeRateService resolves rates through a TTL cache in front of the rate source.
// Concurrent misses on the same key may both reach the source; the last write wins
// and both writes carry the same value.
type exchangeRateService struct {
	BaseService
	source     portsrepo.ExchangeRateSourceFacade
	rates      cache.Store[domain.ExchangeRate]
	currencies cache.Store[[]string]
	metrics    *metrics.RateMetrics
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithExchangeRateMetrics records cache hits and misses.
func WithExchangeRateMetrics(m *metrics.RateMetrics) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// WithCurrencyListCache caches the available currency list. Without it every
// call goes to the source.
func WithCurrencyListCache(store cache.Store[[]string]) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.currencies = store
	}
}

// NewExchangeRateService creates a rate resolver reading from source and memoizing into rates.
func NewExchangeRateService(source portsrepo.ExchangeRateSourceFacade, rates cache.Store[domain.ExchangeRate], options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		source: source,
		rates:  rates,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) ResolveRate(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error) {
	date = domain.DateOnly(date)
	key := RateCacheKey(currency, date)

	if cached, ok := s.rates.Get(ctx, key); ok {
		s.metrics.CacheHit()
		s.LogDebug(ctx, "Exchange rate cache hit", slog.String("cache_key", key))
		return &cached, nil
	}
	s.metrics.CacheMiss()

	rate, err := s.source.FindExchangeRate(ctx, currency, date)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			s.LogInfo(ctx, "No exchange rate within lookback window",
				slog.String("currency", currency),
				slog.String("date", date.Format(time.DateOnly)))
			return nil, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.LogWarn(ctx, "Exchange rate lookup abandoned",
				slog.String("currency", currency),
				slog.String("error", err.Error()))
			return nil, err
		default:
			s.LogError(ctx, err, "Exchange rate source failed",
				slog.String("currency", currency),
				slog.String("date", date.Format(time.DateOnly)))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstreamUnavailable, err)
		}
	}

	s.rates.Set(ctx, key, *rate)
	return rate, nil
}

func (s *exchangeRateService) AvailableCurrencies(ctx context.Context) ([]string, error) {
	if s.currencies != nil {
		if cached, ok := s.currencies.Get(ctx, AvailableCurrenciesCacheKey); ok {
			s.metrics.CacheHit()
			return append([]string(nil), cached...), nil
		}
		s.metrics.CacheMiss()
	}

	currencies, err := s.source.ListCurrencies(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list available currencies")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstreamUnavailable, err)
	}

	if s.currencies != nil && len(currencies) > 0 {
		s.currencies.Set(ctx, AvailableCurrenciesCacheKey, append([]string(nil), currencies...))
	}
	return currencies, nil
}
