package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_fx_app/internal/core/services"
	"github.com/SscSPs/purchase_fx_app/internal/platform/cache"
	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockSource *MockExchangeRateSource
	rateCache  *cache.MemoryStore[domain.ExchangeRate]
	metrics    *metrics.RateMetrics
	service    portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockExchangeRateSource)
	suite.rateCache = cache.NewMemoryStore[domain.ExchangeRate](0, 24*time.Hour)
	suite.metrics = metrics.NewRateMetrics(prometheus.NewRegistry())
	suite.service = services.NewExchangeRateService(
		suite.mockSource,
		suite.rateCache,
		services.WithCurrencyListCache(cache.NewMemoryStore[[]string](0, 24*time.Hour)),
		services.WithExchangeRateMetrics(suite.metrics),
	)
}

func realRate(t *testing.T) *domain.ExchangeRate {
	rate, err := domain.NewExchangeRate("Brazil", "Brazil-Real", decimal.RequireFromString("5.00"),
		time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	return rate
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_CachesUpstreamResult() {
	ctx := context.Background()
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	expected := realRate(suite.T())

	suite.mockSource.On("FindExchangeRate", ctx, "Brazil-Real", date).Return(expected, nil).Once()

	first, err := suite.service.ResolveRate(ctx, "Brazil-Real", date)
	suite.Require().NoError(err)
	second, err := suite.service.ResolveRate(ctx, "Brazil-Real", date)
	suite.Require().NoError(err)

	suite.Equal(expected, first)
	suite.Equal(expected, second)
	suite.mockSource.AssertNumberOfCalls(suite.T(), "FindExchangeRate", 1)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.CacheLookupsTotal.WithLabelValues("hit")))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.CacheLookupsTotal.WithLabelValues("miss")))

	_, cached := suite.rateCache.Get(ctx, "exchange_rate_Brazil-Real_2024-01-15")
	suite.True(cached)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_StripsTimeOfDay() {
	ctx := context.Background()
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	suite.mockSource.On("FindExchangeRate", ctx, "Brazil-Real", date).Return(realRate(suite.T()), nil).Once()

	_, err := suite.service.ResolveRate(ctx, "Brazil-Real", date.Add(17*time.Hour))
	suite.Require().NoError(err)
	_, err = suite.service.ResolveRate(ctx, "Brazil-Real", date.Add(3*time.Hour))
	suite.Require().NoError(err)

	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_NotFoundIsNotCached() {
	ctx := context.Background()
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	notFound := fmt.Errorf("%w: no exchange rate", apperrors.ErrNotFound)

	suite.mockSource.On("FindExchangeRate", ctx, "Narnia-Crown", date).Return(nil, notFound).Twice()

	for i := 0; i < 2; i++ {
		rate, err := suite.service.ResolveRate(ctx, "Narnia-Crown", date)
		suite.Nil(rate)
		suite.ErrorIs(err, apperrors.ErrNotFound)
		suite.NotErrorIs(err, apperrors.ErrUpstreamUnavailable)
	}
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_SourceFailureIsUpstreamUnavailable() {
	ctx := context.Background()
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	suite.mockSource.On("FindExchangeRate", ctx, "Brazil-Real", date).Return(nil, assert.AnError).Once()

	rate, err := suite.service.ResolveRate(ctx, "Brazil-Real", date)

	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrUpstreamUnavailable)
	suite.ErrorIs(err, assert.AnError)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_CanceledPassesThrough() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	suite.mockSource.On("FindExchangeRate", ctx, "Brazil-Real", date).Return(nil, context.Canceled).Once()

	_, err := suite.service.ResolveRate(ctx, "Brazil-Real", date)

	suite.ErrorIs(err, context.Canceled)
	suite.NotErrorIs(err, apperrors.ErrUpstreamUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestAvailableCurrencies_Cached() {
	ctx := context.Background()
	list := []string{"Brazil-Real", "Euro Zone-Euro"}

	suite.mockSource.On("ListCurrencies", ctx).Return(list, nil).Once()

	first, err := suite.service.AvailableCurrencies(ctx)
	suite.Require().NoError(err)
	first[0] = "mutated"

	second, err := suite.service.AvailableCurrencies(ctx)
	suite.Require().NoError(err)

	suite.Equal([]string{"Brazil-Real", "Euro Zone-Euro"}, second)
	suite.mockSource.AssertNumberOfCalls(suite.T(), "ListCurrencies", 1)
}

func (suite *ExchangeRateServiceTestSuite) TestAvailableCurrencies_SourceFailure() {
	ctx := context.Background()
	suite.mockSource.On("ListCurrencies", mock.Anything).Return(nil, assert.AnError).Once()

	currencies, err := suite.service.AvailableCurrencies(ctx)

	suite.Nil(currencies)
	suite.ErrorIs(err, apperrors.ErrUpstreamUnavailable)
}

func TestRateCacheKey(t *testing.T) {
	date := time.Date(2024, time.March, 5, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "exchange_rate_Canada-Dollar_2024-03-05", services.RateCacheKey("Canada-Dollar", date))
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
