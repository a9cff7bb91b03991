package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_fx_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
)

// --- Mock ExchangeRateSource ---
type MockExchangeRateSource struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateSourceFacade = (*MockExchangeRateSource)(nil)

func (m *MockExchangeRateSource) FindExchangeRate(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currency, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateSource) ListCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock PurchaseRepository ---
type MockPurchaseRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseRepositoryFacade = (*MockPurchaseRepository)(nil)

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, limit, offset int) ([]domain.Purchase, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

// --- Mock ExchangeRateResolver ---
type MockExchangeRateResolver struct {
	mock.Mock
}

var _ portssvc.ExchangeRateResolverSvc = (*MockExchangeRateResolver)(nil)

func (m *MockExchangeRateResolver) ResolveRate(ctx context.Context, currency string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currency, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
