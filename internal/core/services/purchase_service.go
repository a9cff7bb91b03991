package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_fx_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_fx_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_fx_app/internal/dto"
	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
)

// Conversion outcomes reported to metrics.
const (
	conversionConverted       = "converted"
	conversionNotFound        = "purchase_not_found"
	conversionRateUnavailable = "rate_unavailable"
	conversionUpstreamFailed  = "upstream_unavailable"
	conversionCanceled        = "canceled"
	conversionError           = "error"
)

// purchaseService implements the PurchaseSvcFacade interface
type purchaseService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	rateResolver portssvc.ExchangeRateResolverSvc
	metrics      *metrics.RateMetrics
	now          func() time.Time
}

// PurchaseServiceOption is a functional option for configuring the purchase service
type PurchaseServiceOption func(*purchaseService)

// WithConversionMetrics counts conversion outcomes.
func WithConversionMetrics(m *metrics.RateMetrics) PurchaseServiceOption {
	return func(s *purchaseService) {
		s.metrics = m
	}
}

// WithClock overrides the clock used for creation timestamps and the future-date check.
func WithClock(now func() time.Time) PurchaseServiceOption {
	return func(s *purchaseService) {
		s.now = now
	}
}

// NewPurchaseService creates a new purchase service with the provided options
func NewPurchaseService(repo portsrepo.PurchaseRepositoryFacade, resolver portssvc.ExchangeRateResolverSvc, options ...PurchaseServiceOption) portssvc.PurchaseSvcFacade {
	svc := &purchaseService{
		purchaseRepo: repo,
		rateResolver: resolver,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*domain.Purchase, error) {
	now := s.now().UTC()

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description is required")
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("description must not exceed %d characters", domain.MaxDescriptionLength))
	}

	transactionDate, err := time.Parse(time.DateOnly, req.TransactionDate)
	if err != nil {
		return nil, apperrors.NewValidationError("transaction date must be formatted as YYYY-MM-DD")
	}
	if transactionDate.After(domain.LatestTransactionDate(now)) {
		return nil, apperrors.NewValidationError("transaction date cannot be in the future")
	}

	if req.AmountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("purchase amount must be a positive value")
	}
	if !req.AmountUSD.Equal(domain.RoundAmount(req.AmountUSD)) {
		return nil, apperrors.NewValidationError("purchase amount must be rounded to the nearest cent")
	}

	purchase := domain.NewPurchase(uuid.NewString(), description, transactionDate, req.AmountUSD, now)

	if err := s.purchaseRepo.SavePurchase(ctx, purchase); err != nil {
		s.LogError(ctx, err, "Failed to save purchase", slog.String("purchase_id", purchase.PurchaseID))
		return nil, fmt.Errorf("failed to create purchase in service: %w", err)
	}

	s.LogInfo(ctx, "Purchase created",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("amount_usd", purchase.AmountUSD.StringFixed(domain.AmountPlaces)))
	return &purchase, nil
}

func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.PurchaseNotFoundError{PurchaseID: purchaseID}
		}
		s.LogError(ctx, err, "Failed to get purchase", slog.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("failed to get purchase in service: %w", err)
	}
	return purchase, nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, limit, offset int) ([]domain.Purchase, error) {
	purchases, err := s.purchaseRepo.ListPurchases(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases")
		return nil, fmt.Errorf("failed to list purchases in service: %w", err)
	}
	return purchases, nil
}

// GetConvertedPurchase loads the purchase, resolves the rate for its transaction
// date and converts the amount. Source failures are returned as-is so callers can
// tell them apart from a missing purchase or a missing rate.
func (s *purchaseService) GetConvertedPurchase(ctx context.Context, purchaseID, currency string) (*domain.ConvertedPurchase, error) {
	purchase, err := s.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.metrics.Conversion(conversionNotFound)
		} else {
			s.metrics.Conversion(conversionError)
		}
		return nil, err
	}

	rate, err := s.rateResolver.ResolveRate(ctx, currency, purchase.TransactionDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			s.metrics.Conversion(conversionRateUnavailable)
			return nil, &apperrors.RateUnavailableError{Currency: currency, PurchaseDate: purchase.TransactionDate}
		case errors.Is(err, apperrors.ErrUpstreamUnavailable):
			s.metrics.Conversion(conversionUpstreamFailed)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.metrics.Conversion(conversionCanceled)
		default:
			s.metrics.Conversion(conversionError)
		}
		return nil, err
	}

	s.metrics.Conversion(conversionConverted)
	return &domain.ConvertedPurchase{
		PurchaseID:       purchase.PurchaseID,
		Description:      purchase.Description,
		TransactionDate:  purchase.TransactionDate,
		AmountUSD:        purchase.AmountUSD,
		TargetCurrency:   rate.Currency,
		Country:          rate.Country,
		ExchangeRate:     rate.Rate,
		ExchangeRateDate: rate.EffectiveDate,
		ConvertedAmount:  rate.ConvertFromUSD(purchase.AmountUSD),
	}, nil
}
