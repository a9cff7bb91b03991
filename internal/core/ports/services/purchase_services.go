package services

import (
	"context"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	"github.com/SscSPs/purchase_fx_app/internal/dto"
)

// PurchaseReaderSvc defines read operations for purchases
type PurchaseReaderSvc interface {
	// GetPurchaseByID retrieves a purchase or returns *apperrors.PurchaseNotFoundError.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves stored purchases.
	ListPurchases(ctx context.Context, limit, offset int) ([]domain.Purchase, error)
}

// PurchaseWriterSvc defines write operations for purchases
type PurchaseWriterSvc interface {
	// CreatePurchase validates and stores a new purchase.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*domain.Purchase, error)
}

// PurchaseConverterSvc defines currency conversion of stored purchases
type PurchaseConverterSvc interface {
	// GetConvertedPurchase converts a stored purchase into currency using the rate
	// in effect on its transaction date.
	GetConvertedPurchase(ctx context.Context, purchaseID, currency string) (*domain.ConvertedPurchase, error)
}

// PurchaseSvcFacade combines all purchase-related service interfaces
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
	PurchaseConverterSvc
}
