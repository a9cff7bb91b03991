package repositories

import (
	"context"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
)

// PurchaseReader defines read operations for purchase data
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase by its ID.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves purchases ordered by transaction date, newest first.
	ListPurchases(ctx context.Context, limit, offset int) ([]domain.Purchase, error)
}

// PurchaseWriter defines write operations for purchase data
type PurchaseWriter interface {
	// SavePurchase persists a new purchase.
	SavePurchase(ctx context.Context, purchase domain.Purchase) error
}

// PurchaseRepositoryFacade combines all purchase-related repository interfaces
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
