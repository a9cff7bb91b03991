package mapping

import (
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	"github.com/SscSPs/purchase_fx_app/internal/models"
)

// ToModelPurchase converts a domain Purchase to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:      d.PurchaseID,
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		AmountUSD:       d.AmountUSD,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainPurchase converts a model Purchase to a domain Purchase.
// DATE columns come back in the session time zone, so the date is re-normalized to UTC.
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:      m.PurchaseID,
		Description:     m.Description,
		TransactionDate: domain.DateOnly(m.TransactionDate),
		AmountUSD:       m.AmountUSD,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainPurchaseSlice converts a slice of model Purchases to a slice of domain Purchases
func ToDomainPurchaseSlice(ms []models.Purchase) []domain.Purchase {
	ds := make([]domain.Purchase, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchase(m)
	}
	return ds
}
