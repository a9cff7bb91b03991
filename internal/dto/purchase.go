package dto

import (
	"time"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest defines the structure for recording a new purchase.
type CreatePurchaseRequest struct {
	Description     string          `json:"description" binding:"required,max=50"`
	TransactionDate string          `json:"transactionDate" binding:"required,datetime=2006-01-02,notfuture"` // YYYY-MM-DD
	AmountUSD       decimal.Decimal `json:"amountUSD" binding:"required"`
}

// ListPurchasesParams carries paging parameters for listing purchases.
type ListPurchasesParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// PurchaseResponse defines the structure for API responses containing purchase details.
type PurchaseResponse struct {
	PurchaseID      string    `json:"purchaseID"`
	Description     string    `json:"description"`
	TransactionDate string    `json:"transactionDate"`
	AmountUSD       string    `json:"amountUSD"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:      p.PurchaseID,
		Description:     p.Description,
		TransactionDate: p.TransactionDate.Format(time.DateOnly),
		AmountUSD:       p.AmountUSD.StringFixed(domain.AmountPlaces),
		CreatedAt:       p.CreatedAt,
	}
}

// ToListPurchaseResponse converts a slice of domain.Purchase to a slice of PurchaseResponse DTOs
func ToListPurchaseResponse(purchases []domain.Purchase) []PurchaseResponse {
	res := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		res[i] = ToPurchaseResponse(&purchases[i])
	}
	return res
}
