package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/purchase_fx_app/internal/models"
)

func TestToDomainPurchase_NormalizesDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	m := models.Purchase{
		PurchaseID:      "id-1",
		Description:     "Laptop",
		TransactionDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, loc),
		AmountUSD:       decimal.RequireFromString("100.00"),
	}

	d := ToDomainPurchase(m)

	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), d.TransactionDate)
	assert.Equal(t, "id-1", ToModelPurchase(d).PurchaseID)
}
