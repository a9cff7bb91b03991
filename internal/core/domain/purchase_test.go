package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
)

func TestNewPurchase_NormalizesDateAndAmount(t *testing.T) {
	now := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	date := time.Date(2024, time.January, 15, 18, 45, 0, 0, time.UTC)

	p := domain.NewPurchase("id-1", "Laptop", date, decimal.RequireFromString("10.005"), now)

	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), p.TransactionDate)
	assert.Equal(t, "10.01", p.AmountUSD.StringFixed(2))
	assert.Equal(t, now, p.CreatedAt)
}

func TestLatestTransactionDate(t *testing.T) {
	now := time.Date(2024, time.February, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC), domain.LatestTransactionDate(now))
}
