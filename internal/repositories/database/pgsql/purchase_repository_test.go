package pgsql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	"github.com/SscSPs/purchase_fx_app/pkg/database"
)

// Requires a disposable PostgreSQL database at PGSQL_TEST_URL.
func TestPgxPurchaseRepository(t *testing.T) {
	dbURL := os.Getenv("PGSQL_TEST_URL")
	if dbURL == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}

	ctx := context.Background()
	_, err := database.RunMigrations(dbURL, "file://../../../../migrations")
	require.NoError(t, err)

	pool, err := database.NewPgxPool(ctx, dbURL, true)
	require.NoError(t, err)
	defer database.ClosePgxPool(pool)

	repo := NewRepositoryProvider(pool).PurchaseRepo

	purchase := domain.NewPurchase(uuid.NewString(), "Integration laptop",
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		decimal.RequireFromString("1234.50"),
		time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.SavePurchase(ctx, purchase))
	defer pool.Exec(ctx, "DELETE FROM purchases WHERE purchase_id = $1", purchase.PurchaseID)

	found, err := repo.FindPurchaseByID(ctx, purchase.PurchaseID)
	require.NoError(t, err)
	assert.Equal(t, purchase.Description, found.Description)
	assert.Equal(t, purchase.TransactionDate, found.TransactionDate)
	assert.True(t, purchase.AmountUSD.Equal(found.AmountUSD))

	err = repo.SavePurchase(ctx, purchase)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = repo.FindPurchaseByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := repo.ListPurchases(ctx, 500, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.PurchaseID)
	}
	assert.Contains(t, ids, purchase.PurchaseID)
}
