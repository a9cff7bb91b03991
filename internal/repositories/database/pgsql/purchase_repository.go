package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/purchase_fx_app/internal/apperrors"
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_fx_app/internal/core/ports/repositories"
	"github.com/SscSPs/purchase_fx_app/internal/models"
	"github.com/SscSPs/purchase_fx_app/internal/utils/mapping"
)

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

// SavePurchase inserts a new purchase.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase) error {
	modelPurchase := mapping.ToModelPurchase(purchase)

	query := `
		INSERT INTO purchases (purchase_id, description, transaction_date, amount_usd, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelPurchase.PurchaseID,
		modelPurchase.Description,
		modelPurchase.TransactionDate,
		modelPurchase.AmountUSD,
		modelPurchase.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase %s", apperrors.ErrDuplicate, modelPurchase.PurchaseID)
		}
		return fmt.Errorf("failed to save purchase %s: %w", modelPurchase.PurchaseID, err)
	}
	return nil
}

// FindPurchaseByID retrieves a purchase by its ID.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `
		SELECT purchase_id, description, transaction_date, amount_usd, created_at
		FROM purchases
		WHERE purchase_id = $1;
	`
	var modelPurchase models.Purchase
	err := r.Pool.QueryRow(ctx, query, purchaseID).Scan(
		&modelPurchase.PurchaseID,
		&modelPurchase.Description,
		&modelPurchase.TransactionDate,
		&modelPurchase.AmountUSD,
		&modelPurchase.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("purchase %s not found", purchaseID))
		}
		return nil, fmt.Errorf("failed to find purchase by id %s: %w", purchaseID, err)
	}

	domainPurchase := mapping.ToDomainPurchase(modelPurchase)
	return &domainPurchase, nil
}

// ListPurchases retrieves purchases newest transaction first.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, limit, offset int) ([]domain.Purchase, error) {
	query := `
		SELECT purchase_id, description, transaction_date, amount_usd, created_at
		FROM purchases
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	modelPurchases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Purchase, error) {
		var purchase models.Purchase
		err := row.Scan(
			&purchase.PurchaseID,
			&purchase.Description,
			&purchase.TransactionDate,
			&purchase.AmountUSD,
			&purchase.CreatedAt,
		)
		return purchase, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchases: %w", err)
	}

	return mapping.ToDomainPurchaseSlice(modelPurchases), nil
}
