package pgsql

import (
	"context"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	"github.com/SscSPs/pharmacy_moneybox/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCustomerDebtRepository implements the ports.CustomerDebtWriter interface using pgxpool.
type PgxCustomerDebtRepository struct {
	BaseRepository
}

func newPgxCustomerDebtRepository(db *pgxpool.Pool) portsrepo.CustomerDebtWriter {
	return &PgxCustomerDebtRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveCustomerDebt inserts a customer debt.
func (r *PgxCustomerDebtRepository) SaveCustomerDebt(ctx context.Context, debt domain.CustomerDebt) error {
	m := mapping.ToModelCustomerDebt(debt)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO customer_debts (
			customer_debt_id, pharmacy_id, customer_id, reference_id, reference_type,
			amount, currency, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.CustomerDebtID, m.PharmacyID, m.CustomerID, m.ReferenceID, m.ReferenceType,
		m.Amount, m.Currency, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.NewConflictError("a debt for " + debt.ReferenceID + " is already recorded")
		}
		return internalError("failed to save customer debt", err)
	}
	return nil
}
