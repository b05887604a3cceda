package repositories

import (
	"context"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
)

// CustomerDebtWriter records debts raised by partially paid sales.
type CustomerDebtWriter interface {
	SaveCustomerDebt(ctx context.Context, debt domain.CustomerDebt) error
}
