package pgsql

import (
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		MoneyBoxRepo:     newPgxMoneyBoxRepository(dbPool),
		CustomerDebtRepo: newPgxCustomerDebtRepository(dbPool),
	}
}
