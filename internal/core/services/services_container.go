package services

import (
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate service doubles as the currency converter for the ledger.
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	container.MoneyBox = NewMoneyBoxService(
		repos.MoneyBoxRepo,
		container.ExchangeRate,
		WithLedgerPolicy(domain.LedgerPolicy{
			BaseCurrency:         cfg.BaseCurrency,
			AllowNegativeBalance: cfg.AllowNegativeBalance,
		}),
		WithDisplayCurrencies(cfg.DisplayCurrencies...),
	)

	container.Integration = NewIntegrationService(container.MoneyBox, repos.CustomerDebtRepo)

	return container
}
