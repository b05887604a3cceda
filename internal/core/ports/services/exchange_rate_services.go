package services

import (
	"context"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyConverterSvc converts amounts between currencies using the active rates
type CurrencyConverterSvc interface {
	// Convert converts amount from one currency to another. Same-currency conversions use
	// rate 1 and never touch the rate store.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*domain.CurrencyConversion, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetActiveRate retrieves the active rate for an ordered currency pair.
	GetActiveRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)

	// GetRateByID retrieves a rate by its ID.
	GetRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListActiveRates retrieves every active rate.
	ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SetRate makes a new rate active for its pair, superseding the previous one.
	SetRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error)

	// DeactivateRate deactivates a rate without replacing it.
	DeactivateRate(ctx context.Context, rateID, actorID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
	CurrencyConverterSvc
}
