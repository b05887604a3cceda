package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindActiveExchangeRate retrieves the single active rate for the ordered pair.
	// Returns apperrors.ErrRateNotFound when none is active.
	FindActiveExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)

	// FindExchangeRateByID retrieves a rate by its ID, active or not.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListActiveExchangeRates retrieves every active rate ordered by pair.
	ListActiveExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// ReplaceActiveExchangeRate deactivates the active rate for next's pair (if any) and inserts
	// next as the new active rate, atomically per pair. The superseded rate is returned, or nil.
	ReplaceActiveExchangeRate(ctx context.Context, next domain.ExchangeRate) (*domain.ExchangeRate, error)

	// DeactivateExchangeRate sets is_active=false and effective_to=now on the rate.
	DeactivateExchangeRate(ctx context.Context, rateID, actorID string, now time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
