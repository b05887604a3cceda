package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of exchange_rates.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	FromCurrency   string          `db:"from_currency"`
	ToCurrency     string          `db:"to_currency"`
	Rate           decimal.Decimal `db:"rate"`
	IsActive       bool            `db:"is_active"`
	EffectiveFrom  time.Time       `db:"effective_from"`
	EffectiveTo    *time.Time      `db:"effective_to"` // Nullable
	Source         string          `db:"source"`
	Notes          string          `db:"notes"`
	AuditFields
}
