package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateSource records where an exchange rate came from.
type RateSource string

const (
	RateSourceManual RateSource = "MANUAL"
	RateSourceAPI    RateSource = "API"
	RateSourceSystem RateSource = "SYSTEM"
)

// IsValid reports whether s is a known rate source.
func (s RateSource) IsValid() bool {
	switch s {
	case RateSourceManual, RateSourceAPI, RateSourceSystem:
		return true
	}
	return false
}

// MinimumRate is the smallest rate accepted by SetRate.
var MinimumRate = decimal.New(1, -6)

// ExchangeRate is a directional conversion rate. At most one rate per (from, to) pair is active.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	IsActive       bool            `json:"isActive"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	EffectiveTo    *time.Time      `json:"effectiveTo"` // nil = open-ended
	Source         RateSource      `json:"source"`
	Notes          string          `json:"notes"`
	AuditFields
}

// Validate checks the rate invariants.
func (r ExchangeRate) Validate() error {
	if r.FromCurrency == r.ToCurrency {
		return apperrors.NewValidationError("from and to currency codes cannot be the same")
	}
	if r.Rate.LessThan(MinimumRate) {
		return apperrors.NewValidationError(fmt.Sprintf("exchange rate must be at least %s", MinimumRate.String()))
	}
	if !r.Source.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown rate source '%s'", r.Source))
	}
	if r.EffectiveTo != nil && r.EffectiveTo.Before(r.EffectiveFrom) {
		return apperrors.NewValidationError("effectiveTo must not be before effectiveFrom")
	}
	return nil
}

// Supersede deactivates the rate as of now.
func (r *ExchangeRate) Supersede(actorID string, now time.Time) {
	if !r.IsActive {
		return
	}
	r.IsActive = false
	end := now
	if end.Before(r.EffectiveFrom) {
		end = r.EffectiveFrom
	}
	r.EffectiveTo = &end
	r.Touch(actorID, now)
}

// CurrencyConversion records how an amount was converted between two currencies.
type CurrencyConversion struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	FromCurrency    string          `json:"fromCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"exchangeRate"`
	ExchangeRateID  *string         `json:"exchangeRateID,omitempty"` // nil for same-currency conversions
	ConvertedAt     time.Time       `json:"conversionTime"`
	Source          RateSource      `json:"rateSource"`
}

// IsIdentity reports whether no rate was applied.
func (c CurrencyConversion) IsIdentity() bool {
	return c.FromCurrency == c.ToCurrency
}

// ConvertWithRate converts amount using rate and rounds to the target currency's minor unit.
func ConvertWithRate(amount decimal.Decimal, rate ExchangeRate, now time.Time) CurrencyConversion {
	rateID := rate.ExchangeRateID
	return CurrencyConversion{
		OriginalAmount:  amount,
		FromCurrency:    rate.FromCurrency,
		ConvertedAmount: RoundToMinorUnit(amount.Mul(rate.Rate), rate.ToCurrency),
		ToCurrency:      rate.ToCurrency,
		Rate:            rate.Rate,
		ExchangeRateID:  &rateID,
		ConvertedAt:     now,
		Source:          rate.Source,
	}
}

// IdentityConversion returns a rate=1 conversion for same-currency amounts.
func IdentityConversion(amount decimal.Decimal, currency string, now time.Time) CurrencyConversion {
	return CurrencyConversion{
		OriginalAmount:  amount,
		FromCurrency:    currency,
		ConvertedAmount: amount,
		ToCurrency:      currency,
		Rate:            decimal.NewFromInt(1),
		ConvertedAt:     now,
		Source:          RateSourceSystem,
	}
}
