package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Supported ISO 4217 currency codes.
const (
	CurrencySYP = "SYP"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencySAR = "SAR"
	CurrencyAED = "AED"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int32  `json:"precision"`    // minor unit digits
}

// supportedCurrencies lists every currency the ledger accepts. None of them use
// non-decimal subunits, so all are kept at 2 places.
var supportedCurrencies = map[string]Currency{
	CurrencySYP: {CurrencyCode: CurrencySYP, Symbol: "£S", Name: "Syrian Pound", Precision: 2},
	CurrencyUSD: {CurrencyCode: CurrencyUSD, Symbol: "$", Name: "US Dollar", Precision: 2},
	CurrencyEUR: {CurrencyCode: CurrencyEUR, Symbol: "€", Name: "Euro", Precision: 2},
	CurrencyGBP: {CurrencyCode: CurrencyGBP, Symbol: "£", Name: "Pound Sterling", Precision: 2},
	CurrencySAR: {CurrencyCode: CurrencySAR, Symbol: "﷼", Name: "Saudi Riyal", Precision: 2},
	CurrencyAED: {CurrencyCode: CurrencyAED, Symbol: "د.إ", Name: "UAE Dirham", Precision: 2},
}

// LookupCurrency returns the currency definition for code (case-insensitive).
func LookupCurrency(code string) (Currency, bool) {
	c, ok := supportedCurrencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// IsSupportedCurrency reports whether code names a supported currency.
func IsSupportedCurrency(code string) bool {
	_, ok := LookupCurrency(code)
	return ok
}

// NormalizeCurrencyCode upper-cases and validates a currency code.
func NormalizeCurrencyCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", apperrors.NewValidationError(fmt.Sprintf("currency code '%s' must be 3 letters", code))
	}
	if _, ok := supportedCurrencies[normalized]; !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("currency code '%s' is not supported", normalized))
	}
	return normalized, nil
}

// MinorUnits returns the number of decimal places used for amounts in code.
func MinorUnits(code string) int32 {
	if c, ok := LookupCurrency(code); ok {
		return c.Precision
	}
	return 2
}

// RoundToMinorUnit rounds amount to the minor-unit precision of code (half away from zero).
func RoundToMinorUnit(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(MinorUnits(code))
}

// ValidateAmountPrecision rejects amounts carrying more decimal places than code allows.
func ValidateAmountPrecision(amount decimal.Decimal, code string) error {
	if !amount.Equal(RoundToMinorUnit(amount, code)) {
		return apperrors.NewValidationError(fmt.Sprintf("amount %s has more than %d decimal places for %s", amount.String(), MinorUnits(code), code))
	}
	return nil
}
