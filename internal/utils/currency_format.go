package utils

import (
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the minor-unit precision of a currency code.
// Example: 12.3456 USD returns "12.35", 1500 SYP returns "1500.00"
func FormatWithCurrencyPrecision(amount decimal.Decimal, code string) string {
	return amount.StringFixed(domain.MinorUnits(code))
}

// FormatMoney formats an amount followed by its currency code, e.g. "50800.00 SYP".
func FormatMoney(amount decimal.Decimal, code string) string {
	return FormatWithCurrencyPrecision(amount, code) + " " + code
}
