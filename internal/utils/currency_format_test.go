package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	assert.Equal(t, "12.35", FormatWithCurrencyPrecision(decimal.RequireFromString("12.3456"), "USD"))
	assert.Equal(t, "1500.00", FormatWithCurrencyPrecision(decimal.RequireFromString("1500"), "SYP"))
	assert.Equal(t, "-0.50", FormatWithCurrencyPrecision(decimal.RequireFromString("-0.5"), "EUR"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "50800.00 SYP", FormatMoney(decimal.RequireFromString("50800"), "SYP"))
}
