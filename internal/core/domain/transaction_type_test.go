package domain_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionType_PolarityTable(t *testing.T) {
	want := map[domain.TransactionType]domain.Polarity{
		domain.OpeningBalance:  domain.PolarityOpening,
		domain.CashDeposit:     domain.PolarityIncrease,
		domain.SalePayment:     domain.PolarityIncrease,
		domain.Income:          domain.PolarityIncrease,
		domain.TransferIn:      domain.PolarityIncrease,
		domain.ClosingBalance:  domain.PolarityIncrease,
		domain.CashWithdrawal:  domain.PolarityDecrease,
		domain.PurchasePayment: domain.PolarityDecrease,
		domain.Expense:         domain.PolarityDecrease,
		domain.TransferOut:     domain.PolarityDecrease,
		domain.SaleRefund:      domain.PolarityDecrease,
		domain.Adjustment:      domain.PolarityCallerSigned,
	}

	all := domain.AllTransactionTypes()
	require.Len(t, all, len(want), "every transaction type must have a polarity")
	for _, tt := range all {
		t.Run(string(tt), func(t *testing.T) {
			got, ok := tt.Polarity()
			require.True(t, ok)
			assert.Equal(t, want[tt], got)
			assert.True(t, tt.IsValid())
		})
	}

	_, ok := domain.TransactionType("BOGUS").Polarity()
	assert.False(t, ok)
}

func TestSignedAmount_AllTypes(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	for _, tt := range domain.AllTransactionTypes() {
		t.Run(string(tt), func(t *testing.T) {
			p, _ := tt.Polarity()
			got, err := domain.SignedAmount(tt, hundred)
			require.NoError(t, err)
			switch p {
			case domain.PolarityDecrease:
				assert.True(t, got.Equal(hundred.Neg()), "got %s", got)
			default:
				assert.True(t, got.Equal(hundred), "got %s", got)
			}
		})
	}
}

func TestSignedAmount_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		txType domain.TransactionType
		amount decimal.Decimal
	}{
		{"zero deposit", domain.CashDeposit, decimal.Zero},
		{"negative deposit", domain.CashDeposit, decimal.NewFromInt(-5)},
		{"negative withdrawal", domain.CashWithdrawal, decimal.NewFromInt(-5)},
		{"negative sale refund", domain.SaleRefund, decimal.NewFromInt(-1)},
		{"zero adjustment", domain.Adjustment, decimal.Zero},
		{"negative opening", domain.OpeningBalance, decimal.NewFromInt(-1)},
		{"unknown type", domain.TransactionType("NOPE"), decimal.NewFromInt(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.SignedAmount(tt.txType, tt.amount)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestSignedAmount_AdjustmentKeepsCallerSign(t *testing.T) {
	got, err := domain.SignedAmount(domain.Adjustment, decimal.NewFromInt(-42))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-42)))
}

func TestParseTransactionType(t *testing.T) {
	got, err := domain.ParseTransactionType(" cash_deposit ")
	require.NoError(t, err)
	assert.Equal(t, domain.CashDeposit, got)

	_, err = domain.ParseTransactionType("refund")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
