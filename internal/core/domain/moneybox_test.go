package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openTestBox(t *testing.T, opening string) (domain.MoneyBox, []domain.MoneyBoxTransaction) {
	t.Helper()
	box, row, err := domain.OpenMoneyBox(domain.OpenMoneyBoxParams{
		MoneyBoxID:     "box-1",
		OpeningTxnID:   "txn-0",
		PharmacyID:     "pharmacy-1",
		Currency:       domain.CurrencySYP,
		OpeningBalance: dec(opening),
		Notes:          "morning float",
		ActorID:        "user-1",
	}, testNow)
	require.NoError(t, err)
	return box, []domain.MoneyBoxTransaction{row}
}

func post(t *testing.T, box *domain.MoneyBox, txType domain.TransactionType, amount string) domain.MoneyBoxTransaction {
	t.Helper()
	row, err := box.Post(domain.Posting{
		TransactionID: fmt.Sprintf("txn-%d", box.TransactionCount+1),
		Type:          txType,
		Amount:        dec(amount),
		ActorID:       "user-1",
	}, domain.DefaultLedgerPolicy(), testNow)
	require.NoError(t, err)
	return row
}

func assertAggregateInvariants(t *testing.T, box domain.MoneyBox) {
	t.Helper()
	assert.True(t, box.ClosingBalance.Equal(box.OpeningBalance.Add(box.TotalCashIn).Sub(box.TotalCashOut)),
		"closingBalance %s must equal opening + in - out", box.ClosingBalance)
	assert.True(t, box.NetCashFlow.Equal(box.TotalCashIn.Sub(box.TotalCashOut)),
		"netCashFlow %s must equal in - out", box.NetCashFlow)
}

func TestOpenMoneyBox(t *testing.T) {
	box, rows := openTestBox(t, "50000")

	assert.Equal(t, domain.MoneyBoxOpen, box.Status)
	assert.Equal(t, domain.PeriodDaily, box.PeriodType)
	assert.True(t, box.TotalCashIn.IsZero())
	assert.True(t, box.TotalCashOut.IsZero())
	assert.True(t, box.ClosingBalance.Equal(dec("50000")))
	assert.True(t, box.ExpectedBalance.Equal(dec("50000")))
	assert.Equal(t, testNow, box.OpenedAt)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), box.BusinessDate)
	assert.Equal(t, int64(1), box.TransactionCount)

	require.Len(t, rows, 1)
	assert.Equal(t, domain.OpeningBalance, rows[0].TransactionType)
	assert.True(t, rows[0].BalanceBefore.IsZero())
	assert.True(t, rows[0].BalanceAfter.Equal(dec("50000")))
	assert.Equal(t, int64(1), rows[0].SequenceNo)
}

func TestOpenMoneyBox_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		params domain.OpenMoneyBoxParams
	}{
		{"negative opening", domain.OpenMoneyBoxParams{PharmacyID: "p", Currency: domain.CurrencySYP, OpeningBalance: dec("-1")}},
		{"missing pharmacy", domain.OpenMoneyBoxParams{Currency: domain.CurrencySYP, OpeningBalance: dec("1")}},
		{"too many decimals", domain.OpenMoneyBoxParams{PharmacyID: "p", Currency: domain.CurrencySYP, OpeningBalance: dec("1.005")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := domain.OpenMoneyBox(tt.params, testNow)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestMoneyBox_DepositWithdrawReconcileScenario(t *testing.T) {
	box, rows := openTestBox(t, "50000")

	rows = append(rows, post(t, &box, domain.CashDeposit, "1000"))
	assert.True(t, box.TotalCashIn.Equal(dec("1000")))
	assert.True(t, box.CurrentBalance().Equal(dec("51000")))
	assertAggregateInvariants(t, box)

	rows = append(rows, post(t, &box, domain.CashWithdrawal, "200"))
	assert.True(t, box.TotalCashOut.Equal(dec("200")))
	assert.True(t, box.CurrentBalance().Equal(dec("50800")))
	assert.True(t, box.NetCashFlow.Equal(dec("800")))
	assertAggregateInvariants(t, box)

	adjustment, err := box.Reconcile(dec("50800"), "count matches", "txn-adj", "manager-1", testNow)
	require.NoError(t, err)
	assert.Nil(t, adjustment)
	assert.Equal(t, domain.MoneyBoxReconciled, box.Status)
	assert.True(t, box.ExpectedBalance.Equal(*box.ActualBalance))
	assert.Equal(t, "count matches", box.ClosingNotes)
	require.NotNil(t, box.ReconciledBy)
	assert.Equal(t, "manager-1", *box.ReconciledBy)

	report := domain.VerifyChain(box, rows)
	assert.True(t, report.OK(), "%v", report.Problems)
}

func TestMoneyBox_ReconcileMismatchPostsAdjustment(t *testing.T) {
	tests := []struct {
		name   string
		actual string
		delta  string
	}{
		{"shortage", "50700", "-100"},
		{"surplus", "50850.50", "50.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, rows := openTestBox(t, "50000")
			rows = append(rows, post(t, &box, domain.CashDeposit, "800"))
			expectedBefore := box.CurrentBalance()

			adjustment, err := box.Reconcile(dec(tt.actual), "end of day count", "txn-adj", "manager-1", testNow)
			require.NoError(t, err)
			require.NotNil(t, adjustment)
			rows = append(rows, *adjustment)

			assert.Equal(t, domain.Adjustment, adjustment.TransactionType)
			assert.True(t, adjustment.Amount.Equal(dec(tt.delta)))
			assert.True(t, adjustment.SignedAmount().Equal(dec(tt.actual).Sub(expectedBefore)))
			assert.True(t, box.ExpectedBalance.Equal(*box.ActualBalance))
			assert.True(t, box.CurrentBalance().Equal(dec(tt.actual)))
			assert.Equal(t, domain.MoneyBoxReconciled, box.Status)
			assertAggregateInvariants(t, box)

			report := domain.VerifyChain(box, rows)
			assert.True(t, report.OK(), "%v", report.Problems)
		})
	}
}

func TestMoneyBox_ReconcileRejections(t *testing.T) {
	box, _ := openTestBox(t, "100")

	_, err := box.Reconcile(dec("-1"), "notes", "a", "m", testNow)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = box.Reconcile(dec("100"), "   ", "a", "m", testNow)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = box.Reconcile(dec("100"), "ok", "a", "m", testNow)
	require.NoError(t, err)

	_, err = box.Reconcile(dec("100"), "again", "b", "m", testNow)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestMoneyBox_ReconcileFromClosed(t *testing.T) {
	box, _ := openTestBox(t, "100")
	require.NoError(t, box.Close("end of shift", "manager-1", testNow))
	assert.Equal(t, domain.MoneyBoxClosed, box.Status)

	adjustment, err := box.Reconcile(dec("90"), "short by 10", "txn-adj", "manager-1", testNow)
	require.NoError(t, err)
	require.NotNil(t, adjustment)
	assert.Equal(t, domain.MoneyBoxReconciled, box.Status)
	assert.True(t, box.CurrentBalance().Equal(dec("90")))
}

func TestMoneyBox_PostOnNonOpenBoxFails(t *testing.T) {
	for _, status := range []domain.MoneyBoxStatus{domain.MoneyBoxClosed, domain.MoneyBoxReconciled} {
		t.Run(string(status), func(t *testing.T) {
			box, _ := openTestBox(t, "100")
			box.Status = status
			before := box

			_, err := box.Post(domain.Posting{Type: domain.CashDeposit, Amount: dec("10")}, domain.DefaultLedgerPolicy(), testNow)
			assert.ErrorIs(t, err, apperrors.ErrInvalidState)
			assert.Equal(t, before, box, "a rejected posting must not touch the box")
		})
	}
}

func TestMoneyBox_PostRejections(t *testing.T) {
	tests := []struct {
		name   string
		txType domain.TransactionType
		amount string
		policy domain.LedgerPolicy
	}{
		{"zero amount", domain.CashDeposit, "0", domain.DefaultLedgerPolicy()},
		{"negative expense", domain.Expense, "-10", domain.DefaultLedgerPolicy()},
		{"manual opening balance", domain.OpeningBalance, "10", domain.DefaultLedgerPolicy()},
		{"unknown type", domain.TransactionType("GIFT"), "10", domain.DefaultLedgerPolicy()},
		{"sub-minor-unit amount", domain.CashDeposit, "0.001", domain.DefaultLedgerPolicy()},
		{"overdraft disallowed", domain.CashWithdrawal, "150", domain.LedgerPolicy{BaseCurrency: domain.CurrencySYP}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, _ := openTestBox(t, "100")
			before := box

			_, err := box.Post(domain.Posting{Type: tt.txType, Amount: dec(tt.amount)}, tt.policy, testNow)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, before, box)
		})
	}
}

func TestMoneyBox_OverdraftAllowedByDefault(t *testing.T) {
	box, _ := openTestBox(t, "100")
	row := post(t, &box, domain.PurchasePayment, "150")

	assert.True(t, row.BalanceAfter.Equal(dec("-50")))
	assert.True(t, box.CurrentBalance().Equal(dec("-50")))
	assertAggregateInvariants(t, box)
}

func TestMoneyBox_RandomSequenceKeepsChain(t *testing.T) {
	box, rows := openTestBox(t, "1000")
	steps := []struct {
		txType domain.TransactionType
		amount string
	}{
		{domain.SalePayment, "250.75"},
		{domain.Expense, "40"},
		{domain.TransferIn, "500"},
		{domain.SaleRefund, "25.25"},
		{domain.Adjustment, "-10.50"},
		{domain.Income, "99.99"},
		{domain.TransferOut, "300"},
		{domain.Adjustment, "3"},
		{domain.ClosingBalance, "1"},
	}
	for _, s := range steps {
		rows = append(rows, post(t, &box, s.txType, s.amount))
		assertAggregateInvariants(t, box)
	}

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].BalanceAfter.Equal(rows[i].BalanceBefore), "row %d does not chain", rows[i].SequenceNo)
		assert.Equal(t, rows[i-1].SequenceNo+1, rows[i].SequenceNo)
	}
	report := domain.VerifyChain(box, rows)
	assert.True(t, report.OK(), "%v", report.Problems)
	assert.True(t, report.Balance.Equal(box.CurrentBalance()))
}

func TestMoneyBox_Close(t *testing.T) {
	box, _ := openTestBox(t, "100")
	post(t, &box, domain.CashDeposit, "5")

	require.NoError(t, box.Close("bye", "manager-1", testNow))
	assert.Equal(t, domain.MoneyBoxClosed, box.Status)
	assert.True(t, box.ExpectedBalance.Equal(dec("105")))
	require.NotNil(t, box.ClosedAt)

	assert.ErrorIs(t, box.Close("again", "manager-1", testNow), apperrors.ErrInvalidState)
}

func TestParsePeriodType(t *testing.T) {
	got, err := domain.ParsePeriodType("")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodDaily, got)

	got, err = domain.ParsePeriodType("monthly")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodMonthly, got)

	_, err = domain.ParsePeriodType("hourly")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
