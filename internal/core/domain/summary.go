package domain

import (
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyBoxSummary aggregates the money box log over a period.
type MoneyBoxSummary struct {
	MoneyBoxID          string          `json:"moneyBoxID"`
	Currency            string          `json:"currency"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	TotalCashIn         decimal.Decimal `json:"totalCashIn"`
	TotalCashOut        decimal.Decimal `json:"totalCashOut"`
	NetCashFlow         decimal.Decimal `json:"netCashFlow"`
	TransactionCount    int64           `json:"transactionCount"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate"`
	StartDate           time.Time       `json:"startDate"`
	EndDate             time.Time       `json:"endDate"`
}

// ValidatePeriod rejects ranges whose start is after their end.
func ValidatePeriod(start, end time.Time) error {
	if start.After(end) {
		return apperrors.NewValidationError("start date must not be after end date")
	}
	return nil
}

// Summarize folds the box's rows (ordered oldest first) into a summary. Rows of other
// boxes are ignored. An OPENING_BALANCE row sets the baseline and is not counted, so
// OpeningBalance + TotalCashIn - TotalCashOut == CurrentBalance. With no rows both
// balances fall back to the box's current balance.
func Summarize(box MoneyBox, rows []MoneyBoxTransaction, start, end time.Time) MoneyBoxSummary {
	s := MoneyBoxSummary{
		MoneyBoxID:     box.MoneyBoxID,
		Currency:       box.Currency,
		OpeningBalance: box.CurrentBalance(),
		CurrentBalance: box.CurrentBalance(),
		TotalCashIn:    decimal.Zero,
		TotalCashOut:   decimal.Zero,
		NetCashFlow:    decimal.Zero,
		StartDate:      start,
		EndDate:        end,
	}

	seen := false
	for _, row := range rows {
		if row.MoneyBoxID != box.MoneyBoxID {
			continue
		}
		if !seen {
			s.OpeningBalance = row.BalanceBefore
			seen = true
		}
		s.CurrentBalance = row.BalanceAfter
		last := row.CreatedAt
		s.LastTransactionDate = &last

		if row.TransactionType == OpeningBalance {
			s.OpeningBalance = row.BalanceAfter
			continue
		}
		s.TransactionCount++
		delta := row.SignedAmount()
		if delta.IsPositive() {
			s.TotalCashIn = s.TotalCashIn.Add(delta)
		} else {
			s.TotalCashOut = s.TotalCashOut.Add(delta.Abs())
		}
	}
	s.NetCashFlow = s.TotalCashIn.Sub(s.TotalCashOut)
	return s
}
