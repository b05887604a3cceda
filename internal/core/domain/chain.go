package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ChainReport is the result of replaying a money box log.
type ChainReport struct {
	MoneyBoxID       string
	TotalCashIn      decimal.Decimal
	TotalCashOut     decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int64
	Problems         []string
}

// OK reports whether the replay found no inconsistencies.
func (r ChainReport) OK() bool {
	return len(r.Problems) == 0
}

// VerifyChain replays rows (ordered by sequence number) and checks that every row chains
// onto its predecessor, carries the sign its type demands, and that the replayed totals
// match the box aggregate.
func VerifyChain(box MoneyBox, rows []MoneyBoxTransaction) ChainReport {
	report := ChainReport{
		MoneyBoxID:   box.MoneyBoxID,
		TotalCashIn:  decimal.Zero,
		TotalCashOut: decimal.Zero,
		Balance:      decimal.Zero,
	}
	problemf := func(format string, args ...any) {
		report.Problems = append(report.Problems, fmt.Sprintf(format, args...))
	}

	opening := decimal.Zero
	for i, row := range rows {
		expectedSeq := int64(i + 1)
		if row.SequenceNo != expectedSeq {
			problemf("row %s: sequence %d, expected %d", row.TransactionID, row.SequenceNo, expectedSeq)
		}
		if !row.BalanceBefore.Equal(report.Balance) {
			problemf("row %d: balanceBefore %s does not chain onto %s", row.SequenceNo, row.BalanceBefore, report.Balance)
		}

		if row.TransactionType == OpeningBalance {
			if i != 0 {
				problemf("row %d: OPENING_BALANCE must be the first row", row.SequenceNo)
			}
			opening = row.Amount
			if !row.BalanceAfter.Equal(row.BalanceBefore.Add(row.Amount)) {
				problemf("row %d: balanceAfter %s != balanceBefore %s + amount %s", row.SequenceNo, row.BalanceAfter, row.BalanceBefore, row.Amount)
			}
			report.Balance = row.BalanceAfter
			report.TransactionCount++
			continue
		}

		signed, err := SignedAmount(row.TransactionType, row.Amount)
		if err != nil {
			problemf("row %d: %v", row.SequenceNo, err)
			signed = row.SignedAmount()
		}
		if !row.BalanceAfter.Equal(row.BalanceBefore.Add(signed)) {
			problemf("row %d: balanceAfter %s != balanceBefore %s + %s", row.SequenceNo, row.BalanceAfter, row.BalanceBefore, signed)
		}
		if signed.IsPositive() {
			report.TotalCashIn = report.TotalCashIn.Add(signed)
		} else {
			report.TotalCashOut = report.TotalCashOut.Add(signed.Abs())
		}
		report.Balance = row.BalanceAfter
		report.TransactionCount++
	}

	if len(rows) > 0 && !opening.Equal(box.OpeningBalance) {
		problemf("box openingBalance %s != logged opening %s", box.OpeningBalance, opening)
	}
	if !report.TotalCashIn.Equal(box.TotalCashIn) {
		problemf("box totalCashIn %s != replayed %s", box.TotalCashIn, report.TotalCashIn)
	}
	if !report.TotalCashOut.Equal(box.TotalCashOut) {
		problemf("box totalCashOut %s != replayed %s", box.TotalCashOut, report.TotalCashOut)
	}
	if !box.NetCashFlow.Equal(box.TotalCashIn.Sub(box.TotalCashOut)) {
		problemf("box netCashFlow %s != totalCashIn - totalCashOut", box.NetCashFlow)
	}
	if len(rows) > 0 && !report.Balance.Equal(box.CurrentBalance()) {
		problemf("box balance %s != replayed %s", box.CurrentBalance(), report.Balance)
	}
	if !box.ClosingBalance.Equal(box.CurrentBalance()) {
		problemf("box closingBalance %s != current balance %s", box.ClosingBalance, box.CurrentBalance())
	}
	if report.TransactionCount != box.TransactionCount {
		problemf("box transactionCount %d != replayed %d", box.TransactionCount, report.TransactionCount)
	}
	return report
}
