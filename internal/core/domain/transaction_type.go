package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a balance-affecting money box event.
type TransactionType string

const (
	OpeningBalance  TransactionType = "OPENING_BALANCE"
	CashDeposit     TransactionType = "CASH_DEPOSIT"
	CashWithdrawal  TransactionType = "CASH_WITHDRAWAL"
	SalePayment     TransactionType = "SALE_PAYMENT"
	SaleRefund      TransactionType = "SALE_REFUND"
	PurchasePayment TransactionType = "PURCHASE_PAYMENT"
	Expense         TransactionType = "EXPENSE"
	Income          TransactionType = "INCOME"
	TransferIn      TransactionType = "TRANSFER_IN"
	TransferOut     TransactionType = "TRANSFER_OUT"
	Adjustment      TransactionType = "ADJUSTMENT"
	ClosingBalance  TransactionType = "CLOSING_BALANCE"
)

// Polarity says how a transaction type's amount moves the running balance.
type Polarity int

const (
	// PolarityOpening marks the baseline row written when a box is opened. It sets the
	// balance but is not counted in cash in/out totals.
	PolarityOpening Polarity = iota
	PolarityIncrease
	PolarityDecrease
	// PolarityCallerSigned takes the sign of the supplied amount.
	PolarityCallerSigned
)

func (p Polarity) String() string {
	switch p {
	case PolarityOpening:
		return "opening"
	case PolarityIncrease:
		return "+1"
	case PolarityDecrease:
		return "-1"
	case PolarityCallerSigned:
		return "caller"
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

var polarities = map[TransactionType]Polarity{
	OpeningBalance:  PolarityOpening,
	CashDeposit:     PolarityIncrease,
	SalePayment:     PolarityIncrease,
	Income:          PolarityIncrease,
	TransferIn:      PolarityIncrease,
	ClosingBalance:  PolarityIncrease,
	CashWithdrawal:  PolarityDecrease,
	PurchasePayment: PolarityDecrease,
	Expense:         PolarityDecrease,
	TransferOut:     PolarityDecrease,
	SaleRefund:      PolarityDecrease,
	Adjustment:      PolarityCallerSigned,
}

// AllTransactionTypes lists every transaction type in declaration order.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		OpeningBalance, CashDeposit, CashWithdrawal, SalePayment, SaleRefund, PurchasePayment,
		Expense, Income, TransferIn, TransferOut, Adjustment, ClosingBalance,
	}
}

// ParseTransactionType parses s case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := polarities[t]; !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("unknown transaction type '%s'", s))
	}
	return t, nil
}

// Polarity returns the polarity of t. ok is false for unknown types.
func (t TransactionType) Polarity() (Polarity, bool) {
	p, ok := polarities[t]
	return p, ok
}

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	_, ok := polarities[t]
	return ok
}

// SignedAmount returns the signed effect of amount on the running balance.
// Polar types require a positive magnitude; ADJUSTMENT accepts any non-zero amount.
func SignedAmount(t TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	p, ok := polarities[t]
	if !ok {
		return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("unknown transaction type '%s'", t))
	}
	switch p {
	case PolarityIncrease:
		if !amount.IsPositive() {
			return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("%s amount must be positive", t))
		}
		return amount, nil
	case PolarityDecrease:
		if !amount.IsPositive() {
			return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("%s amount must be positive", t))
		}
		return amount.Neg(), nil
	case PolarityCallerSigned:
		if amount.IsZero() {
			return decimal.Zero, apperrors.NewValidationError("adjustment amount cannot be zero")
		}
		return amount, nil
	case PolarityOpening:
		if amount.IsNegative() {
			return decimal.Zero, apperrors.NewValidationError("opening balance cannot be negative")
		}
		return amount, nil
	}
	return decimal.Zero, apperrors.NewValidationError(fmt.Sprintf("unhandled polarity for '%s'", t))
}
