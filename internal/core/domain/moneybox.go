package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyBoxStatus is the lifecycle state of a money box.
type MoneyBoxStatus string

const (
	MoneyBoxOpen       MoneyBoxStatus = "OPEN"
	MoneyBoxClosed     MoneyBoxStatus = "CLOSED"
	MoneyBoxReconciled MoneyBoxStatus = "RECONCILED"
)

// PeriodType is the calendar granularity a money box covers.
type PeriodType string

const (
	PeriodDaily   PeriodType = "DAILY"
	PeriodWeekly  PeriodType = "WEEKLY"
	PeriodMonthly PeriodType = "MONTHLY"
	PeriodYearly  PeriodType = "YEARLY"
)

// ParsePeriodType parses s case-insensitively; empty defaults to DAILY.
func ParsePeriodType(s string) (PeriodType, error) {
	if strings.TrimSpace(s) == "" {
		return PeriodDaily, nil
	}
	p := PeriodType(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown period type '%s'", s))
}

// LedgerPolicy holds the configurable ledger rules.
type LedgerPolicy struct {
	BaseCurrency string
	// AllowNegativeBalance permits postings that leave the running balance below zero.
	AllowNegativeBalance bool
}

// DefaultLedgerPolicy mirrors the configuration defaults.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{BaseCurrency: CurrencySYP, AllowNegativeBalance: true}
}

// MoneyBox is the cash register aggregate of one pharmacy for one business period.
type MoneyBox struct {
	MoneyBoxID       string           `json:"moneyBoxID"`
	PharmacyID       string           `json:"pharmacyID"`
	BusinessDate     time.Time        `json:"businessDate"`
	PeriodType       PeriodType       `json:"periodType"`
	ParentMoneyBoxID *string          `json:"parentMoneyBoxID"`
	Currency         string           `json:"currency"`
	Status           MoneyBoxStatus   `json:"status"`
	OpeningBalance   decimal.Decimal  `json:"openingBalance"`
	ClosingBalance   decimal.Decimal  `json:"closingBalance"` // running balance
	ExpectedBalance  decimal.Decimal  `json:"expectedBalance"`
	ActualBalance    *decimal.Decimal `json:"actualBalance"`
	TotalCashIn      decimal.Decimal  `json:"totalCashIn"`
	TotalCashOut     decimal.Decimal  `json:"totalCashOut"`
	NetCashFlow      decimal.Decimal  `json:"netCashFlow"`
	TransactionCount int64            `json:"transactionCount"`
	OpenedAt         time.Time        `json:"openedAt"`
	OpenedBy         string           `json:"openedBy"`
	ClosedAt         *time.Time       `json:"closedAt"`
	ClosedBy         *string          `json:"closedBy"`
	ReconciledAt     *time.Time       `json:"reconciledAt"`
	ReconciledBy     *string          `json:"reconciledBy"`
	OpeningNotes     string           `json:"openingNotes"`
	ClosingNotes     string           `json:"closingNotes"`
	AuditFields
}

// OpenMoneyBoxParams describes a new money box.
type OpenMoneyBoxParams struct {
	MoneyBoxID       string
	OpeningTxnID     string
	PharmacyID       string
	Currency         string
	OpeningBalance   decimal.Decimal
	BusinessDate     time.Time
	PeriodType       PeriodType
	ParentMoneyBoxID *string
	Notes            string
	Conversion       *CurrencyConversion // set when the opening balance was given in another currency
	ActorID          string
}

// OpenMoneyBox builds an OPEN box with zeroed totals and the OPENING_BALANCE log row.
func OpenMoneyBox(p OpenMoneyBoxParams, now time.Time) (MoneyBox, MoneyBoxTransaction, error) {
	if strings.TrimSpace(p.PharmacyID) == "" {
		return MoneyBox{}, MoneyBoxTransaction{}, apperrors.NewValidationError("pharmacy id is required")
	}
	if p.OpeningBalance.IsNegative() {
		return MoneyBox{}, MoneyBoxTransaction{}, apperrors.NewValidationError("opening balance cannot be negative")
	}
	if err := ValidateAmountPrecision(p.OpeningBalance, p.Currency); err != nil {
		return MoneyBox{}, MoneyBoxTransaction{}, err
	}
	if p.PeriodType == "" {
		p.PeriodType = PeriodDaily
	}
	businessDate := p.BusinessDate
	if businessDate.IsZero() {
		businessDate = now
	}
	businessDate = time.Date(businessDate.Year(), businessDate.Month(), businessDate.Day(), 0, 0, 0, 0, time.UTC)

	box := MoneyBox{
		MoneyBoxID:       p.MoneyBoxID,
		PharmacyID:       p.PharmacyID,
		BusinessDate:     businessDate,
		PeriodType:       p.PeriodType,
		ParentMoneyBoxID: p.ParentMoneyBoxID,
		Currency:         p.Currency,
		Status:           MoneyBoxOpen,
		OpeningBalance:   p.OpeningBalance,
		ClosingBalance:   p.OpeningBalance,
		ExpectedBalance:  p.OpeningBalance,
		TotalCashIn:      decimal.Zero,
		TotalCashOut:     decimal.Zero,
		NetCashFlow:      decimal.Zero,
		TransactionCount: 1,
		OpenedAt:         now,
		OpenedBy:         p.ActorID,
		OpeningNotes:     p.Notes,
		AuditFields:      NewAuditFields(p.ActorID, now),
	}

	description := "Initial money box balance"
	if p.Notes != "" {
		description = p.Notes
	}
	opening := MoneyBoxTransaction{
		TransactionID:   p.OpeningTxnID,
		MoneyBoxID:      p.MoneyBoxID,
		SequenceNo:      1,
		TransactionType: OpeningBalance,
		Amount:          p.OpeningBalance,
		BalanceBefore:   decimal.Zero,
		BalanceAfter:    p.OpeningBalance,
		Currency:        p.Currency,
		Description:     description,
		Conversion:      p.Conversion,
		CreatedAt:       now,
		CreatedBy:       p.ActorID,
	}
	return box, opening, nil
}

// CurrentBalance is openingBalance + totalCashIn - totalCashOut.
func (b MoneyBox) CurrentBalance() decimal.Decimal {
	return b.OpeningBalance.Add(b.TotalCashIn).Sub(b.TotalCashOut)
}

// IsOpen reports whether the box accepts postings.
func (b MoneyBox) IsOpen() bool {
	return b.Status == MoneyBoxOpen
}

// Posting is a request to append one balance-affecting event, with Amount already
// expressed in the box currency.
type Posting struct {
	TransactionID string
	Type          TransactionType
	Amount        decimal.Decimal
	Description   string
	ReferenceID   *string
	ReferenceType *string
	Conversion    *CurrencyConversion
	ActorID       string
}

// Post validates and applies a posting to an OPEN box, returning the log row. The box is
// left untouched when an error is returned.
func (b *MoneyBox) Post(p Posting, policy LedgerPolicy, now time.Time) (MoneyBoxTransaction, error) {
	if !b.IsOpen() {
		return MoneyBoxTransaction{}, apperrors.NewInvalidStateError(fmt.Sprintf("money box %s is %s, not OPEN", b.MoneyBoxID, b.Status))
	}
	if p.Type == OpeningBalance {
		return MoneyBoxTransaction{}, apperrors.NewValidationError("OPENING_BALANCE is written only when a money box is opened")
	}
	if p.Amount.IsZero() {
		return MoneyBoxTransaction{}, apperrors.NewValidationError("transaction amount cannot be zero")
	}
	if err := ValidateAmountPrecision(p.Amount, b.Currency); err != nil {
		return MoneyBoxTransaction{}, err
	}
	signed, err := SignedAmount(p.Type, p.Amount)
	if err != nil {
		return MoneyBoxTransaction{}, err
	}
	if !policy.AllowNegativeBalance && b.CurrentBalance().Add(signed).IsNegative() {
		return MoneyBoxTransaction{}, apperrors.NewValidationError(fmt.Sprintf("transaction would leave a negative balance of %s", b.CurrentBalance().Add(signed).String()))
	}
	return b.apply(p, signed, now), nil
}

// apply moves the running totals by signed and builds the log row. Callers validate first.
func (b *MoneyBox) apply(p Posting, signed decimal.Decimal, now time.Time) MoneyBoxTransaction {
	before := b.CurrentBalance()
	if signed.IsPositive() {
		b.TotalCashIn = b.TotalCashIn.Add(signed)
	} else {
		b.TotalCashOut = b.TotalCashOut.Add(signed.Abs())
	}
	b.NetCashFlow = b.TotalCashIn.Sub(b.TotalCashOut)
	b.ClosingBalance = b.CurrentBalance()
	b.TransactionCount++
	b.Touch(p.ActorID, now)

	return MoneyBoxTransaction{
		TransactionID:   p.TransactionID,
		MoneyBoxID:      b.MoneyBoxID,
		SequenceNo:      b.TransactionCount,
		TransactionType: p.Type,
		Amount:          p.Amount,
		BalanceBefore:   before,
		BalanceAfter:    b.ClosingBalance,
		Currency:        b.Currency,
		Description:     p.Description,
		ReferenceID:     p.ReferenceID,
		ReferenceType:   p.ReferenceType,
		Conversion:      p.Conversion,
		CreatedAt:       now,
		CreatedBy:       p.ActorID,
	}
}

// Close moves an OPEN box to CLOSED and freezes its expected balance.
func (b *MoneyBox) Close(notes, actorID string, now time.Time) error {
	if !b.IsOpen() {
		return apperrors.NewInvalidStateError(fmt.Sprintf("money box %s is %s, only OPEN boxes can be closed", b.MoneyBoxID, b.Status))
	}
	b.Status = MoneyBoxClosed
	b.ExpectedBalance = b.CurrentBalance()
	b.ClosedAt = &now
	b.ClosedBy = &actorID
	b.ClosingNotes = notes
	b.Touch(actorID, now)
	return nil
}

// Reconcile matches the ledger against a physical cash count. When the count differs from
// the computed balance an ADJUSTMENT row for the signed delta is returned; otherwise nil.
// Reconciliation is allowed from OPEN or CLOSED.
func (b *MoneyBox) Reconcile(actualCashCount decimal.Decimal, notes, adjustmentTxnID, actorID string, now time.Time) (*MoneyBoxTransaction, error) {
	if b.Status == MoneyBoxReconciled {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("money box %s is already reconciled", b.MoneyBoxID))
	}
	if actualCashCount.IsNegative() {
		return nil, apperrors.NewValidationError("actual cash count cannot be negative")
	}
	if strings.TrimSpace(notes) == "" {
		return nil, apperrors.NewValidationError("reconciliation notes cannot be empty")
	}
	if err := ValidateAmountPrecision(actualCashCount, b.Currency); err != nil {
		return nil, err
	}

	var adjustment *MoneyBoxTransaction
	delta := actualCashCount.Sub(b.CurrentBalance())
	if !delta.IsZero() {
		refType := ReferenceReconciliation
		row := b.apply(Posting{
			TransactionID: adjustmentTxnID,
			Type:          Adjustment,
			Amount:        delta,
			Description:   "Cash reconciliation adjustment: " + notes,
			ReferenceType: &refType,
			ActorID:       actorID,
		}, delta, now)
		adjustment = &row
	}

	actual := actualCashCount
	b.ActualBalance = &actual
	b.ExpectedBalance = b.CurrentBalance()
	b.Status = MoneyBoxReconciled
	b.ClosingNotes = notes
	b.ReconciledAt = &now
	b.ReconciledBy = &actorID
	b.Touch(actorID, now)
	return adjustment, nil
}

// MoneyBoxView is a money box with best-effort conversions of its current balance into
// display currencies. Currencies without an active rate are omitted.
type MoneyBoxView struct {
	MoneyBox
	DisplayBalances []CurrencyConversion
}
