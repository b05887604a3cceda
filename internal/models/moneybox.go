package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyBox is a row of money_boxes.
type MoneyBox struct {
	MoneyBoxID       string           `db:"money_box_id"`
	PharmacyID       string           `db:"pharmacy_id"`
	BusinessDate     time.Time        `db:"business_date"`
	PeriodType       string           `db:"period_type"`
	ParentMoneyBoxID *string          `db:"parent_money_box_id"` // Nullable
	Currency         string           `db:"currency"`
	Status           string           `db:"status"`
	OpeningBalance   decimal.Decimal  `db:"opening_balance"`
	ClosingBalance   decimal.Decimal  `db:"closing_balance"`
	ExpectedBalance  decimal.Decimal  `db:"expected_balance"`
	ActualBalance    *decimal.Decimal `db:"actual_balance"` // Nullable until reconciled
	TotalCashIn      decimal.Decimal  `db:"total_cash_in"`
	TotalCashOut     decimal.Decimal  `db:"total_cash_out"`
	NetCashFlow      decimal.Decimal  `db:"net_cash_flow"`
	TransactionCount int64            `db:"transaction_count"`
	OpenedAt         time.Time        `db:"opened_at"`
	OpenedBy         string           `db:"opened_by"`
	ClosedAt         *time.Time       `db:"closed_at"`
	ClosedBy         *string          `db:"closed_by"`
	ReconciledAt     *time.Time       `db:"reconciled_at"`
	ReconciledBy     *string          `db:"reconciled_by"`
	OpeningNotes     string           `db:"opening_notes"`
	ClosingNotes     string           `db:"closing_notes"`
	AuditFields
}

// MoneyBoxTransaction is a row of money_box_transactions. The conversion columns are
// all NULL when the amount was posted in the box currency.
type MoneyBoxTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	MoneyBoxID      string          `db:"money_box_id"`
	SequenceNo      int64           `db:"sequence_no"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	BalanceBefore   decimal.Decimal `db:"balance_before"`
	BalanceAfter    decimal.Decimal `db:"balance_after"`
	Currency        string          `db:"currency"`
	Description     string          `db:"description"`
	ReferenceID     *string         `db:"reference_id"`
	ReferenceType   *string         `db:"reference_type"`

	OriginalAmount   *decimal.Decimal `db:"original_amount"`
	OriginalCurrency *string          `db:"original_currency"`
	ExchangeRate     *decimal.Decimal `db:"exchange_rate"`
	ExchangeRateID   *string          `db:"exchange_rate_id"`
	ConversionTime   *time.Time       `db:"conversion_time"`
	RateSource       *string          `db:"rate_source"`

	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
