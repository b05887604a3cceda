package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reference types linking a ledger row back to the originating record.
const (
	ReferenceSaleInvoice     = "SALE_INVOICE"
	ReferencePurchaseInvoice = "PURCHASE_INVOICE"
	ReferenceCustomerReturn  = "CUSTOMER_RETURN"
	ReferenceCashMovement    = "CASH_MOVEMENT"
	ReferenceReconciliation  = "RECONCILIATION"
)

// MoneyBoxTransaction is one immutable, balance-affecting event in a money box log.
// BalanceAfter always equals BalanceBefore plus the signed amount.
type MoneyBoxTransaction struct {
	TransactionID   string          `json:"transactionID"`
	MoneyBoxID      string          `json:"moneyBoxID"`
	SequenceNo      int64           `json:"sequenceNo"` // 1..n per box, commit order
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"` // box currency; signed only for ADJUSTMENT
	BalanceBefore   decimal.Decimal `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	ReferenceID     *string         `json:"referenceID"`
	ReferenceType   *string         `json:"referenceType"`
	Conversion      *CurrencyConversion `json:"conversion"` // nil when posted in the box currency
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// SignedAmount returns the effect the row had on the running balance.
func (t MoneyBoxTransaction) SignedAmount() decimal.Decimal {
	return t.BalanceAfter.Sub(t.BalanceBefore)
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	From *time.Time
	To   *time.Time
	Type *TransactionType
}

// PostingResult is returned by balance-mutating ledger operations.
type PostingResult struct {
	MoneyBox    MoneyBox
	Transaction *MoneyBoxTransaction // nil when the operation posted nothing
}

// SalePaymentResult reports a sale posting and whether its debt side effect was recorded.
type SalePaymentResult struct {
	PostingResult
	DebtRecorded bool
}
