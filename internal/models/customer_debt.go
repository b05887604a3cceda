package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDebt is a row of customer_debts.
type CustomerDebt struct {
	CustomerDebtID string          `db:"customer_debt_id"`
	PharmacyID     string          `db:"pharmacy_id"`
	CustomerID     string          `db:"customer_id"`
	ReferenceID    string          `db:"reference_id"`
	ReferenceType  string          `db:"reference_type"`
	Amount         decimal.Decimal `db:"amount"`
	Currency       string          `db:"currency"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
