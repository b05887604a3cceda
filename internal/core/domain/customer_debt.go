package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDebt is the unpaid remainder of a sale owed by a customer.
type CustomerDebt struct {
	CustomerDebtID string          `json:"customerDebtID"`
	PharmacyID     string          `json:"pharmacyID"`
	CustomerID     string          `json:"customerID"`
	ReferenceID    string          `json:"referenceID"`
	ReferenceType  string          `json:"referenceType"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}
