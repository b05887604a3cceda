package dto

import (
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMoneyBoxRequest defines the body for opening a money box.
type CreateMoneyBoxRequest struct {
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	Currency         string          `json:"currency" binding:"omitempty,currency"`
	Notes            string          `json:"notes" binding:"max=500"`
	BusinessDate     string          `json:"businessDate"` // RFC3339 or YYYY-MM-DD, defaults to today
	PeriodType       string          `json:"periodType" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	ParentMoneyBoxID *string         `json:"parentMoneyBoxId" binding:"omitempty,uuid"`
}

// AddTransactionRequest describes a manual or integration posting.
type AddTransactionRequest struct {
	Amount          decimal.Decimal `form:"amount" json:"amount"`
	TransactionType string          `form:"transactionType" json:"transactionType" binding:"omitempty,txntype"`
	Description     string          `form:"description" json:"description" binding:"max=500"`
	Currency        string          `form:"currency" json:"currency" binding:"omitempty,currency"`
	ReferenceID     *string         `form:"referenceId" json:"referenceId"`
	ReferenceType   *string         `form:"referenceType" json:"referenceType"`
}

// ReconcileCashRequest carries the physical cash count.
type ReconcileCashRequest struct {
	ActualCashCount *decimal.Decimal `form:"actualCashCount" json:"actualCashCount" binding:"required"`
	Notes           string           `form:"notes" json:"notes" binding:"required,max=500"`
}

// CloseMoneyBoxRequest carries the closing notes.
type CloseMoneyBoxRequest struct {
	Notes string `form:"notes" json:"notes" binding:"max=500"`
}

// ListMoneyBoxTransactionsRequest narrows and pages the transaction listing.
type ListMoneyBoxTransactionsRequest struct {
	StartDate       *time.Time
	EndDate         *time.Time
	TransactionType string
	Limit           int
	NextToken       *string
}

// SalePaymentRequest is sent by the sales flow when a sale is paid in cash.
type SalePaymentRequest struct {
	SaleID      string           `json:"saleId" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Currency    string           `json:"currency" binding:"omitempty,currency"`
	Description string           `json:"description" binding:"max=500"`
	CustomerID  *string          `json:"customerId"`
	DebtAmount  *decimal.Decimal `json:"debtAmount"`
}

// PurchasePaymentRequest is sent by the purchasing flow when a supplier invoice is paid.
type PurchasePaymentRequest struct {
	PurchaseID  string          `json:"purchaseId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currency"`
	Description string          `json:"description" binding:"max=500"`
}

// SaleRefundRequest is sent by the returns flow when cash is handed back.
type SaleRefundRequest struct {
	ReturnID    string          `json:"returnId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currency"`
	Description string          `json:"description" binding:"max=500"`
}

// DisplayBalanceResponse is the box balance expressed in another currency.
type DisplayBalanceResponse struct {
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	ExchangeRateID *string         `json:"exchangeRateID,omitempty"`
}

// MoneyBoxResponse defines the API representation of a money box.
type MoneyBoxResponse struct {
	MoneyBoxID       string                   `json:"moneyBoxID"`
	PharmacyID       string                   `json:"pharmacyID"`
	BusinessDate     string                   `json:"businessDate"`
	PeriodType       string                   `json:"periodType"`
	ParentMoneyBoxID *string                  `json:"parentMoneyBoxID,omitempty"`
	Currency         string                   `json:"currency"`
	Status           string                   `json:"status"`
	OpeningBalance   decimal.Decimal          `json:"openingBalance"`
	CurrentBalance   decimal.Decimal          `json:"currentBalance"`
	ClosingBalance   decimal.Decimal          `json:"closingBalance"`
	ExpectedBalance  decimal.Decimal          `json:"expectedBalance"`
	ActualBalance    *decimal.Decimal         `json:"actualBalance,omitempty"`
	TotalCashIn      decimal.Decimal          `json:"totalCashIn"`
	TotalCashOut     decimal.Decimal          `json:"totalCashOut"`
	NetCashFlow      decimal.Decimal          `json:"netCashFlow"`
	TransactionCount int64                    `json:"transactionCount"`
	OpenedAt         time.Time                `json:"openedAt"`
	OpenedBy         string                   `json:"openedBy"`
	ClosedAt         *time.Time               `json:"closedAt,omitempty"`
	ClosedBy         *string                  `json:"closedBy,omitempty"`
	ReconciledAt     *time.Time               `json:"reconciledAt,omitempty"`
	ReconciledBy     *string                  `json:"reconciledBy,omitempty"`
	OpeningNotes     string                   `json:"openingNotes,omitempty"`
	ClosingNotes     string                   `json:"closingNotes,omitempty"`
	DisplayBalances  []DisplayBalanceResponse `json:"displayBalances,omitempty"`
	LastUpdatedAt    time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy    string                   `json:"lastUpdatedBy"`
}

// MoneyBoxTransactionResponse defines the API representation of a log row.
type MoneyBoxTransactionResponse struct {
	TransactionID    string           `json:"transactionID"`
	MoneyBoxID       string           `json:"moneyBoxID"`
	SequenceNo       int64            `json:"sequenceNo"`
	TransactionType  string           `json:"transactionType"`
	Amount           decimal.Decimal  `json:"amount"`
	BalanceBefore    decimal.Decimal  `json:"balanceBefore"`
	BalanceAfter     decimal.Decimal  `json:"balanceAfter"`
	Currency         string           `json:"currency"`
	Description      string           `json:"description,omitempty"`
	ReferenceID      *string          `json:"referenceId,omitempty"`
	ReferenceType    *string          `json:"referenceType,omitempty"`
	OriginalAmount   *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrency *string          `json:"originalCurrency,omitempty"`
	ExchangeRate     *decimal.Decimal `json:"exchangeRate,omitempty"`
	ExchangeRateID   *string          `json:"exchangeRateID,omitempty"`
	ConversionTime   *time.Time       `json:"conversionTime,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	CreatedBy        string           `json:"createdBy"`
}

// PostingResponse is returned by every balance-mutating endpoint.
type PostingResponse struct {
	MoneyBox    MoneyBoxResponse             `json:"moneyBox"`
	Transaction *MoneyBoxTransactionResponse `json:"transaction,omitempty"`
}

// SalePaymentResponse adds the outcome of the debt side effect.
type SalePaymentResponse struct {
	PostingResponse
	DebtRecorded bool `json:"debtRecorded"`
}

// MoneyBoxSummaryResponse defines the API representation of a period summary.
type MoneyBoxSummaryResponse struct {
	MoneyBoxID          string          `json:"moneyBoxID"`
	Currency            string          `json:"currency"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	TotalCashIn         decimal.Decimal `json:"totalCashIn"`
	TotalCashOut        decimal.Decimal `json:"totalCashOut"`
	NetCashFlow         decimal.Decimal `json:"netCashFlow"`
	TransactionCount    int64           `json:"transactionCount"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	StartDate           time.Time       `json:"startDate"`
	EndDate             time.Time       `json:"endDate"`
}

// ListMoneyBoxTransactionsResponse wraps a page of log rows.
type ListMoneyBoxTransactionsResponse struct {
	Transactions []MoneyBoxTransactionResponse `json:"transactions"`
	NextToken    *string                       `json:"nextToken,omitempty"`
}

// ToMoneyBoxResponse converts a domain.MoneyBox to its DTO.
func ToMoneyBoxResponse(box *domain.MoneyBox) MoneyBoxResponse {
	return MoneyBoxResponse{
		MoneyBoxID:       box.MoneyBoxID,
		PharmacyID:       box.PharmacyID,
		BusinessDate:     box.BusinessDate.Format(DateLayout),
		PeriodType:       string(box.PeriodType),
		ParentMoneyBoxID: box.ParentMoneyBoxID,
		Currency:         box.Currency,
		Status:           string(box.Status),
		OpeningBalance:   box.OpeningBalance,
		CurrentBalance:   box.CurrentBalance(),
		ClosingBalance:   box.ClosingBalance,
		ExpectedBalance:  box.ExpectedBalance,
		ActualBalance:    box.ActualBalance,
		TotalCashIn:      box.TotalCashIn,
		TotalCashOut:     box.TotalCashOut,
		NetCashFlow:      box.NetCashFlow,
		TransactionCount: box.TransactionCount,
		OpenedAt:         box.OpenedAt,
		OpenedBy:         box.OpenedBy,
		ClosedAt:         box.ClosedAt,
		ClosedBy:         box.ClosedBy,
		ReconciledAt:     box.ReconciledAt,
		ReconciledBy:     box.ReconciledBy,
		OpeningNotes:     box.OpeningNotes,
		ClosingNotes:     box.ClosingNotes,
		LastUpdatedAt:    box.LastUpdatedAt,
		LastUpdatedBy:    box.LastUpdatedBy,
	}
}

// ToMoneyBoxViewResponse converts a domain.MoneyBoxView, display balances included.
func ToMoneyBoxViewResponse(view *domain.MoneyBoxView) MoneyBoxResponse {
	resp := ToMoneyBoxResponse(&view.MoneyBox)
	for _, c := range view.DisplayBalances {
		resp.DisplayBalances = append(resp.DisplayBalances, DisplayBalanceResponse{
			Currency:       c.ToCurrency,
			Amount:         c.ConvertedAmount,
			ExchangeRate:   c.Rate,
			ExchangeRateID: c.ExchangeRateID,
		})
	}
	return resp
}

// ToMoneyBoxTransactionResponse converts a domain.MoneyBoxTransaction to its DTO.
func ToMoneyBoxTransactionResponse(t *domain.MoneyBoxTransaction) MoneyBoxTransactionResponse {
	resp := MoneyBoxTransactionResponse{
		TransactionID:   t.TransactionID,
		MoneyBoxID:      t.MoneyBoxID,
		SequenceNo:      t.SequenceNo,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		BalanceBefore:   t.BalanceBefore,
		BalanceAfter:    t.BalanceAfter,
		Currency:        t.Currency,
		Description:     t.Description,
		ReferenceID:     t.ReferenceID,
		ReferenceType:   t.ReferenceType,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
	if c := t.Conversion; c != nil {
		resp.OriginalAmount = &c.OriginalAmount
		resp.OriginalCurrency = &c.FromCurrency
		resp.ExchangeRate = &c.Rate
		resp.ExchangeRateID = c.ExchangeRateID
		resp.ConversionTime = &c.ConvertedAt
	}
	return resp
}

// ToMoneyBoxTransactionResponses converts a slice of log rows.
func ToMoneyBoxTransactionResponses(rows []domain.MoneyBoxTransaction) []MoneyBoxTransactionResponse {
	responses := make([]MoneyBoxTransactionResponse, len(rows))
	for i := range rows {
		responses[i] = ToMoneyBoxTransactionResponse(&rows[i])
	}
	return responses
}

// ToPostingResponse converts a domain.PostingResult to its DTO.
func ToPostingResponse(result *domain.PostingResult) PostingResponse {
	resp := PostingResponse{MoneyBox: ToMoneyBoxResponse(&result.MoneyBox)}
	if result.Transaction != nil {
		txn := ToMoneyBoxTransactionResponse(result.Transaction)
		resp.Transaction = &txn
	}
	return resp
}

// ToMoneyBoxSummaryResponse converts a domain.MoneyBoxSummary to its DTO.
func ToMoneyBoxSummaryResponse(s *domain.MoneyBoxSummary) MoneyBoxSummaryResponse {
	return MoneyBoxSummaryResponse{
		MoneyBoxID:          s.MoneyBoxID,
		Currency:            s.Currency,
		OpeningBalance:      s.OpeningBalance,
		CurrentBalance:      s.CurrentBalance,
		TotalCashIn:         s.TotalCashIn,
		TotalCashOut:        s.TotalCashOut,
		NetCashFlow:         s.NetCashFlow,
		TransactionCount:    s.TransactionCount,
		LastTransactionDate: s.LastTransactionDate,
		StartDate:           s.StartDate,
		EndDate:             s.EndDate,
	}
}

// ToSalePaymentResponse converts a domain.SalePaymentResult to its DTO.
func ToSalePaymentResponse(result *domain.SalePaymentResult) SalePaymentResponse {
	return SalePaymentResponse{
		PostingResponse: ToPostingResponse(&result.PostingResult),
		DebtRecorded:    result.DebtRecorded,
	}
}

// ChainReportResponse is the outcome of replaying the current box's log.
type ChainReportResponse struct {
	MoneyBoxID       string          `json:"moneyBoxID"`
	Consistent       bool            `json:"consistent"`
	Balance          decimal.Decimal `json:"balance"`
	TotalCashIn      decimal.Decimal `json:"totalCashIn"`
	TotalCashOut     decimal.Decimal `json:"totalCashOut"`
	TransactionCount int64           `json:"transactionCount"`
	Problems         []string        `json:"problems,omitempty"`
}

// ToChainReportResponse converts a domain.ChainReport to its DTO.
func ToChainReportResponse(r *domain.ChainReport) ChainReportResponse {
	return ChainReportResponse{
		MoneyBoxID:       r.MoneyBoxID,
		Consistent:       r.OK(),
		Balance:          r.Balance,
		TotalCashIn:      r.TotalCashIn,
		TotalCashOut:     r.TotalCashOut,
		TransactionCount: r.TransactionCount,
		Problems:         r.Problems,
	}
}
