package services

import (
	"context"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
)

// MoneyBoxReaderSvc defines read operations for money boxes and their log
type MoneyBoxReaderSvc interface {
	// GetCurrentMoneyBox retrieves the most recently opened box of the pharmacy.
	GetCurrentMoneyBox(ctx context.Context, pharmacyID string) (*domain.MoneyBoxView, error)

	// GetPeriodSummary aggregates the pharmacy's log rows created in [start, end].
	// Missing bounds default to the current box's opening time and now.
	GetPeriodSummary(ctx context.Context, pharmacyID string, start, end *time.Time) (*domain.MoneyBoxSummary, error)

	// ListTransactions retrieves a page of the current box's rows, newest first.
	ListTransactions(ctx context.Context, pharmacyID string, req dto.ListMoneyBoxTransactionsRequest) ([]domain.MoneyBoxTransaction, *string, error)

	// VerifyMoneyBox replays the current box's log against its aggregate.
	VerifyMoneyBox(ctx context.Context, pharmacyID string) (*domain.ChainReport, error)
}

// MoneyBoxWriterSvc defines balance-mutating operations
type MoneyBoxWriterSvc interface {
	// CreateMoneyBox opens a new box for the pharmacy.
	CreateMoneyBox(ctx context.Context, pharmacyID string, req dto.CreateMoneyBoxRequest, actorID string) (*domain.MoneyBox, error)

	// AddTransaction posts one event to the pharmacy's open box.
	AddTransaction(ctx context.Context, pharmacyID string, req dto.AddTransactionRequest, actorID string) (*domain.PostingResult, error)

	// ReconcileCash matches the ledger against a physical cash count.
	ReconcileCash(ctx context.Context, pharmacyID string, req dto.ReconcileCashRequest, actorID string) (*domain.PostingResult, error)

	// CloseMoneyBox closes the pharmacy's open box.
	CloseMoneyBox(ctx context.Context, pharmacyID string, req dto.CloseMoneyBoxRequest, actorID string) (*domain.MoneyBox, error)
}

// MoneyBoxSvcFacade combines all money box-related service interfaces
type MoneyBoxSvcFacade interface {
	MoneyBoxReaderSvc
	MoneyBoxWriterSvc
}

// IntegrationSvc is called by the sale, purchase and refund flows. Ledger failures are
// returned so the caller can roll back the originating operation.
type IntegrationSvc interface {
	RecordSalePayment(ctx context.Context, pharmacyID string, req dto.SalePaymentRequest, actorID string) (*domain.SalePaymentResult, error)
	RecordPurchasePayment(ctx context.Context, pharmacyID string, req dto.PurchasePaymentRequest, actorID string) (*domain.PostingResult, error)
	RecordSaleRefund(ctx context.Context, pharmacyID string, req dto.SaleRefundRequest, actorID string) (*domain.PostingResult, error)
}
