package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/shopspring/decimal"
)

// integrationService posts the cash side of sales, purchases and refunds.
type integrationService struct {
	BaseService
	ledger   portssvc.MoneyBoxWriterSvc
	debtRepo portsrepo.CustomerDebtWriter
}

// IntegrationServiceOption is a functional option for configuring the integration service
type IntegrationServiceOption func(*integrationService)

// WithIntegrationBase overrides the clock and ID generator.
func WithIntegrationBase(base BaseService) IntegrationServiceOption {
	return func(s *integrationService) {
		s.BaseService = base
	}
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(ledger portssvc.MoneyBoxWriterSvc, debtRepo portsrepo.CustomerDebtWriter, options ...IntegrationServiceOption) portssvc.IntegrationSvc {
	svc := &integrationService{
		BaseService: newBaseService(),
		ledger:      ledger,
		debtRepo:    debtRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IntegrationSvc = (*integrationService)(nil)

func referenceOf(id, refType string) (*string, *string) {
	return &id, &refType
}

func descriptionOr(desc, fallback string) string {
	if d := strings.TrimSpace(desc); d != "" {
		return d
	}
	return fallback
}

// RecordSalePayment posts the cash received for a sale. The optional customer debt is a
// non-critical side effect: its failure is logged and reported, never returned.
func (s *integrationService) RecordSalePayment(ctx context.Context, pharmacyID string, req dto.SalePaymentRequest, actorID string) (*domain.SalePaymentResult, error) {
	hasDebt := req.DebtAmount != nil && !req.DebtAmount.IsZero()
	if hasDebt {
		if req.DebtAmount.IsNegative() {
			return nil, apperrors.NewValidationError("debt amount cannot be negative")
		}
		if req.CustomerID == nil || strings.TrimSpace(*req.CustomerID) == "" {
			return nil, apperrors.NewValidationError("customer id is required when a debt amount is given")
		}
	}

	refID, refType := referenceOf(req.SaleID, domain.ReferenceSaleInvoice)
	posted, err := s.ledger.AddTransaction(ctx, pharmacyID, dto.AddTransactionRequest{
		Amount:          req.Amount,
		TransactionType: string(domain.SalePayment),
		Description:     descriptionOr(req.Description, "Sale payment "+req.SaleID),
		Currency:        req.Currency,
		ReferenceID:     refID,
		ReferenceType:   refType,
	}, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment for sale %s: %w", req.SaleID, err)
	}

	result := &domain.SalePaymentResult{PostingResult: *posted}
	if !hasDebt {
		return result, nil
	}

	currency := posted.MoneyBox.Currency
	if req.Currency != "" {
		currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	}
	debt := domain.CustomerDebt{
		CustomerDebtID: s.NewID(),
		PharmacyID:     pharmacyID,
		CustomerID:     strings.TrimSpace(*req.CustomerID),
		ReferenceID:    req.SaleID,
		ReferenceType:  domain.ReferenceSaleInvoice,
		Amount:         *req.DebtAmount,
		Currency:       currency,
		CreatedAt:      s.Now(),
		CreatedBy:      actorID,
	}
	if err := s.debtRepo.SaveCustomerDebt(ctx, debt); err != nil {
		nonCritical := apperrors.NewNonCriticalError("failed to record customer debt", err)
		s.LogError(ctx, nonCritical, "Customer debt not recorded, sale payment kept",
			slog.String("sale_id", req.SaleID),
			slog.String("customer_id", debt.CustomerID),
			slog.String("debt_amount", debt.Amount.String()))
		return result, nil
	}

	result.DebtRecorded = true
	s.LogInfo(ctx, "Customer debt recorded",
		slog.String("sale_id", req.SaleID),
		slog.String("customer_debt_id", debt.CustomerDebtID))
	return result, nil
}

// RecordPurchasePayment posts the cash paid for a supplier invoice.
func (s *integrationService) RecordPurchasePayment(ctx context.Context, pharmacyID string, req dto.PurchasePaymentRequest, actorID string) (*domain.PostingResult, error) {
	result, err := s.post(ctx, pharmacyID, domain.PurchasePayment, req.Amount, req.Currency,
		descriptionOr(req.Description, "Purchase payment "+req.PurchaseID), req.PurchaseID, domain.ReferencePurchaseInvoice, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment for purchase %s: %w", req.PurchaseID, err)
	}
	return result, nil
}

// RecordSaleRefund posts the cash handed back for a customer return.
func (s *integrationService) RecordSaleRefund(ctx context.Context, pharmacyID string, req dto.SaleRefundRequest, actorID string) (*domain.PostingResult, error) {
	result, err := s.post(ctx, pharmacyID, domain.SaleRefund, req.Amount, req.Currency,
		descriptionOr(req.Description, "Sale refund "+req.ReturnID), req.ReturnID, domain.ReferenceCustomerReturn, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to record refund %s: %w", req.ReturnID, err)
	}
	return result, nil
}

func (s *integrationService) post(ctx context.Context, pharmacyID string, txType domain.TransactionType, amount decimal.Decimal, currency, description, refID, refType, actorID string) (*domain.PostingResult, error) {
	id, typ := referenceOf(refID, refType)
	return s.ledger.AddTransaction(ctx, pharmacyID, dto.AddTransactionRequest{
		Amount:          amount,
		TransactionType: string(txType),
		Description:     description,
		Currency:        currency,
		ReferenceID:     id,
		ReferenceType:   typ,
	}, actorID)
}
