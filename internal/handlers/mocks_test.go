package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock MoneyBoxService ---
type MockMoneyBoxService struct {
	mock.Mock
}

func (m *MockMoneyBoxService) GetCurrentMoneyBox(ctx context.Context, pharmacyID string) (*domain.MoneyBoxView, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyBoxView), args.Error(1)
}

func (m *MockMoneyBoxService) GetPeriodSummary(ctx context.Context, pharmacyID string, start, end *time.Time) (*domain.MoneyBoxSummary, error) {
	args := m.Called(ctx, pharmacyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyBoxSummary), args.Error(1)
}

func (m *MockMoneyBoxService) ListTransactions(ctx context.Context, pharmacyID string, req dto.ListMoneyBoxTransactionsRequest) ([]domain.MoneyBoxTransaction, *string, error) {
	args := m.Called(ctx, pharmacyID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.MoneyBoxTransaction), next, args.Error(2)
}

func (m *MockMoneyBoxService) VerifyMoneyBox(ctx context.Context, pharmacyID string) (*domain.ChainReport, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChainReport), args.Error(1)
}

func (m *MockMoneyBoxService) CreateMoneyBox(ctx context.Context, pharmacyID string, req dto.CreateMoneyBoxRequest, actorID string) (*domain.MoneyBox, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyBox), args.Error(1)
}

func (m *MockMoneyBoxService) AddTransaction(ctx context.Context, pharmacyID string, req dto.AddTransactionRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockMoneyBoxService) ReconcileCash(ctx context.Context, pharmacyID string, req dto.ReconcileCashRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockMoneyBoxService) CloseMoneyBox(ctx context.Context, pharmacyID string, req dto.CloseMoneyBoxRequest, actorID string) (*domain.MoneyBox, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyBox), args.Error(1)
}

var _ portssvc.MoneyBoxSvcFacade = (*MockMoneyBoxService)(nil)

// --- Mock IntegrationService ---
type MockIntegrationService struct {
	mock.Mock
}

func (m *MockIntegrationService) RecordSalePayment(ctx context.Context, pharmacyID string, req dto.SalePaymentRequest, actorID string) (*domain.SalePaymentResult, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalePaymentResult), args.Error(1)
}

func (m *MockIntegrationService) RecordPurchasePayment(ctx context.Context, pharmacyID string, req dto.PurchasePaymentRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockIntegrationService) RecordSaleRefund(ctx context.Context, pharmacyID string, req dto.SaleRefundRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

var _ portssvc.IntegrationSvc = (*MockIntegrationService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetActiveRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) SetRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) DeactivateRate(ctx context.Context, rateID, actorID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*domain.CurrencyConversion, error) {
	args := m.Called(ctx, amount.String(), fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyConversion), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)
