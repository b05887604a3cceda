package services_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// fixedBase returns a BaseService with a frozen clock and predictable IDs.
func fixedBase() services.BaseService {
	var seq atomic.Int64
	return services.BaseService{
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { return fmt.Sprintf("id-%d", seq.Add(1)) },
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindActiveExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListActiveExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ReplaceActiveExchangeRate(ctx context.Context, next domain.ExchangeRate) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID, actorID string, now time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock MoneyBoxRepository ---

// MockMoneyBoxRepository runs mutations against the box pointer configured with Return.
// The mutation sees a copy that is written back only on success, like a rolled back tx.
type MockMoneyBoxRepository struct {
	mock.Mock
	Appended []domain.MoneyBoxTransaction
}

func (m *MockMoneyBoxRepository) FindCurrentMoneyBox(ctx context.Context, pharmacyID string) (*domain.MoneyBox, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	box := *args.Get(0).(*domain.MoneyBox)
	return &box, args.Error(1)
}

func (m *MockMoneyBoxRepository) FindMoneyBoxByID(ctx context.Context, moneyBoxID string) (*domain.MoneyBox, error) {
	args := m.Called(ctx, moneyBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyBox), args.Error(1)
}

func (m *MockMoneyBoxRepository) CreateMoneyBox(ctx context.Context, box domain.MoneyBox, opening domain.MoneyBoxTransaction) error {
	args := m.Called(ctx, box, opening)
	return args.Error(0)
}

func (m *MockMoneyBoxRepository) UpdateCurrentMoneyBox(ctx context.Context, pharmacyID string, mutate portsrepo.MoneyBoxMutation) (*domain.MoneyBox, []domain.MoneyBoxTransaction, error) {
	args := m.Called(ctx, pharmacyID)
	if err := args.Error(1); err != nil {
		return nil, nil, err
	}
	stored := args.Get(0).(*domain.MoneyBox)
	working := *stored
	rows, err := mutate(ctx, &working)
	if err != nil {
		return nil, nil, err
	}
	*stored = working
	m.Appended = append(m.Appended, rows...)
	result := working
	return &result, rows, nil
}

func (m *MockMoneyBoxRepository) ListMoneyBoxTransactions(ctx context.Context, moneyBoxID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.MoneyBoxTransaction, *string, error) {
	args := m.Called(ctx, moneyBoxID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.MoneyBoxTransaction), next, args.Error(2)
}

func (m *MockMoneyBoxRepository) FindTransactionsByMoneyBoxID(ctx context.Context, moneyBoxID string) ([]domain.MoneyBoxTransaction, error) {
	args := m.Called(ctx, moneyBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoneyBoxTransaction), args.Error(1)
}

func (m *MockMoneyBoxRepository) FindTransactionsByPharmacyAndPeriod(ctx context.Context, pharmacyID string, start, end time.Time) ([]domain.MoneyBoxTransaction, error) {
	args := m.Called(ctx, pharmacyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoneyBoxTransaction), args.Error(1)
}

// --- Mock CurrencyConverter ---
type MockCurrencyConverter struct {
	mock.Mock
}

func (m *MockCurrencyConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*domain.CurrencyConversion, error) {
	args := m.Called(ctx, amount.String(), fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyConversion), args.Error(1)
}

// --- Mock MoneyBoxWriter ---
type MockMoneyBoxWriter struct {
	mock.Mock
}

func (m *MockMoneyBoxWriter) CreateMoneyBox(ctx context.Context, pharmacyID string, req dto.CreateMoneyBoxRequest, actorID string) (*domain.MoneyBox, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyBox), args.Error(1)
}

func (m *MockMoneyBoxWriter) AddTransaction(ctx context.Context, pharmacyID string, req dto.AddTransactionRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockMoneyBoxWriter) ReconcileCash(ctx context.Context, pharmacyID string, req dto.ReconcileCashRequest, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockMoneyBoxWriter) CloseMoneyBox(ctx context.Context, pharmacyID string, req dto.CloseMoneyBoxRequest, actorID string) (*domain.MoneyBox, error) {
	args := m.Called(ctx, pharmacyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoneyBox), args.Error(1)
}

// --- Mock CustomerDebtWriter ---
type MockCustomerDebtRepository struct {
	mock.Mock
}

func (m *MockCustomerDebtRepository) SaveCustomerDebt(ctx context.Context, debt domain.CustomerDebt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}
