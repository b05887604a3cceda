package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/shopspring/decimal"
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 100
)

// moneyBoxService implements the MoneyBoxSvcFacade interface
type moneyBoxService struct {
	BaseService
	boxRepo           portsrepo.MoneyBoxRepositoryFacade
	converter         portssvc.CurrencyConverterSvc
	policy            domain.LedgerPolicy
	displayCurrencies []string
}

// MoneyBoxServiceOption is a functional option for configuring the money box service
type MoneyBoxServiceOption func(*moneyBoxService)

// WithLedgerPolicy sets the base currency and negative balance policy.
func WithLedgerPolicy(policy domain.LedgerPolicy) MoneyBoxServiceOption {
	return func(s *moneyBoxService) {
		s.policy = policy
	}
}

// WithDisplayCurrencies sets the currencies the current balance is also reported in.
func WithDisplayCurrencies(codes ...string) MoneyBoxServiceOption {
	return func(s *moneyBoxService) {
		s.displayCurrencies = codes
	}
}

// WithMoneyBoxBase overrides the clock and ID generator.
func WithMoneyBoxBase(base BaseService) MoneyBoxServiceOption {
	return func(s *moneyBoxService) {
		s.BaseService = base
	}
}

// NewMoneyBoxService creates a new money box service.
func NewMoneyBoxService(boxRepo portsrepo.MoneyBoxRepositoryFacade, converter portssvc.CurrencyConverterSvc, options ...MoneyBoxServiceOption) portssvc.MoneyBoxSvcFacade {
	svc := &moneyBoxService{
		BaseService: newBaseService(),
		boxRepo:     boxRepo,
		converter:   converter,
		policy:      domain.DefaultLedgerPolicy(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure moneyBoxService implements the MoneyBoxSvcFacade interface
var _ portssvc.MoneyBoxSvcFacade = (*moneyBoxService)(nil)

// convertInto converts amount given in currency into target. An empty currency means the
// amount is already in target and yields a nil conversion.
func (s *moneyBoxService) convertInto(ctx context.Context, amount decimal.Decimal, currency, target string) (decimal.Decimal, *domain.CurrencyConversion, error) {
	if strings.TrimSpace(currency) == "" {
		return amount, nil, nil
	}
	code, err := domain.NormalizeCurrencyCode(currency)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if code == target {
		return amount, nil, nil
	}
	if err := domain.ValidateAmountPrecision(amount, code); err != nil {
		return decimal.Zero, nil, err
	}
	conv, err := s.converter.Convert(ctx, amount, code, target)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to convert %s %s to %s: %w", amount.String(), code, target, err)
	}
	return conv.ConvertedAmount, conv, nil
}

// CreateMoneyBox opens a new box for the pharmacy in the base currency.
func (s *moneyBoxService) CreateMoneyBox(ctx context.Context, pharmacyID string, req dto.CreateMoneyBoxRequest, actorID string) (*domain.MoneyBox, error) {
	if req.OpeningBalance.IsNegative() {
		return nil, apperrors.NewValidationError("opening balance cannot be negative")
	}
	periodType, err := domain.ParsePeriodType(req.PeriodType)
	if err != nil {
		return nil, err
	}
	var businessDate time.Time
	if strings.TrimSpace(req.BusinessDate) != "" {
		if businessDate, err = dto.ParseDate(req.BusinessDate, false); err != nil {
			return nil, err
		}
	}

	current, err := s.boxRepo.FindCurrentMoneyBox(ctx, pharmacyID)
	switch {
	case err == nil && current.IsOpen():
		return nil, apperrors.NewConflictError(fmt.Sprintf("pharmacy already has an open money box %s", current.MoneyBoxID))
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up current money box", slog.String("pharmacy_id", pharmacyID))
		return nil, err
	}

	base := s.policy.BaseCurrency
	opening, conv, err := s.convertInto(ctx, req.OpeningBalance, req.Currency, base)
	if err != nil {
		return nil, err
	}

	box, openingRow, err := domain.OpenMoneyBox(domain.OpenMoneyBoxParams{
		MoneyBoxID:       s.NewID(),
		OpeningTxnID:     s.NewID(),
		PharmacyID:       pharmacyID,
		Currency:         base,
		OpeningBalance:   opening,
		BusinessDate:     businessDate,
		PeriodType:       periodType,
		ParentMoneyBoxID: req.ParentMoneyBoxID,
		Notes:            strings.TrimSpace(req.Notes),
		Conversion:       conv,
		ActorID:          actorID,
	}, s.Now())
	if err != nil {
		return nil, err
	}

	if err := s.boxRepo.CreateMoneyBox(ctx, box, openingRow); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to create money box", slog.String("pharmacy_id", pharmacyID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Money box opened",
		slog.String("money_box_id", box.MoneyBoxID),
		slog.String("pharmacy_id", pharmacyID),
		slog.String("opening_balance", box.OpeningBalance.String()),
		slog.String("currency", box.Currency))
	return &box, nil
}

// GetCurrentMoneyBox retrieves the most recently opened box and its display balances.
func (s *moneyBoxService) GetCurrentMoneyBox(ctx context.Context, pharmacyID string) (*domain.MoneyBoxView, error) {
	box, err := s.boxRepo.FindCurrentMoneyBox(ctx, pharmacyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find current money box", slog.String("pharmacy_id", pharmacyID))
		}
		return nil, err
	}

	view := &domain.MoneyBoxView{MoneyBox: *box}
	for _, code := range s.displayCurrencies {
		if code == box.Currency {
			continue
		}
		conv, err := s.converter.Convert(ctx, box.CurrentBalance(), box.Currency, code)
		if err != nil {
			s.LogDebug(ctx, "Skipping display currency", slog.String("currency", code), slog.String("reason", err.Error()))
			continue
		}
		view.DisplayBalances = append(view.DisplayBalances, *conv)
	}
	return view, nil
}

func resolveTransactionType(req dto.AddTransactionRequest) (domain.TransactionType, decimal.Decimal, error) {
	if strings.TrimSpace(req.TransactionType) == "" {
		switch {
		case req.Amount.IsPositive():
			return domain.CashDeposit, req.Amount, nil
		case req.Amount.IsNegative():
			return domain.CashWithdrawal, req.Amount.Abs(), nil
		}
		return "", decimal.Zero, apperrors.NewValidationError("transaction amount cannot be zero")
	}
	txType, err := domain.ParseTransactionType(req.TransactionType)
	if err != nil {
		return "", decimal.Zero, err
	}
	return txType, req.Amount, nil
}

// AddTransaction posts one event to the pharmacy's open box.
func (s *moneyBoxService) AddTransaction(ctx context.Context, pharmacyID string, req dto.AddTransactionRequest, actorID string) (*domain.PostingResult, error) {
	txType, amount, err := resolveTransactionType(req)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, apperrors.NewValidationError("transaction amount cannot be zero")
	}
	if _, err := domain.SignedAmount(txType, amount); err != nil {
		return nil, err
	}
	if txType == domain.OpeningBalance {
		return nil, apperrors.NewValidationError("OPENING_BALANCE is written only when a money box is opened")
	}

	// Resolve the box currency before taking the lock so conversion never runs under it.
	current, err := s.boxRepo.FindCurrentMoneyBox(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	if !current.IsOpen() {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("money box %s is %s, not OPEN", current.MoneyBoxID, current.Status))
	}
	boxAmount, conv, err := s.convertInto(ctx, amount, req.Currency, current.Currency)
	if err != nil {
		return nil, err
	}

	posting := domain.Posting{
		TransactionID: s.NewID(),
		Type:          txType,
		Amount:        boxAmount,
		Description:   strings.TrimSpace(req.Description),
		ReferenceID:   req.ReferenceID,
		ReferenceType: req.ReferenceType,
		Conversion:    conv,
		ActorID:       actorID,
	}

	box, rows, err := s.boxRepo.UpdateCurrentMoneyBox(ctx, pharmacyID, func(ctx context.Context, box *domain.MoneyBox) ([]domain.MoneyBoxTransaction, error) {
		if box.MoneyBoxID != current.MoneyBoxID || box.Currency != current.Currency {
			return nil, apperrors.NewConflictError("current money box changed, retry the request")
		}
		row, err := box.Post(posting, s.policy, s.Now())
		if err != nil {
			return nil, err
		}
		return []domain.MoneyBoxTransaction{row}, nil
	})
	if err != nil {
		if !isExpectedLedgerError(err) {
			s.LogError(ctx, err, "Failed to add money box transaction",
				slog.String("pharmacy_id", pharmacyID),
				slog.String("transaction_type", string(txType)))
		}
		return nil, err
	}

	row := rows[0]
	if box.CurrentBalance().IsNegative() {
		s.LogWarn(ctx, "Money box balance is negative",
			slog.String("money_box_id", box.MoneyBoxID),
			slog.String("balance", box.CurrentBalance().String()))
	}
	s.LogInfo(ctx, "Money box transaction added",
		slog.String("money_box_id", box.MoneyBoxID),
		slog.String("transaction_id", row.TransactionID),
		slog.String("transaction_type", string(row.TransactionType)),
		slog.String("amount", row.Amount.String()),
		slog.String("balance_after", row.BalanceAfter.String()))
	return &domain.PostingResult{MoneyBox: *box, Transaction: &row}, nil
}

// ReconcileCash matches the ledger against a physical cash count.
func (s *moneyBoxService) ReconcileCash(ctx context.Context, pharmacyID string, req dto.ReconcileCashRequest, actorID string) (*domain.PostingResult, error) {
	if req.ActualCashCount == nil {
		return nil, apperrors.NewValidationError("actual cash count is required")
	}
	actual := *req.ActualCashCount
	if actual.IsNegative() {
		return nil, apperrors.NewValidationError("actual cash count cannot be negative")
	}
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		return nil, apperrors.NewValidationError("reconciliation notes cannot be empty")
	}

	var expected decimal.Decimal
	box, rows, err := s.boxRepo.UpdateCurrentMoneyBox(ctx, pharmacyID, func(ctx context.Context, box *domain.MoneyBox) ([]domain.MoneyBoxTransaction, error) {
		expected = box.CurrentBalance()
		adjustment, err := box.Reconcile(actual, notes, s.NewID(), actorID, s.Now())
		if err != nil {
			return nil, err
		}
		if adjustment == nil {
			return nil, nil
		}
		return []domain.MoneyBoxTransaction{*adjustment}, nil
	})
	if err != nil {
		if !isExpectedLedgerError(err) {
			s.LogError(ctx, err, "Failed to reconcile money box", slog.String("pharmacy_id", pharmacyID))
		}
		return nil, err
	}

	result := &domain.PostingResult{MoneyBox: *box}
	if len(rows) > 0 {
		result.Transaction = &rows[0]
		s.LogWarn(ctx, "Cash count differs from ledger, adjustment posted",
			slog.String("money_box_id", box.MoneyBoxID),
			slog.String("expected", expected.String()),
			slog.String("actual", actual.String()),
			slog.String("adjustment", rows[0].Amount.String()))
	}
	s.LogInfo(ctx, "Money box reconciled", slog.String("money_box_id", box.MoneyBoxID))
	return result, nil
}

// CloseMoneyBox closes the pharmacy's open box.
func (s *moneyBoxService) CloseMoneyBox(ctx context.Context, pharmacyID string, req dto.CloseMoneyBoxRequest, actorID string) (*domain.MoneyBox, error) {
	box, _, err := s.boxRepo.UpdateCurrentMoneyBox(ctx, pharmacyID, func(ctx context.Context, box *domain.MoneyBox) ([]domain.MoneyBoxTransaction, error) {
		return nil, box.Close(strings.TrimSpace(req.Notes), actorID, s.Now())
	})
	if err != nil {
		if !isExpectedLedgerError(err) {
			s.LogError(ctx, err, "Failed to close money box", slog.String("pharmacy_id", pharmacyID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Money box closed",
		slog.String("money_box_id", box.MoneyBoxID),
		slog.String("expected_balance", box.ExpectedBalance.String()))
	return box, nil
}

// GetPeriodSummary aggregates the pharmacy's log rows created in [start, end].
func (s *moneyBoxService) GetPeriodSummary(ctx context.Context, pharmacyID string, start, end *time.Time) (*domain.MoneyBoxSummary, error) {
	if start != nil && end != nil {
		if err := domain.ValidatePeriod(*start, *end); err != nil {
			return nil, err
		}
	}

	box, err := s.boxRepo.FindCurrentMoneyBox(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	from := box.OpenedAt
	if start != nil {
		from = *start
	}
	to := s.Now()
	if end != nil {
		to = *end
	}
	if err := domain.ValidatePeriod(from, to); err != nil {
		return nil, err
	}

	rows, err := s.boxRepo.FindTransactionsByPharmacyAndPeriod(ctx, pharmacyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for summary", slog.String("pharmacy_id", pharmacyID))
		return nil, err
	}

	summary := domain.Summarize(*box, rows, from, to)
	return &summary, nil
}

// ListTransactions retrieves a page of the current box's rows, newest first.
func (s *moneyBoxService) ListTransactions(ctx context.Context, pharmacyID string, req dto.ListMoneyBoxTransactionsRequest) ([]domain.MoneyBoxTransaction, *string, error) {
	filter := domain.TransactionFilter{From: req.StartDate, To: req.EndDate}
	if req.StartDate != nil && req.EndDate != nil {
		if err := domain.ValidatePeriod(*req.StartDate, *req.EndDate); err != nil {
			return nil, nil, err
		}
	}
	if strings.TrimSpace(req.TransactionType) != "" {
		txType, err := domain.ParseTransactionType(req.TransactionType)
		if err != nil {
			return nil, nil, err
		}
		filter.Type = &txType
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}

	box, err := s.boxRepo.FindCurrentMoneyBox(ctx, pharmacyID)
	if err != nil {
		return nil, nil, err
	}

	rows, next, err := s.boxRepo.ListMoneyBoxTransactions(ctx, box.MoneyBoxID, filter, limit, req.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list money box transactions", slog.String("money_box_id", box.MoneyBoxID))
		}
		return nil, nil, err
	}
	return rows, next, nil
}

// VerifyMoneyBox replays the current box's log against its aggregate.
func (s *moneyBoxService) VerifyMoneyBox(ctx context.Context, pharmacyID string) (*domain.ChainReport, error) {
	box, err := s.boxRepo.FindCurrentMoneyBox(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	rows, err := s.boxRepo.FindTransactionsByMoneyBoxID(ctx, box.MoneyBoxID)
	if err != nil {
		return nil, err
	}
	report := domain.VerifyChain(*box, rows)
	if !report.OK() {
		s.LogWarn(ctx, "Money box log does not match its aggregate",
			slog.String("money_box_id", box.MoneyBoxID),
			slog.Int("problems", len(report.Problems)))
	}
	return &report, nil
}

// isExpectedLedgerError reports whether err is a caller-facing rejection rather than a fault.
func isExpectedLedgerError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrInvalidState) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrRateNotFound)
}
