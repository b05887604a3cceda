package services

import (
	"context"
	"errors"
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

// exchangeRateService implements the ExchangeRateSvcFacade interface
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithExchangeRateBase overrides the clock and ID generator.
func WithExchangeRateBase(base BaseService) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.BaseService = base
	}
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		BaseService: newBaseService(),
		rateRepo:    rateRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure exchangeRateService implements the ExchangeRateSvcFacade interface
var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func normalizePair(fromCurrency, toCurrency string) (string, string, error) {
	from, err := domain.NormalizeCurrencyCode(fromCurrency)
	if err != nil {
		return "", "", err
	}
	to, err := domain.NormalizeCurrencyCode(toCurrency)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

// SetRate handles the replacement of the active exchange rate for a pair.
func (s *exchangeRateService) SetRate(ctx context.Context, req dto.CreateExchangeRateRequest, actorID string) (*domain.ExchangeRate, error) {
	from, to, err := normalizePair(req.FromCurrency, req.ToCurrency)
	if err != nil {
		return nil, err
	}

	source := domain.RateSource(strings.ToUpper(strings.TrimSpace(req.Source)))
	if source == "" {
		source = domain.RateSourceManual
	}

	now := s.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: s.NewID(),
		FromCurrency:   from,
		ToCurrency:     to,
		Rate:           req.Rate,
		IsActive:       true,
		EffectiveFrom:  now,
		Source:         source,
		Notes:          strings.TrimSpace(req.Notes),
		AuditFields:    domain.NewAuditFields(actorID, now),
	}
	if err := rate.Validate(); err != nil {
		return nil, err
	}

	superseded, err := s.rateRepo.ReplaceActiveExchangeRate(ctx, rate)
	if err != nil {
		s.LogError(ctx, err, "Failed to replace active exchange rate",
			slog.String("from_currency", from),
			slog.String("to_currency", to))
		return nil, fmt.Errorf("failed to set exchange rate %s/%s: %w", from, to, err)
	}

	attrs := []any{
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("from_currency", from),
		slog.String("to_currency", to),
		slog.String("rate", rate.Rate.String()),
	}
	if superseded != nil {
		attrs = append(attrs, slog.String("superseded_rate_id", superseded.ExchangeRateID))
	}
	s.LogInfo(ctx, "Exchange rate set", attrs...)
	return &rate, nil
}

// GetActiveRate retrieves the active rate for an ordered currency pair.
func (s *exchangeRateService) GetActiveRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	from, to, err := normalizePair(fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, apperrors.NewValidationError("from and to currency codes cannot be the same")
	}

	rate, err := s.rateRepo.FindActiveExchangeRate(ctx, from, to)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateNotFound) {
			s.LogError(ctx, err, "Failed to find active exchange rate",
				slog.String("from_currency", from),
				slog.String("to_currency", to))
		}
		return nil, err
	}
	return rate, nil
}

// GetRateByID retrieves a rate by its ID.
func (s *exchangeRateService) GetRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find exchange rate by ID", slog.String("exchange_rate_id", rateID))
		}
		return nil, err
	}
	return rate, nil
}

// ListActiveRates retrieves every active rate.
func (s *exchangeRateService) ListActiveRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListActiveExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active exchange rates")
		return nil, err
	}
	return rates, nil
}

// DeactivateRate deactivates a rate without replacing it. Deactivating an inactive rate
// returns it unchanged.
func (s *exchangeRateService) DeactivateRate(ctx context.Context, rateID, actorID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.DeactivateExchangeRate(ctx, rateID, actorID, s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate exchange rate", slog.String("exchange_rate_id", rateID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Exchange rate deactivated", slog.String("exchange_rate_id", rateID))
	return rate, nil
}

// Convert converts amount using the active rate for the pair.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*domain.CurrencyConversion, error) {
	from, to, err := normalizePair(fromCurrency, toCurrency)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if from == to {
		conv := domain.IdentityConversion(amount, from, now)
		return &conv, nil
	}

	rate, err := s.rateRepo.FindActiveExchangeRate(ctx, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			s.LogWarn(ctx, "No active exchange rate for conversion",
				slog.String("from_currency", from),
				slog.String("to_currency", to))
		} else {
			s.LogError(ctx, err, "Failed to load exchange rate for conversion",
				slog.String("from_currency", from),
				slog.String("to_currency", to))
		}
		return nil, err
	}

	conv := domain.ConvertWithRate(amount, *rate, now)
	s.LogDebug(ctx, "Converted amount",
		slog.String("from_currency", from),
		slog.String("to_currency", to),
		slog.String("amount", amount.String()),
		slog.String("converted", conv.ConvertedAmount.String()))
	return &conv, nil
}
