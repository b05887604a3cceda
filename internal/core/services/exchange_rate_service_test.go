package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ExchangeRateSvcFacade
	ctx          context.Context
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, services.WithExchangeRateBase(fixedBase()))
	suite.ctx = context.Background()
}

func (suite *ExchangeRateServiceTestSuite) TearDownTest() {
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func activeRate(id, from, to, rate string) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID: id,
		FromCurrency:   from,
		ToCurrency:     to,
		Rate:           dec(rate),
		IsActive:       true,
		EffectiveFrom:  fixedNow,
		Source:         domain.RateSourceManual,
	}
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestSetRate_Success() {
	req := dto.CreateExchangeRateRequest{
		FromCurrency: "usd",
		ToCurrency:   " syp ",
		Rate:         dec("2500"),
		Notes:        "morning rate",
	}
	previous := activeRate("rate-old", "USD", "SYP", "2400")
	suite.mockRateRepo.On("ReplaceActiveExchangeRate", suite.ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrency == "USD" &&
			r.ToCurrency == "SYP" &&
			r.Rate.Equal(dec("2500")) &&
			r.IsActive &&
			r.Source == domain.RateSourceManual &&
			r.EffectiveTo == nil &&
			r.EffectiveFrom.Equal(fixedNow) &&
			r.CreatedBy == "manager-1"
	})).Return(previous, nil).Once()

	rate, err := suite.service.SetRate(suite.ctx, req, "manager-1")

	suite.Require().NoError(err)
	suite.Equal("USD", rate.FromCurrency)
	suite.Equal("SYP", rate.ToCurrency)
	suite.Equal("morning rate", rate.Notes)
	suite.NotEmpty(rate.ExchangeRateID)
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_ExplicitSource() {
	req := dto.CreateExchangeRateRequest{FromCurrency: "EUR", ToCurrency: "SYP", Rate: dec("2700"), Source: "api"}
	suite.mockRateRepo.On("ReplaceActiveExchangeRate", suite.ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.Source == domain.RateSourceAPI
	})).Return(nil, nil).Once()

	rate, err := suite.service.SetRate(suite.ctx, req, "manager-1")

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceAPI, rate.Source)
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_ValidationErrors() {
	tests := []struct {
		name string
		req  dto.CreateExchangeRateRequest
	}{
		{"same currency", dto.CreateExchangeRateRequest{FromCurrency: "USD", ToCurrency: "usd", Rate: dec("1")}},
		{"below minimum", dto.CreateExchangeRateRequest{FromCurrency: "USD", ToCurrency: "SYP", Rate: dec("0.0000001")}},
		{"zero rate", dto.CreateExchangeRateRequest{FromCurrency: "USD", ToCurrency: "SYP", Rate: dec("0")}},
		{"negative rate", dto.CreateExchangeRateRequest{FromCurrency: "USD", ToCurrency: "SYP", Rate: dec("-5")}},
		{"unknown currency", dto.CreateExchangeRateRequest{FromCurrency: "XXX", ToCurrency: "SYP", Rate: dec("5")}},
		{"unknown source", dto.CreateExchangeRateRequest{FromCurrency: "USD", ToCurrency: "SYP", Rate: dec("5"), Source: "GUESS"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.SetRate(suite.ctx, tt.req, "manager-1")
			suite.Require().Error(err)
			suite.True(errors.Is(err, apperrors.ErrValidation), "expected validation error, got %v", err)
		})
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ReplaceActiveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSetRate_RepositoryConflict() {
	req := dto.CreateExchangeRateRequest{FromCurrency: "USD", ToCurrency: "SYP", Rate: dec("2500")}
	suite.mockRateRepo.On("ReplaceActiveExchangeRate", suite.ctx, mock.Anything).
		Return(nil, apperrors.NewConflictError("an active rate already exists")).Once()

	rate, err := suite.service.SetRate(suite.ctx, req, "manager-1")

	suite.Nil(rate)
	suite.True(errors.Is(err, apperrors.ErrConflict))
}

func (suite *ExchangeRateServiceTestSuite) TestGetActiveRate() {
	suite.mockRateRepo.On("FindActiveExchangeRate", suite.ctx, "USD", "SYP").
		Return(activeRate("rate-1", "USD", "SYP", "2500"), nil).Once()

	rate, err := suite.service.GetActiveRate(suite.ctx, "usd", "syp")

	suite.Require().NoError(err)
	suite.Equal("rate-1", rate.ExchangeRateID)
}

func (suite *ExchangeRateServiceTestSuite) TestGetActiveRate_NotFound() {
	suite.mockRateRepo.On("FindActiveExchangeRate", suite.ctx, "USD", "SYP").
		Return(nil, apperrors.NewRateNotFoundError("no active rate for USD/SYP")).Once()

	_, err := suite.service.GetActiveRate(suite.ctx, "USD", "SYP")

	suite.True(errors.Is(err, apperrors.ErrRateNotFound))
}

func (suite *ExchangeRateServiceTestSuite) TestGetActiveRate_SameCurrency() {
	_, err := suite.service.GetActiveRate(suite.ctx, "SYP", "SYP")

	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRateByID() {
	suite.mockRateRepo.On("FindExchangeRateByID", suite.ctx, "rate-1").
		Return(activeRate("rate-1", "USD", "SYP", "2500"), nil).Once()
	suite.mockRateRepo.On("FindExchangeRateByID", suite.ctx, "missing").
		Return(nil, apperrors.NewNotFoundError("exchange rate missing")).Once()

	rate, err := suite.service.GetRateByID(suite.ctx, "rate-1")
	suite.Require().NoError(err)
	suite.Equal("USD", rate.FromCurrency)

	_, err = suite.service.GetRateByID(suite.ctx, "missing")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *ExchangeRateServiceTestSuite) TestListActiveRates() {
	rates := []domain.ExchangeRate{
		*activeRate("rate-1", "USD", "SYP", "2500"),
		*activeRate("rate-2", "EUR", "SYP", "2700"),
	}
	suite.mockRateRepo.On("ListActiveExchangeRates", suite.ctx).Return(rates, nil).Once()

	got, err := suite.service.ListActiveRates(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateRate() {
	inactive := activeRate("rate-1", "USD", "SYP", "2500")
	inactive.IsActive = false
	suite.mockRateRepo.On("DeactivateExchangeRate", suite.ctx, "rate-1", "manager-1", fixedNow).Return(inactive, nil).Once()

	rate, err := suite.service.DeactivateRate(suite.ctx, "rate-1", "manager-1")

	suite.Require().NoError(err)
	suite.False(rate.IsActive)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_SameCurrency() {
	conv, err := suite.service.Convert(suite.ctx, dec("1234.56"), "syp", "SYP")

	suite.Require().NoError(err)
	suite.True(conv.ConvertedAmount.Equal(dec("1234.56")))
	suite.True(conv.Rate.Equal(dec("1")))
	suite.Equal(domain.RateSourceSystem, conv.Source)
	suite.Nil(conv.ExchangeRateID)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindActiveExchangeRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_UsesActiveRate() {
	suite.mockRateRepo.On("FindActiveExchangeRate", suite.ctx, "USD", "SYP").
		Return(activeRate("rate-1", "USD", "SYP", "2500"), nil).Once()

	conv, err := suite.service.Convert(suite.ctx, dec("100"), "USD", "SYP")

	suite.Require().NoError(err)
	suite.True(conv.ConvertedAmount.Equal(dec("250000")), "got %s", conv.ConvertedAmount)
	suite.Require().NotNil(conv.ExchangeRateID)
	suite.Equal("rate-1", *conv.ExchangeRateID)
	suite.Equal(fixedNow, conv.ConvertedAt)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_PicksUpReplacedRate() {
	suite.mockRateRepo.On("FindActiveExchangeRate", suite.ctx, "USD", "SYP").
		Return(activeRate("rate-1", "USD", "SYP", "2500"), nil).Once()
	suite.mockRateRepo.On("FindActiveExchangeRate", suite.ctx, "USD", "SYP").
		Return(activeRate("rate-2", "USD", "SYP", "2600"), nil).Once()

	first, err := suite.service.Convert(suite.ctx, dec("10"), "USD", "SYP")
	suite.Require().NoError(err)
	second, err := suite.service.Convert(suite.ctx, dec("10"), "USD", "SYP")
	suite.Require().NoError(err)

	suite.True(first.ConvertedAmount.Equal(dec("25000")))
	suite.True(second.ConvertedAmount.Equal(dec("26000")))
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_RoundsToMinorUnit() {
	suite.mockRateRepo.On("FindActiveExchangeRate", suite.ctx, "SYP", "USD").
		Return(activeRate("rate-3", "SYP", "USD", "0.0004"), nil).Once()

	conv, err := suite.service.Convert(suite.ctx, dec("12345"), "SYP", "USD")

	suite.Require().NoError(err)
	suite.True(conv.ConvertedAmount.Equal(dec("4.94")), "got %s", conv.ConvertedAmount)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_MissingRate() {
	suite.mockRateRepo.On("FindActiveExchangeRate", suite.ctx, "GBP", "SYP").
		Return(nil, apperrors.NewRateNotFoundError("no active rate for GBP/SYP")).Once()

	conv, err := suite.service.Convert(suite.ctx, dec("10"), "GBP", "SYP")

	suite.Nil(conv)
	suite.True(errors.Is(err, apperrors.ErrRateNotFound))
	suite.False(errors.Is(err, apperrors.ErrValidation))
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	svc := services.NewExchangeRateService(new(MockExchangeRateRepository))

	_, err := svc.Convert(context.Background(), dec("10"), "ABC", "SYP")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
