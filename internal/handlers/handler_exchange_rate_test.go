package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/SscSPs/pharmacy_moneybox/internal/middleware"
	"github.com/stretchr/testify/mock"
)

func sampleRate() *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID: "rate-1",
		FromCurrency:   domain.CurrencyUSD,
		ToCurrency:     domain.CurrencySYP,
		Rate:           dec("2500"),
		IsActive:       true,
		EffectiveFrom:  time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		Source:         domain.RateSourceManual,
	}
}

func (suite *HandlerTestSuite) TestSetRate_Success() {
	suite.mockRates.On("SetRate", mock.Anything, mock.MatchedBy(func(req dto.CreateExchangeRateRequest) bool {
		return req.FromCurrency == "USD" && req.ToCurrency == "SYP" && req.Rate.Equal(dec("2500"))
	}), testUser).Return(sampleRate(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"fromCurrency": "USD",
		"toCurrency":   "SYP",
		"rate":         "2500",
	}, middleware.RoleManager)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ExchangeRateResponse
	suite.decode(w, &resp)
	suite.Equal("rate-1", resp.ExchangeRateID)
	suite.True(resp.IsActive)
}

func (suite *HandlerTestSuite) TestSetRate_CashierForbidden() {
	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"fromCurrency": "USD",
		"toCurrency":   "SYP",
		"rate":         "2500",
	}, middleware.RoleCashier)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestSetRate_BindingErrors() {
	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"fromCurrency": "USD",
		"rate":         "2500",
	}, middleware.RoleManager)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"fromCurrency": "USD",
		"toCurrency":   "SYP",
		"rate":         "2500",
		"source":       "RUMOUR",
	}, middleware.RoleManager)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockRates.AssertNotCalled(suite.T(), "SetRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListActiveRates() {
	suite.mockRates.On("ListActiveRates", mock.Anything).Return([]domain.ExchangeRate{*sampleRate()}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates", nil, middleware.RoleReadOnly)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListExchangeRatesResponse
	suite.decode(w, &resp)
	suite.Len(resp.ExchangeRates, 1)
}

func (suite *HandlerTestSuite) TestGetActiveRate_NoRate() {
	suite.mockRates.On("GetActiveRate", mock.Anything, "EUR", "SYP").
		Return(nil, apperrors.NewRateNotFoundError("no active exchange rate from EUR to SYP")).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/pairs/EUR/SYP", nil, middleware.RoleReadOnly)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetActiveRate_BadCode() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/pairs/EURO/SYP", nil, middleware.RoleReadOnly)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetRateByID_NotFound() {
	suite.mockRates.On("GetRateByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("exchange rate missing not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/rates/missing", nil, middleware.RoleReadOnly)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateRate() {
	rate := sampleRate()
	rate.IsActive = false
	suite.mockRates.On("DeactivateRate", mock.Anything, "rate-1", testUser).Return(rate, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates/rates/rate-1/deactivate", nil, middleware.RoleAdmin)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.decode(w, &resp)
	suite.False(resp.IsActive)
}

func (suite *HandlerTestSuite) TestConvert() {
	rateID := "rate-1"
	suite.mockRates.On("Convert", mock.Anything, "30", "USD", "SYP").Return(&domain.CurrencyConversion{
		OriginalAmount:  dec("30"),
		FromCurrency:    domain.CurrencyUSD,
		ConvertedAmount: dec("75000"),
		ToCurrency:      domain.CurrencySYP,
		Rate:            dec("2500"),
		ExchangeRateID:  &rateID,
		Source:          domain.RateSourceManual,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=30&from=USD&to=SYP", nil, middleware.RoleReadOnly)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.CurrencyConversionResponse
	suite.decode(w, &resp)
	suite.True(resp.ConvertedAmount.Equal(dec("75000")))
	suite.Equal(string(domain.RateSourceManual), resp.RateSource)
}

func (suite *HandlerTestSuite) TestConvert_BadAmount() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=lots&from=USD&to=SYP", nil, middleware.RoleReadOnly)

	suite.Equal(http.StatusBadRequest, w.Code)
}
