package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/SscSPs/pharmacy_moneybox/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
// Reads are open to every role; changing rates needs MANAGER.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listActiveRates)
		exchangeRates.GET("/convert", h.convert)
		exchangeRates.GET("/pairs/:from/:to", h.getActiveRate)
		exchangeRates.GET("/rates/:rateID", h.getRateByID)

		managed := exchangeRates.Group("", middleware.RequireRole(middleware.RoleManager))
		managed.POST("", h.setRate)
		managed.POST("/rates/:rateID/deactivate", h.deactivateRate)
	}
}

// setRate godoc
// @Summary Set the active exchange rate for a currency pair
// @Description Makes a new rate active for its ordered pair. The previous active rate is superseded.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Concurrent rate change"
// @Failure 500 {object} map[string]string "Failed to set exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) setRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "SetRate")
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to set exchange rate",
		slog.String("from", req.FromCurrency),
		slog.String("to", req.ToCurrency),
		slog.String("rate", req.Rate.String()),
	)

	rate, err := h.exchangeRateService.SetRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err, "Failed to set exchange rate")
		return
	}

	logger.Info("Exchange rate set successfully", slog.String("rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listActiveRates godoc
// @Summary List active exchange rates
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listActiveRates(c *gin.Context) {
	rates, err := h.exchangeRateService.ListActiveRates(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getActiveRate godoc
// @Summary Get the active exchange rate
// @Description Retrieves the active exchange rate for a given ordered currency pair
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or no active rate"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/pairs/{from}/{to} [get]
func (h *exchangeRateHandler) getActiveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	logger.Debug("Received request to get exchange rate", slog.String("from_code", fromCode), slog.String("to_code", toCode))

	rate, err := h.exchangeRateService.GetActiveRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getRateByID godoc
// @Summary Get an exchange rate by ID
// @Description Returns active and superseded rates alike
// @Tags exchange rates
// @Produce  json
// @Param   rateID path string true "Exchange Rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/rates/{rateID} [get]
func (h *exchangeRateHandler) getRateByID(c *gin.Context) {
	rate, err := h.exchangeRateService.GetRateByID(c.Request.Context(), c.Param("rateID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deactivateRate godoc
// @Summary Deactivate an exchange rate
// @Description Deactivates the rate without a replacement. Conversions for the pair fail afterwards.
// @Tags exchange rates
// @Produce  json
// @Param   rateID path string true "Exchange Rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 409 {object} map[string]string "Rate already inactive"
// @Failure 500 {object} map[string]string "Failed to deactivate exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/rates/{rateID}/deactivate [post]
func (h *exchangeRateHandler) deactivateRate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.exchangeRateService.DeactivateRate(c.Request.Context(), c.Param("rateID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to deactivate exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Uses the active rate for the pair; same-currency conversions use rate 1
// @Tags exchange rates
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from   query string true "From Currency Code"
// @Param   to     query string true "To Currency Code"
// @Success 200 {object} dto.CurrencyConversionResponse
// @Failure 400 {object} map[string]string "Invalid amount, currency or no active rate"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a decimal number"})
		return
	}

	conv, err := h.exchangeRateService.Convert(c.Request.Context(), amount, c.Query("from"), c.Query("to"))
	if err != nil {
		respondWithError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyConversionResponse(conv))
}
