package dto

import (
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for setting a new active exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required,currency"`
	ToCurrency   string          `json:"toCurrency" binding:"required,currency"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	Source       string          `json:"source" binding:"omitempty,oneof=MANUAL API SYSTEM"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	FromCurrency   string          `json:"fromCurrency"`
	ToCurrency     string          `json:"toCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	IsActive       bool            `json:"isActive"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	EffectiveTo    *time.Time      `json:"effectiveTo,omitempty"`
	Source         string          `json:"source"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// CurrencyConversionResponse describes the outcome of a conversion.
type CurrencyConversionResponse struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	FromCurrency    string          `json:"fromCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ToCurrency      string          `json:"toCurrency"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ExchangeRateID  *string         `json:"exchangeRateID,omitempty"`
	ConversionTime  time.Time       `json:"conversionTime"`
	RateSource      string          `json:"rateSource"`
}

// ListExchangeRatesResponse wraps the list of active rates.
type ListExchangeRatesResponse struct {
	ExchangeRates []ExchangeRateResponse `json:"exchangeRates"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		FromCurrency:   rate.FromCurrency,
		ToCurrency:     rate.ToCurrency,
		Rate:           rate.Rate,
		IsActive:       rate.IsActive,
		EffectiveFrom:  rate.EffectiveFrom,
		EffectiveTo:    rate.EffectiveTo,
		Source:         string(rate.Source),
		Notes:          rate.Notes,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to the list response.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) ListExchangeRatesResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return ListExchangeRatesResponse{ExchangeRates: responses}
}

// ToCurrencyConversionResponse converts a domain.CurrencyConversion to its DTO.
func ToCurrencyConversionResponse(c *domain.CurrencyConversion) CurrencyConversionResponse {
	return CurrencyConversionResponse{
		OriginalAmount:  c.OriginalAmount,
		FromCurrency:    c.FromCurrency,
		ConvertedAmount: c.ConvertedAmount,
		ToCurrency:      c.ToCurrency,
		ExchangeRate:    c.Rate,
		ExchangeRateID:  c.ExchangeRateID,
		ConversionTime:  c.ConvertedAt,
		RateSource:      string(c.Source),
	}
}
