package mapping

import (
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/SscSPs/pharmacy_moneybox/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		FromCurrency:   d.FromCurrency,
		ToCurrency:     d.ToCurrency,
		Rate:           d.Rate,
		IsActive:       d.IsActive,
		EffectiveFrom:  d.EffectiveFrom,
		EffectiveTo:    d.EffectiveTo,
		Source:         string(d.Source),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		FromCurrency:   m.FromCurrency,
		ToCurrency:     m.ToCurrency,
		Rate:           m.Rate,
		IsActive:       m.IsActive,
		EffectiveFrom:  m.EffectiveFrom,
		EffectiveTo:    m.EffectiveTo,
		Source:         domain.RateSource(m.Source),
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRates converts a slice of model ExchangeRate to domain ExchangeRate
func ToDomainExchangeRates(ms []models.ExchangeRate) []domain.ExchangeRate {
	rates := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		rates[i] = ToDomainExchangeRate(m)
	}
	return rates
}
