package mapping

import (
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/SscSPs/pharmacy_moneybox/internal/models"
)

// ToModelMoneyBox converts a domain MoneyBox to a model MoneyBox
func ToModelMoneyBox(d domain.MoneyBox) models.MoneyBox {
	return models.MoneyBox{
		MoneyBoxID:       d.MoneyBoxID,
		PharmacyID:       d.PharmacyID,
		BusinessDate:     d.BusinessDate,
		PeriodType:       string(d.PeriodType),
		ParentMoneyBoxID: d.ParentMoneyBoxID,
		Currency:         d.Currency,
		Status:           string(d.Status),
		OpeningBalance:   d.OpeningBalance,
		ClosingBalance:   d.ClosingBalance,
		ExpectedBalance:  d.ExpectedBalance,
		ActualBalance:    d.ActualBalance,
		TotalCashIn:      d.TotalCashIn,
		TotalCashOut:     d.TotalCashOut,
		NetCashFlow:      d.NetCashFlow,
		TransactionCount: d.TransactionCount,
		OpenedAt:         d.OpenedAt,
		OpenedBy:         d.OpenedBy,
		ClosedAt:         d.ClosedAt,
		ClosedBy:         d.ClosedBy,
		ReconciledAt:     d.ReconciledAt,
		ReconciledBy:     d.ReconciledBy,
		OpeningNotes:     d.OpeningNotes,
		ClosingNotes:     d.ClosingNotes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMoneyBox converts a model MoneyBox to a domain MoneyBox
func ToDomainMoneyBox(m models.MoneyBox) domain.MoneyBox {
	return domain.MoneyBox{
		MoneyBoxID:       m.MoneyBoxID,
		PharmacyID:       m.PharmacyID,
		BusinessDate:     m.BusinessDate,
		PeriodType:       domain.PeriodType(m.PeriodType),
		ParentMoneyBoxID: m.ParentMoneyBoxID,
		Currency:         m.Currency,
		Status:           domain.MoneyBoxStatus(m.Status),
		OpeningBalance:   m.OpeningBalance,
		ClosingBalance:   m.ClosingBalance,
		ExpectedBalance:  m.ExpectedBalance,
		ActualBalance:    m.ActualBalance,
		TotalCashIn:      m.TotalCashIn,
		TotalCashOut:     m.TotalCashOut,
		NetCashFlow:      m.NetCashFlow,
		TransactionCount: m.TransactionCount,
		OpenedAt:         m.OpenedAt,
		OpenedBy:         m.OpenedBy,
		ClosedAt:         m.ClosedAt,
		ClosedBy:         m.ClosedBy,
		ReconciledAt:     m.ReconciledAt,
		ReconciledBy:     m.ReconciledBy,
		OpeningNotes:     m.OpeningNotes,
		ClosingNotes:     m.ClosingNotes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMoneyBoxTransaction flattens a domain MoneyBoxTransaction into its row form.
func ToModelMoneyBoxTransaction(d domain.MoneyBoxTransaction) models.MoneyBoxTransaction {
	m := models.MoneyBoxTransaction{
		TransactionID:   d.TransactionID,
		MoneyBoxID:      d.MoneyBoxID,
		SequenceNo:      d.SequenceNo,
		TransactionType: string(d.TransactionType),
		Amount:          d.Amount,
		BalanceBefore:   d.BalanceBefore,
		BalanceAfter:    d.BalanceAfter,
		Currency:        d.Currency,
		Description:     d.Description,
		ReferenceID:     d.ReferenceID,
		ReferenceType:   d.ReferenceType,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
	if c := d.Conversion; c != nil {
		original := c.OriginalAmount
		from := c.FromCurrency
		rate := c.Rate
		at := c.ConvertedAt
		source := string(c.Source)
		m.OriginalAmount = &original
		m.OriginalCurrency = &from
		m.ExchangeRate = &rate
		m.ExchangeRateID = c.ExchangeRateID
		m.ConversionTime = &at
		m.RateSource = &source
	}
	return m
}

// ToDomainMoneyBoxTransaction converts a model MoneyBoxTransaction to a domain MoneyBoxTransaction
func ToDomainMoneyBoxTransaction(m models.MoneyBoxTransaction) domain.MoneyBoxTransaction {
	d := domain.MoneyBoxTransaction{
		TransactionID:   m.TransactionID,
		MoneyBoxID:      m.MoneyBoxID,
		SequenceNo:      m.SequenceNo,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Currency:        m.Currency,
		Description:     m.Description,
		ReferenceID:     m.ReferenceID,
		ReferenceType:   m.ReferenceType,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
	if m.OriginalAmount != nil && m.OriginalCurrency != nil && m.ExchangeRate != nil {
		conv := domain.CurrencyConversion{
			OriginalAmount:  *m.OriginalAmount,
			FromCurrency:    *m.OriginalCurrency,
			ConvertedAmount: m.Amount,
			ToCurrency:      m.Currency,
			Rate:            *m.ExchangeRate,
			ExchangeRateID:  m.ExchangeRateID,
		}
		if m.ConversionTime != nil {
			conv.ConvertedAt = *m.ConversionTime
		}
		if m.RateSource != nil {
			conv.Source = domain.RateSource(*m.RateSource)
		}
		d.Conversion = &conv
	}
	return d
}

// ToDomainMoneyBoxTransactions converts a slice of model rows to domain transactions
func ToDomainMoneyBoxTransactions(ms []models.MoneyBoxTransaction) []domain.MoneyBoxTransaction {
	txns := make([]domain.MoneyBoxTransaction, len(ms))
	for i, m := range ms {
		txns[i] = ToDomainMoneyBoxTransaction(m)
	}
	return txns
}

// ToModelCustomerDebt converts a domain CustomerDebt to a model CustomerDebt
func ToModelCustomerDebt(d domain.CustomerDebt) models.CustomerDebt {
	return models.CustomerDebt{
		CustomerDebtID: d.CustomerDebtID,
		PharmacyID:     d.PharmacyID,
		CustomerID:     d.CustomerID,
		ReferenceID:    d.ReferenceID,
		ReferenceType:  d.ReferenceType,
		Amount:         d.Amount,
		Currency:       d.Currency,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}
