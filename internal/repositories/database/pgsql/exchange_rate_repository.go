package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	"github.com/SscSPs/pharmacy_moneybox/internal/models"
	"github.com/SscSPs/pharmacy_moneybox/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `
	exchange_rate_id, from_currency, to_currency, rate, is_active, effective_from, effective_to,
	source, notes, created_at, created_by, last_updated_at, last_updated_by`

// Name of the partial unique index allowing one active rate per pair.
const activeRateConstraint = "uq_exchange_rates_active_pair"

// PgxExchangeRateRepository implements the ports.ExchangeRateRepositoryFacade interface using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.FromCurrency, &m.ToCurrency, &m.Rate, &m.IsActive,
		&m.EffectiveFrom, &m.EffectiveTo, &m.Source, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindActiveExchangeRate retrieves the single active rate for the ordered pair.
func (r *PgxExchangeRateRepository) FindActiveExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND is_active
		ORDER BY effective_from DESC
		LIMIT 1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewRateNotFoundError(fmt.Sprintf("no active exchange rate from %s to %s", fromCurrency, toCurrency))
		}
		return nil, internalError("failed to find active exchange rate", err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindExchangeRateByID retrieves an exchange rate by its ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate with ID " + rateID + " not found")
		}
		return nil, internalError("failed to get exchange rate by ID", err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListActiveExchangeRates retrieves every active rate ordered by pair.
func (r *PgxExchangeRateRepository) ListActiveExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE is_active
		ORDER BY from_currency, to_currency;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, internalError("failed to list exchange rates", err)
	}
	defer rows.Close()

	var modelRates []models.ExchangeRate
	for rows.Next() {
		m, err := scanExchangeRate(rows)
		if err != nil {
			return nil, internalError("failed to scan exchange rate", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating exchange rates", err)
	}
	return mapping.ToDomainExchangeRates(modelRates), nil
}

// ReplaceActiveExchangeRate supersedes the pair's active rate and inserts next in one
// transaction. An advisory lock on the pair serializes concurrent writers, and the partial
// unique index rejects anything that still slips through.
func (r *PgxExchangeRateRepository) ReplaceActiveExchangeRate(ctx context.Context, next domain.ExchangeRate) (*domain.ExchangeRate, error) {
	var superseded *domain.ExchangeRate
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		superseded = nil
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, next.FromCurrency+"/"+next.ToCurrency); err != nil {
			return fmt.Errorf("lock currency pair: %w", err)
		}

		current, err := scanExchangeRate(tx.QueryRow(ctx, `SELECT `+exchangeRateColumns+`
			FROM exchange_rates
			WHERE from_currency = $1 AND to_currency = $2 AND is_active
			FOR UPDATE;`, next.FromCurrency, next.ToCurrency))
		switch {
		case err == nil:
			old := mapping.ToDomainExchangeRate(current)
			old.Supersede(next.CreatedBy, next.EffectiveFrom)
			if err := updateRateActivity(ctx, tx, old); err != nil {
				return err
			}
			superseded = &old
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("load active rate: %w", err)
		}

		m := mapping.ToModelExchangeRate(next)
		_, err = tx.Exec(ctx, `
			INSERT INTO exchange_rates (
				exchange_rate_id, from_currency, to_currency, rate, is_active, effective_from, effective_to,
				source, notes, created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
			m.ExchangeRateID, m.FromCurrency, m.ToCurrency, m.Rate, m.IsActive, m.EffectiveFrom, m.EffectiveTo,
			m.Source, m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("insert exchange rate: %w", err)
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err, activeRateConstraint) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("an active exchange rate from %s to %s was set concurrently", next.FromCurrency, next.ToCurrency))
		}
		return nil, internalError("failed to replace active exchange rate", err)
	}
	return superseded, nil
}

// DeactivateExchangeRate deactivates a rate. Already inactive rates are returned unchanged.
func (r *PgxExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID, actorID string, now time.Time) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		m, err := scanExchangeRate(tx.QueryRow(ctx, `SELECT `+exchangeRateColumns+`
			FROM exchange_rates WHERE exchange_rate_id = $1 FOR UPDATE;`, rateID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("exchange rate with ID " + rateID + " not found")
			}
			return fmt.Errorf("load exchange rate: %w", err)
		}
		rate = mapping.ToDomainExchangeRate(m)
		if !rate.IsActive {
			return nil
		}
		rate.Supersede(actorID, now)
		return updateRateActivity(ctx, tx, rate)
	})
	if err != nil {
		return nil, internalError("failed to deactivate exchange rate", err)
	}
	return &rate, nil
}

func updateRateActivity(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error {
	_, err := tx.Exec(ctx, `
		UPDATE exchange_rates
		SET is_active = $1, effective_to = $2, last_updated_at = $3, last_updated_by = $4
		WHERE exchange_rate_id = $5;`,
		rate.IsActive, rate.EffectiveTo, rate.LastUpdatedAt, rate.LastUpdatedBy, rate.ExchangeRateID,
	)
	if err != nil {
		return fmt.Errorf("update exchange rate %s: %w", rate.ExchangeRateID, err)
	}
	return nil
}
