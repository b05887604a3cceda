package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/apperrors"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	portsrepo "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/repositories"
	"github.com/SscSPs/pharmacy_moneybox/internal/models"
	"github.com/SscSPs/pharmacy_moneybox/internal/utils/mapping"
	"github.com/SscSPs/pharmacy_moneybox/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const moneyBoxColumns = `
	money_box_id, pharmacy_id, business_date, period_type, parent_money_box_id, currency, status,
	opening_balance, closing_balance, expected_balance, actual_balance,
	total_cash_in, total_cash_out, net_cash_flow, transaction_count,
	opened_at, opened_by, closed_at, closed_by, reconciled_at, reconciled_by,
	opening_notes, closing_notes, created_at, created_by, last_updated_at, last_updated_by`

const moneyBoxTransactionColumns = `
	transaction_id, money_box_id, sequence_no, transaction_type, amount, balance_before, balance_after,
	currency, description, reference_id, reference_type,
	original_amount, original_currency, exchange_rate, exchange_rate_id, conversion_time, rate_source,
	created_at, created_by`

// Constraint names from the schema that map to caller-facing conflicts.
const (
	oneOpenBoxConstraint  = "uq_money_boxes_one_open"
	boxSequenceConstraint = "uq_money_box_transactions_sequence"
)

// PgxMoneyBoxRepository implements the ports.MoneyBoxRepositoryFacade interface using pgxpool.
type PgxMoneyBoxRepository struct {
	BaseRepository
}

func newPgxMoneyBoxRepository(db *pgxpool.Pool) portsrepo.MoneyBoxRepositoryFacade {
	return &PgxMoneyBoxRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.MoneyBoxRepositoryFacade = (*PgxMoneyBoxRepository)(nil)

func scanMoneyBox(row pgx.Row) (models.MoneyBox, error) {
	var m models.MoneyBox
	err := row.Scan(
		&m.MoneyBoxID, &m.PharmacyID, &m.BusinessDate, &m.PeriodType, &m.ParentMoneyBoxID, &m.Currency, &m.Status,
		&m.OpeningBalance, &m.ClosingBalance, &m.ExpectedBalance, &m.ActualBalance,
		&m.TotalCashIn, &m.TotalCashOut, &m.NetCashFlow, &m.TransactionCount,
		&m.OpenedAt, &m.OpenedBy, &m.ClosedAt, &m.ClosedBy, &m.ReconciledAt, &m.ReconciledBy,
		&m.OpeningNotes, &m.ClosingNotes, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanMoneyBoxTransaction(row pgx.Row) (models.MoneyBoxTransaction, error) {
	var m models.MoneyBoxTransaction
	err := row.Scan(
		&m.TransactionID, &m.MoneyBoxID, &m.SequenceNo, &m.TransactionType, &m.Amount, &m.BalanceBefore, &m.BalanceAfter,
		&m.Currency, &m.Description, &m.ReferenceID, &m.ReferenceType,
		&m.OriginalAmount, &m.OriginalCurrency, &m.ExchangeRate, &m.ExchangeRateID, &m.ConversionTime, &m.RateSource,
		&m.CreatedAt, &m.CreatedBy,
	)
	return m, err
}

func collectMoneyBoxTransactions(rows pgx.Rows) ([]domain.MoneyBoxTransaction, error) {
	defer rows.Close()
	var modelTxns []models.MoneyBoxTransaction
	for rows.Next() {
		m, err := scanMoneyBoxTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan money box transaction: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate money box transactions: %w", err)
	}
	return mapping.ToDomainMoneyBoxTransactions(modelTxns), nil
}

// FindCurrentMoneyBox retrieves the most recently opened box of a pharmacy.
func (r *PgxMoneyBoxRepository) FindCurrentMoneyBox(ctx context.Context, pharmacyID string) (*domain.MoneyBox, error) {
	m, err := scanMoneyBox(r.Pool.QueryRow(ctx, currentMoneyBoxQuery(false), pharmacyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no money box found for pharmacy " + pharmacyID)
		}
		return nil, internalError("failed to find current money box", err)
	}
	box := mapping.ToDomainMoneyBox(m)
	return &box, nil
}

func currentMoneyBoxQuery(forUpdate bool) string {
	query := `SELECT ` + moneyBoxColumns + `
		FROM money_boxes
		WHERE pharmacy_id = $1
		ORDER BY opened_at DESC, money_box_id DESC
		LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return query + ";"
}

// FindMoneyBoxByID retrieves a money box by its ID.
func (r *PgxMoneyBoxRepository) FindMoneyBoxByID(ctx context.Context, moneyBoxID string) (*domain.MoneyBox, error) {
	query := `SELECT ` + moneyBoxColumns + ` FROM money_boxes WHERE money_box_id = $1;`
	m, err := scanMoneyBox(r.Pool.QueryRow(ctx, query, moneyBoxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("money box with ID " + moneyBoxID + " not found")
		}
		return nil, internalError("failed to get money box by ID", err)
	}
	box := mapping.ToDomainMoneyBox(m)
	return &box, nil
}

// CreateMoneyBox inserts a new box and its opening row in one transaction.
func (r *PgxMoneyBoxRepository) CreateMoneyBox(ctx context.Context, box domain.MoneyBox, opening domain.MoneyBoxTransaction) error {
	m := mapping.ToModelMoneyBox(box)
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO money_boxes (`+moneyBoxColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
				$20, $21, $22, $23, $24, $25, $26, $27);`,
			m.MoneyBoxID, m.PharmacyID, m.BusinessDate, m.PeriodType, m.ParentMoneyBoxID, m.Currency, m.Status,
			m.OpeningBalance, m.ClosingBalance, m.ExpectedBalance, m.ActualBalance,
			m.TotalCashIn, m.TotalCashOut, m.NetCashFlow, m.TransactionCount,
			m.OpenedAt, m.OpenedBy, m.ClosedAt, m.ClosedBy, m.ReconciledAt, m.ReconciledBy,
			m.OpeningNotes, m.ClosingNotes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("insert money box: %w", err)
		}
		return insertMoneyBoxTransactions(ctx, tx, []domain.MoneyBoxTransaction{opening})
	})
	if err != nil {
		if isUniqueViolation(err, oneOpenBoxConstraint) {
			return apperrors.NewConflictError("pharmacy " + box.PharmacyID + " already has an open money box")
		}
		return internalError("failed to create money box", err)
	}
	return nil
}

// UpdateCurrentMoneyBox locks the pharmacy's current box row, lets mutate change it and
// persists the box together with the appended rows. Any error rolls everything back.
func (r *PgxMoneyBoxRepository) UpdateCurrentMoneyBox(ctx context.Context, pharmacyID string, mutate portsrepo.MoneyBoxMutation) (*domain.MoneyBox, []domain.MoneyBoxTransaction, error) {
	var (
		box  domain.MoneyBox
		rows []domain.MoneyBoxTransaction
	)
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		m, err := scanMoneyBox(tx.QueryRow(ctx, currentMoneyBoxQuery(true), pharmacyID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("no money box found for pharmacy " + pharmacyID)
			}
			return fmt.Errorf("lock current money box: %w", err)
		}
		box = mapping.ToDomainMoneyBox(m)

		rows, err = mutate(ctx, &box)
		if err != nil {
			return err
		}
		if err := updateMoneyBox(ctx, tx, box); err != nil {
			return err
		}
		return insertMoneyBoxTransactions(ctx, tx, rows)
	})
	if err != nil {
		if isUniqueViolation(err, boxSequenceConstraint) {
			return nil, nil, apperrors.NewConflictError("money box changed concurrently, retry the request")
		}
		return nil, nil, internalError("failed to update money box", err)
	}
	return &box, rows, nil
}

func updateMoneyBox(ctx context.Context, tx pgx.Tx, box domain.MoneyBox) error {
	m := mapping.ToModelMoneyBox(box)
	_, err := tx.Exec(ctx, `
		UPDATE money_boxes SET
			status = $2, closing_balance = $3, expected_balance = $4, actual_balance = $5,
			total_cash_in = $6, total_cash_out = $7, net_cash_flow = $8, transaction_count = $9,
			closed_at = $10, closed_by = $11, reconciled_at = $12, reconciled_by = $13,
			closing_notes = $14, last_updated_at = $15, last_updated_by = $16
		WHERE money_box_id = $1;`,
		m.MoneyBoxID, m.Status, m.ClosingBalance, m.ExpectedBalance, m.ActualBalance,
		m.TotalCashIn, m.TotalCashOut, m.NetCashFlow, m.TransactionCount,
		m.ClosedAt, m.ClosedBy, m.ReconciledAt, m.ReconciledBy,
		m.ClosingNotes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("update money box %s: %w", box.MoneyBoxID, err)
	}
	return nil
}

func insertMoneyBoxTransactions(ctx context.Context, tx pgx.Tx, txns []domain.MoneyBoxTransaction) error {
	if len(txns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelMoneyBoxTransaction(txn)
		batch.Queue(`
			INSERT INTO money_box_transactions (`+moneyBoxTransactionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`,
			m.TransactionID, m.MoneyBoxID, m.SequenceNo, m.TransactionType, m.Amount, m.BalanceBefore, m.BalanceAfter,
			m.Currency, m.Description, m.ReferenceID, m.ReferenceType,
			m.OriginalAmount, m.OriginalCurrency, m.ExchangeRate, m.ExchangeRateID, m.ConversionTime, m.RateSource,
			m.CreatedAt, m.CreatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert money box transaction: %w", err)
		}
	}
	return results.Close()
}

// buildTransactionListQuery returns the page query for a box's rows, newest first. One
// extra row is requested to detect whether another page follows.
func buildTransactionListQuery(moneyBoxID string, filter domain.TransactionFilter, limit int, beforeSeq int64) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + moneyBoxTransactionColumns + ` FROM money_box_transactions WHERE money_box_id = $1`)
	args := []any{moneyBoxID}
	argNum := 2

	if filter.From != nil {
		fmt.Fprintf(&sb, " AND created_at >= $%d", argNum)
		args = append(args, *filter.From)
		argNum++
	}
	if filter.To != nil {
		fmt.Fprintf(&sb, " AND created_at <= $%d", argNum)
		args = append(args, *filter.To)
		argNum++
	}
	if filter.Type != nil {
		fmt.Fprintf(&sb, " AND transaction_type = $%d", argNum)
		args = append(args, string(*filter.Type))
		argNum++
	}
	if beforeSeq > 0 {
		fmt.Fprintf(&sb, " AND sequence_no < $%d", argNum)
		args = append(args, beforeSeq)
		argNum++
	}

	fmt.Fprintf(&sb, " ORDER BY sequence_no DESC LIMIT $%d;", argNum)
	args = append(args, limit+1)
	return sb.String(), args
}

// ListMoneyBoxTransactions retrieves a page of a box's rows, newest first.
func (r *PgxMoneyBoxRepository) ListMoneyBoxTransactions(ctx context.Context, moneyBoxID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.MoneyBoxTransaction, *string, error) {
	var beforeSeq int64
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken, moneyBoxID)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		beforeSeq = seq
	}

	query, args := buildTransactionListQuery(moneyBoxID, filter, limit, beforeSeq)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, internalError("failed to list money box transactions", err)
	}
	txns, err := collectMoneyBoxTransactions(rows)
	if err != nil {
		return nil, nil, internalError("failed to list money box transactions", err)
	}

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		token := pagination.EncodeSequenceToken(moneyBoxID, txns[limit-1].SequenceNo)
		next = &token
	}
	return txns, next, nil
}

// FindTransactionsByMoneyBoxID retrieves every row of a box ordered by sequence number.
func (r *PgxMoneyBoxRepository) FindTransactionsByMoneyBoxID(ctx context.Context, moneyBoxID string) ([]domain.MoneyBoxTransaction, error) {
	query := `SELECT ` + moneyBoxTransactionColumns + `
		FROM money_box_transactions
		WHERE money_box_id = $1
		ORDER BY sequence_no;`
	rows, err := r.Pool.Query(ctx, query, moneyBoxID)
	if err != nil {
		return nil, internalError("failed to load money box transactions", err)
	}
	txns, err := collectMoneyBoxTransactions(rows)
	if err != nil {
		return nil, internalError("failed to load money box transactions", err)
	}
	return txns, nil
}

// FindTransactionsByPharmacyAndPeriod retrieves the rows of all the pharmacy's boxes created in [start, end].
func (r *PgxMoneyBoxRepository) FindTransactionsByPharmacyAndPeriod(ctx context.Context, pharmacyID string, start, end time.Time) ([]domain.MoneyBoxTransaction, error) {
	query := `SELECT ` + prefixColumns("t", moneyBoxTransactionColumns) + `
		FROM money_box_transactions t
		JOIN money_boxes b ON b.money_box_id = t.money_box_id
		WHERE b.pharmacy_id = $1 AND t.created_at >= $2 AND t.created_at <= $3
		ORDER BY t.created_at, b.opened_at, t.sequence_no;`
	rows, err := r.Pool.Query(ctx, query, pharmacyID, start, end)
	if err != nil {
		return nil, internalError("failed to load transactions for period", err)
	}
	txns, err := collectMoneyBoxTransactions(rows)
	if err != nil {
		return nil, internalError("failed to load transactions for period", err)
	}
	return txns, nil
}

// prefixColumns qualifies each column of a comma separated list with alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
