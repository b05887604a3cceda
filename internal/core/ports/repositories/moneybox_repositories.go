package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
)

// MoneyBoxMutation mutates a locked money box and returns the log rows to append.
// Returning an error aborts the whole unit of work.
type MoneyBoxMutation func(ctx context.Context, box *domain.MoneyBox) ([]domain.MoneyBoxTransaction, error)

// MoneyBoxReader defines read operations for money box data
type MoneyBoxReader interface {
	// FindCurrentMoneyBox retrieves the most recently opened box of a pharmacy, whatever its status.
	FindCurrentMoneyBox(ctx context.Context, pharmacyID string) (*domain.MoneyBox, error)

	// FindMoneyBoxByID retrieves a money box by its ID.
	FindMoneyBoxByID(ctx context.Context, moneyBoxID string) (*domain.MoneyBox, error)
}

// MoneyBoxWriter defines write operations for money box data
type MoneyBoxWriter interface {
	// CreateMoneyBox inserts a new OPEN box together with its OPENING_BALANCE row.
	// Returns apperrors.ErrConflict if the pharmacy already has an OPEN box.
	CreateMoneyBox(ctx context.Context, box domain.MoneyBox, opening domain.MoneyBoxTransaction) error

	// UpdateCurrentMoneyBox locks the pharmacy's current box, applies mutate and persists the
	// box and the returned rows in one database transaction.
	UpdateCurrentMoneyBox(ctx context.Context, pharmacyID string, mutate MoneyBoxMutation) (*domain.MoneyBox, []domain.MoneyBoxTransaction, error)
}

// MoneyBoxTransactionReader defines read operations for the append-only money box log
type MoneyBoxTransactionReader interface {
	// ListMoneyBoxTransactions retrieves a page of a box's rows, newest first.
	// It returns the rows, a token for the next page, and an error.
	ListMoneyBoxTransactions(ctx context.Context, moneyBoxID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.MoneyBoxTransaction, *string, error)

	// FindTransactionsByMoneyBoxID retrieves every row of a box ordered by sequence number.
	FindTransactionsByMoneyBoxID(ctx context.Context, moneyBoxID string) ([]domain.MoneyBoxTransaction, error)

	// FindTransactionsByPharmacyAndPeriod retrieves the rows of all the pharmacy's boxes created
	// in [start, end], oldest first.
	FindTransactionsByPharmacyAndPeriod(ctx context.Context, pharmacyID string, start, end time.Time) ([]domain.MoneyBoxTransaction, error)
}

// MoneyBoxRepositoryFacade combines all money box-related repository interfaces
type MoneyBoxRepositoryFacade interface {
	MoneyBoxReader
	MoneyBoxWriter
	MoneyBoxTransactionReader
}
