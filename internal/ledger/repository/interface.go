package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transaction is one financial record in the ledger.
type Transaction struct {
	ID              uuid.UUID
	Type            string
	Amount          float64
	Description     string
	Reference       string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// CreateIncomeParams holds the fields for a new income transaction.
type CreateIncomeParams struct {
	Amount          float64
	Description     string
	Reference       string
	TransactionDate time.Time
}

// ListParams holds pagination for transaction listing.
type ListParams struct {
	Limit  int
	Offset int
}

// LedgerRepository defines persistence for ledger transactions. Create and
// delete are idempotent on the reference key: creating an existing reference
// is a no-op, deleting a missing one is not an error.
type LedgerRepository interface {
	CreateIncome(ctx context.Context, params CreateIncomeParams) (created bool, err error)
	DeleteByReference(ctx context.Context, reference string) error
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, params ListParams) ([]Transaction, int, error)
}
