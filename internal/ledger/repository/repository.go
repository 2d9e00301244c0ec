// Package repository implements ledger persistence with pgx.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the pgx implementation of LedgerRepository.
type Repo struct {
	pool *pgxpool.Pool
}

// Compile-time check.
var _ LedgerRepository = (*Repo)(nil)

// New creates a ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateIncome inserts an income transaction. The reference column carries a
// unique constraint, so re-creating the same reference is a silent no-op;
// the returned bool reports whether a row was actually inserted.
func (r *Repo) CreateIncome(ctx context.Context, params CreateIncomeParams) (bool, error) {
	query := `
        INSERT INTO ledger_transactions (type, amount, description, reference, transaction_date)
        VALUES ('income', $1, $2, $3, $4)
        ON CONFLICT (reference) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		params.Amount,
		params.Description,
		params.Reference,
		params.TransactionDate,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByReference removes the transaction with the given reference.
// Deleting a reference that does not exist is not an error.
func (r *Repo) DeleteByReference(ctx context.Context, reference string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ledger_transactions WHERE reference = $1`, reference)
	return err
}

// ExistsByReference reports whether a transaction with the reference exists.
func (r *Repo) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ledger_transactions WHERE reference = $1)`, reference,
	).Scan(&exists)
	return exists, err
}

// List returns transactions newest first, with the total count for paging.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Transaction, int, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_transactions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, type, amount, description, reference, transaction_date, created_at
        FROM ledger_transactions
        ORDER BY transaction_date DESC, created_at DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Amount, &tx.Description, &tx.Reference, &tx.TransactionDate, &tx.CreatedAt); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, total, rows.Err()
}
