// Package repository implements invoice persistence with pgx.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estimate_backend/platform/apperr"
)

const invoiceNotFoundMessage = "invoice not found"

const invoiceColumns = `
    id, invoice_number, client_name, amount, status,
    COALESCE(paid_amount, 0), payment_date, COALESCE(payment_method, ''),
    created_at, updated_at`

// Repo is the pgx implementation of InvoiceRepository.
type Repo struct {
	pool *pgxpool.Pool
}

// Compile-time check.
var _ InvoiceRepository = (*Repo)(nil)

// New creates an invoice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.ClientName,
		&inv.Amount,
		&inv.Status,
		&inv.PaidAmount,
		&inv.PaymentDate,
		&inv.PaymentMethod,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	return inv, err
}

// Create inserts a new invoice in draft status.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Invoice, error) {
	query := `
        INSERT INTO invoices (invoice_number, client_name, amount, status)
        VALUES ($1, $2, $3, 'draft')
        RETURNING` + invoiceColumns

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, params.InvoiceNumber, params.ClientName, params.Amount))
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// GetByID fetches one invoice.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, apperr.NotFound(invoiceNotFoundMessage)
		}
		return Invoice{}, err
	}
	return inv, nil
}

// List returns invoices newest first, optionally filtered by status.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Invoice, int, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	countQuery := `SELECT COUNT(*) FROM invoices WHERE ($1 = '' OR status = $1)`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, params.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
        SELECT` + invoiceColumns + `
        FROM invoices
        WHERE ($1 = '' OR status = $1)
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, params.Status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, rows.Err()
}

// UpdateStatus writes a status transition and its payment fields.
func (r *Repo) UpdateStatus(ctx context.Context, params UpdateStatusParams) (Invoice, error) {
	query := `
        UPDATE invoices
        SET status = $2, paid_amount = $3, payment_date = $4, payment_method = NULLIF($5, ''), updated_at = NOW()
        WHERE id = $1
        RETURNING` + invoiceColumns

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query,
		params.ID,
		params.Status,
		params.PaidAmount,
		params.PaymentDate,
		params.PaymentMethod,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, apperr.NotFound(invoiceNotFoundMessage)
		}
		return Invoice{}, err
	}
	return inv, nil
}
