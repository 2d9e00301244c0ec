package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Invoice is the stored invoice row.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	ClientName    string
	Amount        float64
	Status        string
	PaidAmount    float64
	PaymentDate   *time.Time
	PaymentMethod string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateParams holds the fields for a new invoice.
type CreateParams struct {
	InvoiceNumber string
	ClientName    string
	Amount        float64
}

// UpdateStatusParams holds the fields written by a status transition.
type UpdateStatusParams struct {
	ID            uuid.UUID
	Status        string
	PaidAmount    float64
	PaymentDate   *time.Time
	PaymentMethod string
}

// ListParams holds filters and pagination for invoice listing.
type ListParams struct {
	Status string
	Limit  int
	Offset int
}

// InvoiceRepository defines persistence for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, params CreateParams) (Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (Invoice, error)
	List(ctx context.Context, params ListParams) ([]Invoice, int, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (Invoice, error)
}
