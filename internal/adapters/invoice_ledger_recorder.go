package adapters

import (
	"context"
	"time"

	invports "estimate_backend/internal/invoices/ports"
	ledgersvc "estimate_backend/internal/ledger/service"
)

// InvoiceLedgerRecorder adapts the ledger service to the invoices module's
// LedgerRecorder port. Idempotency lives in the ledger layer; this adapter
// only translates the call.
type InvoiceLedgerRecorder struct {
	ledger *ledgersvc.Service
}

// Compile-time check that the adapter satisfies the port.
var _ invports.LedgerRecorder = (*InvoiceLedgerRecorder)(nil)

// NewInvoiceLedgerRecorder creates a ledger recorder adapter.
func NewInvoiceLedgerRecorder(ledger *ledgersvc.Service) *InvoiceLedgerRecorder {
	return &InvoiceLedgerRecorder{ledger: ledger}
}

// RecordPayment records the income transaction for a paid invoice.
func (a *InvoiceLedgerRecorder) RecordPayment(ctx context.Context, invoiceNumber string, amount float64, paymentDate time.Time) error {
	return a.ledger.RecordInvoicePayment(ctx, invoiceNumber, amount, paymentDate)
}

// RemovePayment removes the income transaction for an invoice.
func (a *InvoiceLedgerRecorder) RemovePayment(ctx context.Context, invoiceNumber string) error {
	return a.ledger.RemoveInvoicePayment(ctx, invoiceNumber)
}
