// Package ports defines the interfaces the invoices module depends on.
package ports

import (
	"context"
	"time"
)

// LedgerRecorder is the projection boundary between invoice payment state
// and the ledger. Both operations are idempotent; implementations must make
// re-recording and re-removal safe.
type LedgerRecorder interface {
	RecordPayment(ctx context.Context, invoiceNumber string, amount float64, paymentDate time.Time) error
	RemovePayment(ctx context.Context, invoiceNumber string) error
}
