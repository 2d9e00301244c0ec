// Package events defines the domain events shared between modules.
package events

import (
	"github.com/google/uuid"

	"estimate_backend/platform/events"
)

// InvoiceStatusChangedEvent is published after an invoice status transition
// has been persisted. The ledger projection runs synchronously in the
// invoices service; subscribers to this event get a notification, not a
// participation in the transition.
type InvoiceStatusChangedEvent struct {
	events.BaseEvent
	InvoiceID     uuid.UUID
	InvoiceNumber string
	OldStatus     string
	NewStatus     string
	PaidAmount    float64
}

// EventName returns the event identifier.
func (e InvoiceStatusChangedEvent) EventName() string {
	return "invoice.status_changed"
}

// NewInvoiceStatusChanged creates an invoice status change event.
func NewInvoiceStatusChanged(invoiceID uuid.UUID, invoiceNumber, oldStatus, newStatus string, paidAmount float64) InvoiceStatusChangedEvent {
	return InvoiceStatusChangedEvent{
		BaseEvent:     events.NewBaseEvent(),
		InvoiceID:     invoiceID,
		InvoiceNumber: invoiceNumber,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		PaidAmount:    paidAmount,
	}
}
