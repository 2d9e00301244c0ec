// Package service implements the invoice status state machine and the
// ledger reconciliation that keeps one income transaction in sync with an
// invoice's paid state.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainevents "estimate_backend/internal/events"
	"estimate_backend/internal/invoices/ports"
	"estimate_backend/internal/invoices/repository"
	"estimate_backend/platform/apperr"
	"estimate_backend/platform/events"
	"estimate_backend/platform/logger"
)

// Invoice statuses.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
	StatusPartial   = "partial"
)

var validStatuses = map[string]bool{
	StatusDraft:     true,
	StatusSent:      true,
	StatusPaid:      true,
	StatusOverdue:   true,
	StatusCancelled: true,
	StatusPartial:   true,
}

// Service provides invoice operations.
type Service struct {
	repo     repository.InvoiceRepository
	ledger   ports.LedgerRecorder
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates the invoices service.
func New(repo repository.InvoiceRepository, ledger ports.LedgerRecorder, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, ledger: ledger, eventBus: eventBus, log: log, now: time.Now}
}

// Create registers a new invoice in draft status.
func (s *Service) Create(ctx context.Context, invoiceNumber, clientName string, amount float64) (repository.Invoice, error) {
	return s.repo.Create(ctx, repository.CreateParams{
		InvoiceNumber: invoiceNumber,
		ClientName:    clientName,
		Amount:        amount,
	})
}

// Get fetches one invoice.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns invoices, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]repository.Invoice, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, apperr.BadRequest("unknown invoice status")
	}
	return s.repo.List(ctx, repository.ListParams{Status: status, Limit: limit, Offset: offset})
}

// StatusTransition is the input for a status change.
type StatusTransition struct {
	TargetStatus  string
	PaidAmount    *float64
	PaymentDate   *time.Time
	PaymentMethod string
}

// UpdateStatus applies a status transition and reconciles the derived
// ledger transaction. The status update is authoritative: a ledger failure
// is logged but never fails the transition.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, transition StatusTransition) (repository.Invoice, error) {
	if !validStatuses[transition.TargetStatus] {
		return repository.Invoice{}, apperr.BadRequest("unknown invoice status")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Invoice{}, err
	}

	params := repository.UpdateStatusParams{
		ID:            id,
		Status:        transition.TargetStatus,
		PaidAmount:    current.PaidAmount,
		PaymentDate:   current.PaymentDate,
		PaymentMethod: current.PaymentMethod,
	}

	switch transition.TargetStatus {
	case StatusPaid:
		// Full payment: amount defaults to the invoice total, date to now.
		params.PaidAmount = current.Amount
		if transition.PaidAmount != nil {
			params.PaidAmount = *transition.PaidAmount
		}
		paymentDate := s.now()
		if transition.PaymentDate != nil {
			paymentDate = *transition.PaymentDate
		}
		params.PaymentDate = &paymentDate
		if transition.PaymentMethod != "" {
			params.PaymentMethod = transition.PaymentMethod
		}
	case StatusPartial:
		// Partial payments update the paid amount only; no ledger
		// transaction is created for them.
		if transition.PaidAmount != nil {
			params.PaidAmount = *transition.PaidAmount
		}
		if transition.PaymentDate != nil {
			params.PaymentDate = transition.PaymentDate
		}
		if transition.PaymentMethod != "" {
			params.PaymentMethod = transition.PaymentMethod
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, params)
	if err != nil {
		return repository.Invoice{}, err
	}

	s.reconcileLedger(ctx, current, updated)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, domainevents.NewInvoiceStatusChanged(
			updated.ID, updated.InvoiceNumber, current.Status, updated.Status, updated.PaidAmount,
		))
	}

	return updated, nil
}

// reconcileLedger enforces: status paid implies exactly one ledger
// transaction, any other status implies none. Both directions are
// idempotent, so re-confirming paid creates no duplicate and removing an
// absent transaction is a no-op. Failures are logged, never propagated:
// the ledger entry is a best-effort derived projection.
func (s *Service) reconcileLedger(ctx context.Context, before, after repository.Invoice) {
	switch {
	case after.Status == StatusPaid:
		paymentDate := s.now()
		if after.PaymentDate != nil {
			paymentDate = *after.PaymentDate
		}
		if err := s.ledger.RecordPayment(ctx, after.InvoiceNumber, after.PaidAmount, paymentDate); err != nil {
			s.log.Error("failed to record invoice payment in ledger",
				"invoice_number", after.InvoiceNumber, "error", err)
		}
	case before.Status == StatusPaid:
		if err := s.ledger.RemovePayment(ctx, after.InvoiceNumber); err != nil {
			s.log.Error("failed to remove invoice payment from ledger",
				"invoice_number", after.InvoiceNumber, "error", err)
		}
	}
}
