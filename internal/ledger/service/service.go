// Package service implements ledger operations, including the idempotent
// invoice projection used by the invoice status reconciler.
package service

import (
	"context"
	"fmt"
	"time"

	"estimate_backend/internal/ledger/repository"
	"estimate_backend/platform/logger"
)

// Service provides ledger operations.
type Service struct {
	repo repository.LedgerRepository
	log  *logger.Logger
}

// New creates the ledger service.
func New(repo repository.LedgerRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// invoiceReference derives the deterministic ledger key for an invoice.
// One invoice maps to at most one income transaction.
func invoiceReference(invoiceNumber string) string {
	return fmt.Sprintf("invoice:%s", invoiceNumber)
}

// RecordInvoicePayment creates the income transaction for a paid invoice.
// Idempotent: re-recording an already recorded invoice is a no-op.
func (s *Service) RecordInvoicePayment(ctx context.Context, invoiceNumber string, amount float64, paymentDate time.Time) error {
	created, err := s.repo.CreateIncome(ctx, repository.CreateIncomeParams{
		Amount:          amount,
		Description:     fmt.Sprintf("Payment for invoice %s", invoiceNumber),
		Reference:       invoiceReference(invoiceNumber),
		TransactionDate: paymentDate,
	})
	if err != nil {
		return err
	}
	if !created {
		s.log.Debug("invoice payment already recorded", "invoice_number", invoiceNumber)
	}
	return nil
}

// RemoveInvoicePayment deletes the income transaction for an invoice.
// Idempotent: absence of the transaction is not an error.
func (s *Service) RemoveInvoicePayment(ctx context.Context, invoiceNumber string) error {
	return s.repo.DeleteByReference(ctx, invoiceReference(invoiceNumber))
}

// HasInvoicePayment reports whether an income transaction exists for the invoice.
func (s *Service) HasInvoicePayment(ctx context.Context, invoiceNumber string) (bool, error) {
	return s.repo.ExistsByReference(ctx, invoiceReference(invoiceNumber))
}

// List returns ledger transactions with the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]repository.Transaction, int, error) {
	return s.repo.List(ctx, repository.ListParams{Limit: limit, Offset: offset})
}
