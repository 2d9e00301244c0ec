package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"estimate_backend/internal/invoices/repository"
	"estimate_backend/platform/apperr"
	"estimate_backend/platform/logger"
)

type fakeRepo struct {
	invoices map[uuid.UUID]repository.Invoice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{invoices: make(map[uuid.UUID]repository.Invoice)}
}

func (r *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Invoice, error) {
	inv := repository.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: params.InvoiceNumber,
		ClientName:    params.ClientName,
		Amount:        params.Amount,
		Status:        StatusDraft,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	r.invoices[inv.ID] = inv
	return inv, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return repository.Invoice{}, apperr.NotFound("invoice not found")
	}
	return inv, nil
}

func (r *fakeRepo) List(_ context.Context, params repository.ListParams) ([]repository.Invoice, int, error) {
	var out []repository.Invoice
	for _, inv := range r.invoices {
		if params.Status == "" || inv.Status == params.Status {
			out = append(out, inv)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, params repository.UpdateStatusParams) (repository.Invoice, error) {
	inv, ok := r.invoices[params.ID]
	if !ok {
		return repository.Invoice{}, apperr.NotFound("invoice not found")
	}
	inv.Status = params.Status
	inv.PaidAmount = params.PaidAmount
	inv.PaymentDate = params.PaymentDate
	inv.PaymentMethod = params.PaymentMethod
	inv.UpdatedAt = time.Now()
	r.invoices[params.ID] = inv
	return inv, nil
}

// fakeLedger mirrors the idempotent create/delete contract of the real
// ledger repository: one transaction per invoice number at most.
type fakeLedger struct {
	transactions map[string]float64
	recordCalls  int
	removeCalls  int
	failAll      bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{transactions: make(map[string]float64)}
}

func (l *fakeLedger) RecordPayment(_ context.Context, invoiceNumber string, amount float64, _ time.Time) error {
	l.recordCalls++
	if l.failAll {
		return errors.New("ledger unavailable")
	}
	if _, exists := l.transactions[invoiceNumber]; !exists {
		l.transactions[invoiceNumber] = amount
	}
	return nil
}

func (l *fakeLedger) RemovePayment(_ context.Context, invoiceNumber string) error {
	l.removeCalls++
	if l.failAll {
		return errors.New("ledger unavailable")
	}
	delete(l.transactions, invoiceNumber)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeLedger) {
	t.Helper()
	repo := newFakeRepo()
	ledger := newFakeLedger()
	svc := New(repo, ledger, nil, logger.New("development"))
	return svc, repo, ledger
}

func createInvoice(t *testing.T, svc *Service, amount float64) repository.Invoice {
	t.Helper()
	inv, err := svc.Create(context.Background(), "INV-2026-001", "Jansen Renovations", amount)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return inv
}

func TestDraftToPaidCreatesExactlyOneTransaction(t *testing.T) {
	svc, _, ledger := newTestService(t)
	inv := createInvoice(t, svc, 1210.00)

	updated, err := svc.UpdateStatus(context.Background(), inv.ID, StatusTransition{TargetStatus: StatusPaid})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if updated.Status != StatusPaid {
		t.Errorf("Status = %q, want paid", updated.Status)
	}
	if updated.PaidAmount != 1210.00 {
		t.Errorf("PaidAmount = %v, want invoice total 1210.00", updated.PaidAmount)
	}
	if updated.PaymentDate == nil {
		t.Error("PaymentDate should default to now")
	}
	if len(ledger.transactions) != 1 {
		t.Fatalf("expected exactly 1 ledger transaction, got %d", len(ledger.transactions))
	}
	if got := ledger.transactions[inv.InvoiceNumber]; got != 1210.00 {
		t.Errorf("transaction amount = %v, want 1210.00", got)
	}
}

func TestPaidToPaidCreatesNoDuplicate(t *testing.T) {
	svc, _, ledger := newTestService(t)
	inv := createInvoice(t, svc, 500.00)

	ctx := context.Background()
	if _, err := svc.UpdateStatus(ctx, inv.ID, StatusTransition{TargetStatus: StatusPaid}); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, inv.ID, StatusTransition{TargetStatus: StatusPaid}); err != nil {
		t.Fatalf("re-confirmation: %v", err)
	}

	if len(ledger.transactions) != 1 {
		t.Errorf("expected exactly 1 ledger transaction after re-confirmation, got %d", len(ledger.transactions))
	}
}

func TestPaidToCancelledDeletesTransaction(t *testing.T) {
	svc, _, ledger := newTestService(t)
	inv := createInvoice(t, svc, 500.00)

	ctx := context.Background()
	if _, err := svc.UpdateStatus(ctx, inv.ID, StatusTransition{TargetStatus: StatusPaid}); err != nil {
		t.Fatalf("to paid: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, inv.ID, StatusTransition{TargetStatus: StatusCancelled}); err != nil {
		t.Fatalf("to cancelled: %v", err)
	}

	if len(ledger.transactions) != 0 {
		t.Errorf("expected 0 ledger transactions after leaving paid, got %d", len(ledger.transactions))
	}
}

func TestLeavingPaidTwiceIsIdempotent(t *testing.T) {
	svc, _, ledger := newTestService(t)
	inv := createInvoice(t, svc, 500.00)

	ctx := context.Background()
	if _, err := svc.UpdateStatus(ctx, inv.ID, StatusTransition{TargetStatus: StatusPaid}); err != nil {
		t.Fatalf("to paid: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, inv.ID, StatusTransition{TargetStatus: StatusCancelled}); err != nil {
		t.Fatalf("to cancelled: %v", err)
	}
	// Another non-paid transition attempts no ledger work.
	if _, err := svc.UpdateStatus(ctx, inv.ID, StatusTransition{TargetStatus: StatusDraft}); err != nil {
		t.Fatalf("to draft: %v", err)
	}

	if len(ledger.transactions) != 0 {
		t.Errorf("expected 0 ledger transactions, got %d", len(ledger.transactions))
	}
}

func TestDraftToSentTouchesNoLedger(t *testing.T) {
	svc, _, ledger := newTestService(t)
	inv := createInvoice(t, svc, 500.00)

	if _, err := svc.UpdateStatus(context.Background(), inv.ID, StatusTransition{TargetStatus: StatusSent}); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if ledger.recordCalls != 0 || ledger.removeCalls != 0 {
		t.Errorf("ledger touched on draft->sent: %d records, %d removes", ledger.recordCalls, ledger.removeCalls)
	}
}

func TestPartialUpdatesPaidAmountOnly(t *testing.T) {
	svc, _, ledger := newTestService(t)
	inv := createInvoice(t, svc, 1000.00)

	paid := 400.00
	updated, err := svc.UpdateStatus(context.Background(), inv.ID, StatusTransition{
		TargetStatus: StatusPartial,
		PaidAmount:   &paid,
	})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if updated.Status != StatusPartial {
		t.Errorf("Status = %q, want partial", updated.Status)
	}
	if updated.PaidAmount != 400.00 {
		t.Errorf("PaidAmount = %v, want 400.00", updated.PaidAmount)
	}
	if len(ledger.transactions) != 0 {
		t.Errorf("partial payment must not create a ledger transaction, got %d", len(ledger.transactions))
	}
}

func TestExplicitPaymentDetailsArePersisted(t *testing.T) {
	svc, _, ledger := newTestService(t)
	inv := createInvoice(t, svc, 750.00)

	paid := 750.00
	date := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateStatus(context.Background(), inv.ID, StatusTransition{
		TargetStatus:  StatusPaid,
		PaidAmount:    &paid,
		PaymentDate:   &date,
		PaymentMethod: "bank_transfer",
	})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}

	if updated.PaymentDate == nil || !updated.PaymentDate.Equal(date) {
		t.Errorf("PaymentDate = %v, want %v", updated.PaymentDate, date)
	}
	if updated.PaymentMethod != "bank_transfer" {
		t.Errorf("PaymentMethod = %q, want bank_transfer", updated.PaymentMethod)
	}
	if got := ledger.transactions[inv.InvoiceNumber]; got != 750.00 {
		t.Errorf("transaction amount = %v, want 750.00", got)
	}
}

func TestLedgerFailureDoesNotFailStatusUpdate(t *testing.T) {
	svc, repo, ledger := newTestService(t)
	inv := createInvoice(t, svc, 500.00)
	ledger.failAll = true

	updated, err := svc.UpdateStatus(context.Background(), inv.ID, StatusTransition{TargetStatus: StatusPaid})
	if err != nil {
		t.Fatalf("status update must succeed despite ledger failure, got: %v", err)
	}
	if updated.Status != StatusPaid {
		t.Errorf("Status = %q, want paid", updated.Status)
	}

	// Status is the authoritative record.
	stored, err := repo.GetByID(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Status != StatusPaid {
		t.Errorf("persisted status = %q, want paid", stored.Status)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	inv := createInvoice(t, svc, 500.00)

	_, err := svc.UpdateStatus(context.Background(), inv.ID, StatusTransition{TargetStatus: "archived"})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("error kind = %v, want bad request", apperr.GetKind(err))
	}
}

func TestUpdateStatusUnknownInvoice(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), StatusTransition{TargetStatus: StatusPaid})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("error kind = %v, want not found", apperr.GetKind(err))
	}
}
