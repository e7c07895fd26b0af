package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

type fakeCommissionRepo struct {
	commissions map[int64]*domain.Commission
	nextID      int64
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{commissions: map[int64]*domain.Commission{}}
}

func (f *fakeCommissionRepo) List(context.Context) ([]domain.Commission, error) {
	out := make([]domain.Commission, 0, len(f.commissions))
	for _, c := range f.commissions {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCommissionRepo) ListByPolicy(_ context.Context, policyID int64) ([]domain.Commission, error) {
	var out []domain.Commission
	for _, c := range f.commissions {
		if c.PolicyID == policyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommissionRepo) GetByID(_ context.Context, id int64) (*domain.Commission, error) {
	c, ok := f.commissions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommissionRepo) Create(_ context.Context, commission *domain.Commission) error {
	f.nextID++
	commission.ID = f.nextID
	stored := *commission
	f.commissions[commission.ID] = &stored
	return nil
}

func (f *fakeCommissionRepo) Update(_ context.Context, commission *domain.Commission) error {
	if _, ok := f.commissions[commission.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *commission
	f.commissions[commission.ID] = &stored
	return nil
}

func (f *fakeCommissionRepo) UpdateStatus(_ context.Context, id int64, status domain.CommissionStatus) error {
	c, ok := f.commissions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.Status = status
	return nil
}

func (f *fakeCommissionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.commissions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.commissions, id)
	return nil
}

func seedCommission(t *testing.T, svc *CommissionService, policyID int64) *domain.Commission {
	t.Helper()
	commission := &domain.Commission{PolicyID: policyID, Amount: 300, Rate: 0.15}
	if err := svc.Create(context.Background(), commission); err != nil {
		t.Fatalf("seed commission: %v", err)
	}
	return commission
}

func TestCommissionCreateDefaultsToPending(t *testing.T) {
	policies := newFakePolicyRepo()
	policy := seedPolicy(t, policies)
	svc := NewCommissionService(newFakeCommissionRepo(), policies, &fakeFinancialRepo{}, events.NewInMemoryDispatcher())

	commission := seedCommission(t, svc, policy.ID)
	if commission.Status != domain.CommissionStatusPending {
		t.Fatalf("expected pending default, got %s", commission.Status)
	}
}

func TestCommissionCreateRequiresPolicy(t *testing.T) {
	svc := NewCommissionService(newFakeCommissionRepo(), newFakePolicyRepo(), &fakeFinancialRepo{}, events.NewInMemoryDispatcher())

	err := svc.Create(context.Background(), &domain.Commission{PolicyID: 7, Amount: 100, Rate: 0.1})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

// Marking a commission paid must book a commission payment, and deleting the
// commission must remove the derived ledger entry again.
func TestCommissionPayoutLedgerLifecycle(t *testing.T) {
	policies := newFakePolicyRepo()
	policy := seedPolicy(t, policies)
	financial := &fakeFinancialRepo{}
	dispatcher := events.NewInMemoryDispatcher()

	var statusEvents []events.Event
	dispatcher.Subscribe(events.EventCommissionStatusChanged, func(_ context.Context, e events.Event) error {
		statusEvents = append(statusEvents, e)
		return nil
	})

	svc := NewCommissionService(newFakeCommissionRepo(), policies, financial, dispatcher)
	commission := seedCommission(t, svc, policy.ID)

	paid, err := svc.UpdateStatus(context.Background(), testIdentity(), commission.ID, domain.CommissionStatusPaid)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != domain.CommissionStatusPaid {
		t.Fatalf("expected paid, got %s", paid.Status)
	}
	if len(financial.entries) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(financial.entries))
	}
	if financial.entries[0].TransactionType != domain.FinancialTxCommissionPayment {
		t.Fatalf("expected commission_payment, got %s", financial.entries[0].TransactionType)
	}
	if financial.entries[0].Amount != 300 {
		t.Fatalf("expected amount 300, got %f", financial.entries[0].Amount)
	}
	if len(statusEvents) != 1 {
		t.Fatalf("expected one status event, got %d", len(statusEvents))
	}

	if err := svc.Delete(context.Background(), commission.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(financial.entries) != 0 {
		t.Fatalf("delete must remove derived ledger entries, got %d", len(financial.entries))
	}
}

func TestCommissionSameStatusIsNoOp(t *testing.T) {
	policies := newFakePolicyRepo()
	policy := seedPolicy(t, policies)
	financial := &fakeFinancialRepo{}
	svc := NewCommissionService(newFakeCommissionRepo(), policies, financial, events.NewInMemoryDispatcher())

	commission := seedCommission(t, svc, policy.ID)
	if _, err := svc.UpdateStatus(context.Background(), testIdentity(), commission.ID, domain.CommissionStatusPending); err != nil {
		t.Fatalf("same-status update: %v", err)
	}
	if len(financial.entries) != 0 {
		t.Fatalf("no-op update booked a ledger entry")
	}
}

func TestCommissionUpdateStatusRejectsUnknown(t *testing.T) {
	svc := NewCommissionService(newFakeCommissionRepo(), newFakePolicyRepo(), &fakeFinancialRepo{}, events.NewInMemoryDispatcher())

	_, err := svc.UpdateStatus(context.Background(), testIdentity(), 1, domain.CommissionStatus("void"))
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}
