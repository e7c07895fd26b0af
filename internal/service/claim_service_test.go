package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

type fakeClaimRepo struct {
	claims map[int64]*domain.Claim
	nextID int64
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: map[int64]*domain.Claim{}}
}

func (f *fakeClaimRepo) List(context.Context) ([]domain.ClaimWithPolicy, error) {
	out := make([]domain.ClaimWithPolicy, 0, len(f.claims))
	for _, c := range f.claims {
		out = append(out, domain.ClaimWithPolicy{Claim: *c})
	}
	return out, nil
}

func (f *fakeClaimRepo) ListByPolicy(_ context.Context, policyID int64) ([]domain.Claim, error) {
	var out []domain.Claim
	for _, c := range f.claims {
		if c.PolicyID == policyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeClaimRepo) GetByID(_ context.Context, id int64) (*domain.Claim, error) {
	c, ok := f.claims[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClaimRepo) Create(_ context.Context, claim *domain.Claim) error {
	f.nextID++
	claim.ID = f.nextID
	stored := *claim
	f.claims[claim.ID] = &stored
	return nil
}

func (f *fakeClaimRepo) Update(_ context.Context, claim *domain.Claim) error {
	if _, ok := f.claims[claim.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *claim
	f.claims[claim.ID] = &stored
	return nil
}

func (f *fakeClaimRepo) UpdateStatus(_ context.Context, id int64, status domain.ClaimStatus) error {
	c, ok := f.claims[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.Status = status
	return nil
}

func (f *fakeClaimRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.claims[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.claims, id)
	return nil
}

type fakePolicyRepo struct {
	policies map[int64]*domain.Policy
	nextID   int64
}

func newFakePolicyRepo() *fakePolicyRepo {
	return &fakePolicyRepo{policies: map[int64]*domain.Policy{}}
}

func (f *fakePolicyRepo) List(context.Context) ([]domain.Policy, error) {
	out := make([]domain.Policy, 0, len(f.policies))
	for _, p := range f.policies {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePolicyRepo) GetByID(_ context.Context, id int64) (*domain.Policy, error) {
	p, ok := f.policies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (f *fakePolicyRepo) Create(_ context.Context, policy *domain.Policy) error {
	f.nextID++
	policy.ID = f.nextID
	stored := *policy
	f.policies[policy.ID] = &stored
	return nil
}

func (f *fakePolicyRepo) Update(_ context.Context, policy *domain.Policy) error {
	if _, ok := f.policies[policy.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *policy
	f.policies[policy.ID] = &stored
	return nil
}

func (f *fakePolicyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.policies[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.policies, id)
	return nil
}

func (f *fakePolicyRepo) ListExpiringBefore(_ context.Context, cutoff time.Time) ([]domain.Policy, error) {
	var out []domain.Policy
	for _, p := range f.policies {
		if p.Status == domain.PolicyStatusActive && p.EndDate.Before(cutoff) {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeFinancialRepo struct {
	entries []domain.FinancialTransaction
	nextID  int64
}

func (f *fakeFinancialRepo) List(context.Context) ([]domain.FinancialTransaction, error) {
	return append([]domain.FinancialTransaction{}, f.entries...), nil
}

func (f *fakeFinancialRepo) Create(_ context.Context, tx *domain.FinancialTransaction) error {
	f.nextID++
	tx.ID = f.nextID
	f.entries = append(f.entries, *tx)
	return nil
}

func (f *fakeFinancialRepo) DeleteByRelated(_ context.Context, txType domain.FinancialTransactionType, relatedID int64) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.TransactionType == txType && e.RelatedID != nil && *e.RelatedID == relatedID {
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return nil
}

func testIdentity() auth.Identity {
	return auth.Identity{UserID: 1, Username: "mgr", Role: domain.RoleManager}
}

func seedPolicy(t *testing.T, policies *fakePolicyRepo) *domain.Policy {
	t.Helper()
	policy := &domain.Policy{
		CustomerID:   1,
		PolicyNumber: "POL-1",
		StartDate:    time.Now(),
		EndDate:      time.Now().Add(365 * 24 * time.Hour),
		Premium:      1200,
		Status:       domain.PolicyStatusActive,
	}
	if err := policies.Create(context.Background(), policy); err != nil {
		t.Fatalf("seed policy: %v", err)
	}
	return policy
}

func TestClaimCreateRequiresExistingPolicy(t *testing.T) {
	svc := NewClaimService(newFakeClaimRepo(), newFakePolicyRepo(), &fakeFinancialRepo{}, events.NewInMemoryDispatcher())

	err := svc.Create(context.Background(), testIdentity(), &domain.Claim{
		PolicyID:     99,
		ClaimNumber:  "CLM-1",
		ClaimDate:    time.Now(),
		Description:  "rear bumper",
		DamageAmount: 500,
	})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestClaimCreateDefaultsToPendingAndPublishes(t *testing.T) {
	policies := newFakePolicyRepo()
	policy := seedPolicy(t, policies)
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventClaimCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewClaimService(newFakeClaimRepo(), policies, &fakeFinancialRepo{}, dispatcher)
	claim := &domain.Claim{
		PolicyID:     policy.ID,
		ClaimNumber:  "CLM-1",
		ClaimDate:    time.Now(),
		Description:  "hail damage",
		DamageAmount: 2500,
	}
	if err := svc.Create(context.Background(), testIdentity(), claim); err != nil {
		t.Fatalf("create: %v", err)
	}
	if claim.Status != domain.ClaimStatusPending {
		t.Fatalf("expected pending default, got %s", claim.Status)
	}
	if len(published) != 1 {
		t.Fatalf("expected one claim_created event, got %d", len(published))
	}
	if published[0].Actor.Username != "mgr" {
		t.Fatalf("event actor mismatch: %+v", published[0].Actor)
	}
}

// Approving a claim must book a claim payment into the financial ledger.
func TestClaimApprovalBooksPayment(t *testing.T) {
	policies := newFakePolicyRepo()
	policy := seedPolicy(t, policies)
	financial := &fakeFinancialRepo{}
	svc := NewClaimService(newFakeClaimRepo(), policies, financial, events.NewInMemoryDispatcher())

	claim := &domain.Claim{
		PolicyID:     policy.ID,
		ClaimNumber:  "CLM-2",
		ClaimDate:    time.Now(),
		Description:  "theft",
		DamageAmount: 4000,
	}
	if err := svc.Create(context.Background(), testIdentity(), claim); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), testIdentity(), claim.ID, domain.ClaimStatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != domain.ClaimStatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if len(financial.entries) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(financial.entries))
	}
	entry := financial.entries[0]
	if entry.TransactionType != domain.FinancialTxClaimPayment {
		t.Fatalf("expected claim_payment, got %s", entry.TransactionType)
	}
	if entry.Amount != 4000 {
		t.Fatalf("expected amount 4000, got %f", entry.Amount)
	}

	// Re-approving with the same status must not double-book.
	if _, err := svc.UpdateStatus(context.Background(), testIdentity(), claim.ID, domain.ClaimStatusApproved); err != nil {
		t.Fatalf("idempotent approve: %v", err)
	}
	if len(financial.entries) != 1 {
		t.Fatalf("same-status update double-booked the ledger: %d entries", len(financial.entries))
	}
}

func TestClaimRejectionBooksNothing(t *testing.T) {
	policies := newFakePolicyRepo()
	policy := seedPolicy(t, policies)
	financial := &fakeFinancialRepo{}
	svc := NewClaimService(newFakeClaimRepo(), policies, financial, events.NewInMemoryDispatcher())

	claim := &domain.Claim{
		PolicyID:     policy.ID,
		ClaimNumber:  "CLM-3",
		ClaimDate:    time.Now(),
		Description:  "scratch",
		DamageAmount: 150,
	}
	if err := svc.Create(context.Background(), testIdentity(), claim); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), testIdentity(), claim.ID, domain.ClaimStatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(financial.entries) != 0 {
		t.Fatalf("rejection must not book a payment, got %d entries", len(financial.entries))
	}
}

func TestClaimUpdateStatusRejectsUnknown(t *testing.T) {
	svc := NewClaimService(newFakeClaimRepo(), newFakePolicyRepo(), &fakeFinancialRepo{}, events.NewInMemoryDispatcher())

	_, err := svc.UpdateStatus(context.Background(), testIdentity(), 1, domain.ClaimStatus("settled"))
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}
