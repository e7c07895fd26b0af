package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
	nextID    int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int64]*domain.Customer{}}
}

func (f *fakeCustomerRepo) List(context.Context) ([]domain.Customer, error) {
	out := make([]domain.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	f.nextID++
	customer.ID = f.nextID
	stored := *customer
	f.customers[customer.ID] = &stored
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := f.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *customer
	f.customers[customer.ID] = &stored
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.customers, id)
	return nil
}

func seedCustomer(t *testing.T, customers *fakeCustomerRepo) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0100"}
	if err := customers.Create(context.Background(), customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func TestPolicyCreateRequiresExistingCustomer(t *testing.T) {
	svc := NewPolicyService(newFakePolicyRepo(), newFakeCustomerRepo(), events.NewInMemoryDispatcher())

	err := svc.Create(context.Background(), testIdentity(), &domain.Policy{
		CustomerID:   42,
		PolicyNumber: "POL-9",
		StartDate:    time.Now(),
		EndDate:      time.Now().Add(24 * time.Hour),
		Premium:      100,
	})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestPolicyCreateDefaultsAndPublishes(t *testing.T) {
	customers := newFakeCustomerRepo()
	customer := seedCustomer(t, customers)
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventPolicyCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewPolicyService(newFakePolicyRepo(), customers, dispatcher)
	policy := &domain.Policy{
		CustomerID:   customer.ID,
		PolicyNumber: "POL-1",
		StartDate:    time.Now(),
		EndDate:      time.Now().Add(365 * 24 * time.Hour),
		Premium:      1200,
	}
	if err := svc.Create(context.Background(), testIdentity(), policy); err != nil {
		t.Fatalf("create: %v", err)
	}
	if policy.Status != domain.PolicyStatusActive {
		t.Fatalf("expected active default, got %s", policy.Status)
	}
	if len(published) != 1 {
		t.Fatalf("expected one policy_created event, got %d", len(published))
	}
	payload, ok := published[0].Payload.(events.PolicyCreatedPayload)
	if !ok || payload.PolicyNumber != "POL-1" {
		t.Fatalf("unexpected payload %+v", published[0].Payload)
	}
}

func TestPolicyListRenewals(t *testing.T) {
	customers := newFakeCustomerRepo()
	customer := seedCustomer(t, customers)
	policies := newFakePolicyRepo()
	svc := NewPolicyService(policies, customers, events.NewInMemoryDispatcher())

	soon := &domain.Policy{
		CustomerID: customer.ID, PolicyNumber: "POL-SOON",
		StartDate: time.Now().Add(-300 * 24 * time.Hour),
		EndDate:   time.Now().Add(10 * 24 * time.Hour),
		Premium:   500,
	}
	far := &domain.Policy{
		CustomerID: customer.ID, PolicyNumber: "POL-FAR",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(200 * 24 * time.Hour),
		Premium:   500,
	}
	for _, p := range []*domain.Policy{soon, far} {
		if err := svc.Create(context.Background(), testIdentity(), p); err != nil {
			t.Fatalf("create %s: %v", p.PolicyNumber, err)
		}
	}

	renewals, err := svc.ListRenewals(context.Background(), 0)
	if err != nil {
		t.Fatalf("renewals: %v", err)
	}
	if len(renewals) != 1 || renewals[0].PolicyNumber != "POL-SOON" {
		t.Fatalf("expected only POL-SOON in the 30 day window, got %+v", renewals)
	}
}
