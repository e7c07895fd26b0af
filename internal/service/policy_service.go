package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// PolicyService coordinates policy workflows.
type PolicyService struct {
	policies   repository.PolicyRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// NewPolicyService builds the service.
func NewPolicyService(policies repository.PolicyRepository, customers repository.CustomerRepository, dispatcher events.Dispatcher) *PolicyService {
	return &PolicyService{policies: policies, customers: customers, dispatcher: dispatcher}
}

// List returns all policies.
func (s *PolicyService) List(ctx context.Context) ([]domain.Policy, error) {
	return s.policies.List(ctx)
}

// Get returns a single policy.
func (s *PolicyService) Get(ctx context.Context, id int64) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("policy")
		}
		return nil, err
	}
	return policy, nil
}

// Create persists a new policy after checking the customer exists.
func (s *PolicyService) Create(ctx context.Context, actor auth.Identity, policy *domain.Policy) error {
	if policy.CustomerID == 0 || policy.PolicyNumber == "" || policy.StartDate.IsZero() || policy.EndDate.IsZero() || policy.Premium <= 0 {
		return apperrors.NewValidationError("customerId, policyNumber, startDate, endDate, premium required")
	}
	if _, err := s.customers.GetByID(ctx, policy.CustomerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer")
		}
		return err
	}
	if policy.Status == "" {
		policy.Status = domain.PolicyStatusActive
	}
	if err := s.policies.Create(ctx, policy); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPolicyCreated,
			TargetID:  policy.ID,
			Actor:     events.Actor{UserID: actor.UserID, Username: actor.Username, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.PolicyCreatedPayload{
				PolicyNumber: policy.PolicyNumber,
				CustomerID:   policy.CustomerID,
				Premium:      policy.Premium,
			},
		})
	}
	return nil
}

// Update replaces a policy record.
func (s *PolicyService) Update(ctx context.Context, policy *domain.Policy) error {
	if policy.CustomerID == 0 || policy.PolicyNumber == "" || policy.StartDate.IsZero() || policy.EndDate.IsZero() || policy.Premium <= 0 {
		return apperrors.NewValidationError("customerId, policyNumber, startDate, endDate, premium required")
	}
	if policy.Status == "" {
		policy.Status = domain.PolicyStatusActive
	}
	if err := s.policies.Update(ctx, policy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("policy")
		}
		return err
	}
	return nil
}

// Delete removes a policy.
func (s *PolicyService) Delete(ctx context.Context, id int64) error {
	if err := s.policies.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("policy")
		}
		return err
	}
	return nil
}

// ListRenewals returns active policies that expire within the window.
func (s *PolicyService) ListRenewals(ctx context.Context, window time.Duration) ([]domain.Policy, error) {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	return s.policies.ListExpiringBefore(ctx, time.Now().Add(window))
}
