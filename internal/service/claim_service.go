package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// ClaimService coordinates damage claim workflows.
type ClaimService struct {
	claims     repository.ClaimRepository
	policies   repository.PolicyRepository
	financial  repository.FinancialTransactionRepository
	dispatcher events.Dispatcher
}

// NewClaimService builds the service.
func NewClaimService(claims repository.ClaimRepository, policies repository.PolicyRepository, financial repository.FinancialTransactionRepository, dispatcher events.Dispatcher) *ClaimService {
	return &ClaimService{claims: claims, policies: policies, financial: financial, dispatcher: dispatcher}
}

// List returns all claims joined with policy and customer display fields.
func (s *ClaimService) List(ctx context.Context) ([]domain.ClaimWithPolicy, error) {
	return s.claims.List(ctx)
}

// ListByPolicy returns claims filed against one policy.
func (s *ClaimService) ListByPolicy(ctx context.Context, policyID int64) ([]domain.Claim, error) {
	return s.claims.ListByPolicy(ctx, policyID)
}

// Get returns a single claim.
func (s *ClaimService) Get(ctx context.Context, id int64) (*domain.Claim, error) {
	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim")
		}
		return nil, err
	}
	return claim, nil
}

// Create validates the referenced policy and persists the claim.
func (s *ClaimService) Create(ctx context.Context, actor auth.Identity, claim *domain.Claim) error {
	if claim.PolicyID == 0 || claim.ClaimNumber == "" || claim.ClaimDate.IsZero() || claim.Description == "" || claim.DamageAmount <= 0 {
		return apperrors.NewValidationError("policyId, claimNumber, claimDate, description, damageAmount required")
	}
	if _, err := s.policies.GetByID(ctx, claim.PolicyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("policy")
		}
		return err
	}
	if claim.Status == "" {
		claim.Status = domain.ClaimStatusPending
	}
	if !claim.Status.Valid() {
		return apperrors.NewValidationError("unknown claim status")
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		return err
	}

	s.publish(ctx, actor, events.EventClaimCreated, claim.ID, events.ClaimCreatedPayload{
		ClaimNumber:  claim.ClaimNumber,
		PolicyID:     claim.PolicyID,
		DamageAmount: claim.DamageAmount,
	})
	return nil
}

// Update replaces a claim record.
func (s *ClaimService) Update(ctx context.Context, claim *domain.Claim) error {
	if claim.PolicyID == 0 || claim.ClaimNumber == "" || claim.ClaimDate.IsZero() || claim.Description == "" || claim.DamageAmount <= 0 || claim.Status == "" {
		return apperrors.NewValidationError("policyId, claimNumber, claimDate, description, damageAmount, status required")
	}
	if !claim.Status.Valid() {
		return apperrors.NewValidationError("unknown claim status")
	}
	if err := s.claims.Update(ctx, claim); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("claim")
		}
		return err
	}
	return nil
}

// UpdateStatus moves a claim through its lifecycle. Approving a claim books a
// claim payment into the financial ledger, matching the settlement flow.
func (s *ClaimService) UpdateStatus(ctx context.Context, actor auth.Identity, id int64, status domain.ClaimStatus) (*domain.Claim, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown claim status")
	}
	claim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := claim.Status
	if oldStatus == status {
		return claim, nil
	}

	if err := s.claims.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("claim")
		}
		return nil, err
	}
	claim.Status = status

	if status == domain.ClaimStatusApproved && s.financial != nil {
		relatedID := claim.ID
		tx := &domain.FinancialTransaction{
			TransactionType: domain.FinancialTxClaimPayment,
			RelatedID:       &relatedID,
			Amount:          claim.DamageAmount,
			TransactionDate: time.Now(),
			Description:     fmt.Sprintf("claim %s payment", claim.ClaimNumber),
			Status:          "completed",
		}
		if err := s.financial.Create(ctx, tx); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, actor, events.EventClaimStatusChanged, claim.ID, events.ClaimStatusChangedPayload{
		ClaimNumber: claim.ClaimNumber,
		OldStatus:   oldStatus,
		NewStatus:   status,
	})
	return claim, nil
}

// Delete removes a claim.
func (s *ClaimService) Delete(ctx context.Context, id int64) error {
	if err := s.claims.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("claim")
		}
		return err
	}
	return nil
}

func (s *ClaimService) publish(ctx context.Context, actor auth.Identity, eventType events.EventType, targetID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TargetID:  targetID,
		Actor:     events.Actor{UserID: actor.UserID, Username: actor.Username, Role: actor.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
