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

// CommissionService coordinates commission workflows and the derived
// financial ledger.
type CommissionService struct {
	commissions repository.CommissionRepository
	policies    repository.PolicyRepository
	financial   repository.FinancialTransactionRepository
	dispatcher  events.Dispatcher
}

// NewCommissionService builds the service.
func NewCommissionService(commissions repository.CommissionRepository, policies repository.PolicyRepository, financial repository.FinancialTransactionRepository, dispatcher events.Dispatcher) *CommissionService {
	return &CommissionService{commissions: commissions, policies: policies, financial: financial, dispatcher: dispatcher}
}

// List returns all commissions.
func (s *CommissionService) List(ctx context.Context) ([]domain.Commission, error) {
	return s.commissions.List(ctx)
}

// ListByPolicy returns commissions earned on one policy.
func (s *CommissionService) ListByPolicy(ctx context.Context, policyID int64) ([]domain.Commission, error) {
	return s.commissions.ListByPolicy(ctx, policyID)
}

// Get returns a single commission.
func (s *CommissionService) Get(ctx context.Context, id int64) (*domain.Commission, error) {
	commission, err := s.commissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("commission")
		}
		return nil, err
	}
	return commission, nil
}

// Create validates the referenced policy and persists the commission.
func (s *CommissionService) Create(ctx context.Context, commission *domain.Commission) error {
	if commission.PolicyID == 0 || commission.Amount <= 0 || commission.Rate <= 0 {
		return apperrors.NewValidationError("policyId, amount, rate required")
	}
	if _, err := s.policies.GetByID(ctx, commission.PolicyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("policy")
		}
		return err
	}
	if commission.Status == "" {
		commission.Status = domain.CommissionStatusPending
	}
	return s.commissions.Create(ctx, commission)
}

// Update replaces a commission record.
func (s *CommissionService) Update(ctx context.Context, commission *domain.Commission) error {
	if commission.PolicyID == 0 || commission.Amount <= 0 || commission.Rate <= 0 {
		return apperrors.NewValidationError("policyId, amount, rate required")
	}
	if err := s.commissions.Update(ctx, commission); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("commission")
		}
		return err
	}
	return nil
}

// UpdateStatus marks a commission paid or pending. Marking it paid books a
// commission payment into the financial ledger.
func (s *CommissionService) UpdateStatus(ctx context.Context, actor auth.Identity, id int64, status domain.CommissionStatus) (*domain.Commission, error) {
	if status != domain.CommissionStatusPending && status != domain.CommissionStatusPaid {
		return nil, apperrors.NewValidationError("unknown commission status")
	}
	commission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := commission.Status
	if oldStatus == status {
		return commission, nil
	}

	if err := s.commissions.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("commission")
		}
		return nil, err
	}
	commission.Status = status

	if status == domain.CommissionStatusPaid && s.financial != nil {
		relatedID := commission.ID
		tx := &domain.FinancialTransaction{
			TransactionType: domain.FinancialTxCommissionPayment,
			RelatedID:       &relatedID,
			Amount:          commission.Amount,
			TransactionDate: time.Now(),
			Description:     fmt.Sprintf("commission payout for policy %d", commission.PolicyID),
			Status:          "completed",
		}
		if err := s.financial.Create(ctx, tx); err != nil {
			return nil, err
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommissionStatusChanged,
			TargetID:  commission.ID,
			Actor:     events.Actor{UserID: actor.UserID, Username: actor.Username, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.CommissionStatusChangedPayload{
				PolicyID:  commission.PolicyID,
				OldStatus: oldStatus,
				NewStatus: status,
				Amount:    commission.Amount,
			},
		})
	}
	return commission, nil
}

// Delete removes a commission together with its derived ledger entries.
func (s *CommissionService) Delete(ctx context.Context, id int64) error {
	if err := s.commissions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("commission")
		}
		return err
	}
	if s.financial != nil {
		if err := s.financial.DeleteByRelated(ctx, domain.FinancialTxCommissionPayment, id); err != nil {
			return err
		}
	}
	return nil
}

// ListFinancial returns the derived financial ledger.
func (s *CommissionService) ListFinancial(ctx context.Context) ([]domain.FinancialTransaction, error) {
	return s.financial.List(ctx)
}

// CreateFinancial books a manual ledger entry.
func (s *CommissionService) CreateFinancial(ctx context.Context, tx *domain.FinancialTransaction) error {
	if tx.TransactionType == "" || tx.Amount <= 0 || tx.Description == "" {
		return apperrors.NewValidationError("transactionType, amount, description required")
	}
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = time.Now()
	}
	if tx.Status == "" {
		tx.Status = "completed"
	}
	return s.financial.Create(ctx, tx)
}
