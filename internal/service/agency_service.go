package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// AgencyService coordinates partner agency CRUD.
type AgencyService struct {
	agencies repository.AgencyRepository
}

// NewAgencyService builds the service.
func NewAgencyService(agencies repository.AgencyRepository) *AgencyService {
	return &AgencyService{agencies: agencies}
}

// List returns all partner agencies.
func (s *AgencyService) List(ctx context.Context) ([]domain.Agency, error) {
	return s.agencies.List(ctx)
}

// Get returns a single agency.
func (s *AgencyService) Get(ctx context.Context, id int64) (*domain.Agency, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agency")
		}
		return nil, err
	}
	return agency, nil
}

// Create validates and persists a new agency.
func (s *AgencyService) Create(ctx context.Context, agency *domain.Agency) error {
	if agency.Name == "" || agency.Code == "" || agency.OwnerName == "" || agency.Phone == "" || agency.Email == "" {
		return apperrors.NewValidationError("name, code, ownerName, phone, email required")
	}
	if agency.Status == "" {
		agency.Status = domain.PartnerStatusActive
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		if repository.IsUniqueViolation(err) {
			return apperrors.NewValidationError("agency code already in use")
		}
		return err
	}
	return nil
}

// Update replaces an agency record.
func (s *AgencyService) Update(ctx context.Context, agency *domain.Agency) error {
	if agency.Name == "" || agency.Code == "" || agency.OwnerName == "" || agency.Phone == "" || agency.Email == "" {
		return apperrors.NewValidationError("name, code, ownerName, phone, email required")
	}
	if err := s.agencies.Update(ctx, agency); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("agency")
		}
		if repository.IsUniqueViolation(err) {
			return apperrors.NewValidationError("agency code already in use")
		}
		return err
	}
	return nil
}

// Delete removes an agency.
func (s *AgencyService) Delete(ctx context.Context, id int64) error {
	if err := s.agencies.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("agency")
		}
		return err
	}
	return nil
}
