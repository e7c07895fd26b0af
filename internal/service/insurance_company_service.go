package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// InsuranceCompanyService coordinates carrier CRUD.
type InsuranceCompanyService struct {
	companies repository.InsuranceCompanyRepository
}

// NewInsuranceCompanyService builds the service.
func NewInsuranceCompanyService(companies repository.InsuranceCompanyRepository) *InsuranceCompanyService {
	return &InsuranceCompanyService{companies: companies}
}

// List returns all carriers.
func (s *InsuranceCompanyService) List(ctx context.Context) ([]domain.InsuranceCompany, error) {
	return s.companies.List(ctx)
}

// Get returns a single carrier.
func (s *InsuranceCompanyService) Get(ctx context.Context, id int64) (*domain.InsuranceCompany, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("insurance company")
		}
		return nil, err
	}
	return company, nil
}

// Create validates and persists a new carrier.
func (s *InsuranceCompanyService) Create(ctx context.Context, company *domain.InsuranceCompany) error {
	if company.Name == "" || company.Code == "" || company.Phone == "" || company.Email == "" {
		return apperrors.NewValidationError("name, code, phone, email required")
	}
	if company.Status == "" {
		company.Status = domain.PartnerStatusActive
	}
	if err := s.companies.Create(ctx, company); err != nil {
		if repository.IsUniqueViolation(err) {
			return apperrors.NewValidationError("company code already in use")
		}
		return err
	}
	return nil
}

// Update replaces a carrier record.
func (s *InsuranceCompanyService) Update(ctx context.Context, company *domain.InsuranceCompany) error {
	if company.Name == "" || company.Code == "" || company.Phone == "" || company.Email == "" {
		return apperrors.NewValidationError("name, code, phone, email required")
	}
	if err := s.companies.Update(ctx, company); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("insurance company")
		}
		if repository.IsUniqueViolation(err) {
			return apperrors.NewValidationError("company code already in use")
		}
		return err
	}
	return nil
}

// Delete removes a carrier.
func (s *InsuranceCompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("insurance company")
		}
		return err
	}
	return nil
}
