package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// CustomerService coordinates customer CRUD.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService builds the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// Get returns a single customer.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer")
		}
		return nil, err
	}
	return customer, nil
}

// Create validates and persists a new customer.
func (s *CustomerService) Create(ctx context.Context, customer *domain.Customer) error {
	if customer.FirstName == "" || customer.LastName == "" || customer.Email == "" || customer.Phone == "" {
		return apperrors.NewValidationError("firstName, lastName, email, phone required")
	}
	return s.customers.Create(ctx, customer)
}

// Update replaces a customer record.
func (s *CustomerService) Update(ctx context.Context, customer *domain.Customer) error {
	if customer.FirstName == "" || customer.LastName == "" || customer.Email == "" || customer.Phone == "" {
		return apperrors.NewValidationError("firstName, lastName, email, phone required")
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer")
		}
		return err
	}
	return nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer")
		}
		return err
	}
	return nil
}
