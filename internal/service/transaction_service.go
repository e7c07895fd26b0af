package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// TransactionService coordinates the bookkeeping ledger.
type TransactionService struct {
	transactions repository.TransactionRepository
}

// NewTransactionService builds the service.
func NewTransactionService(transactions repository.TransactionRepository) *TransactionService {
	return &TransactionService{transactions: transactions}
}

// List returns all ledger entries, newest first.
func (s *TransactionService) List(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.List(ctx)
}

// Get returns a single ledger entry.
func (s *TransactionService) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("transaction")
		}
		return nil, err
	}
	return tx, nil
}

// Create validates and persists a ledger entry.
func (s *TransactionService) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}
	return s.transactions.Create(ctx, tx)
}

// Update replaces a ledger entry.
func (s *TransactionService) Update(ctx context.Context, tx *domain.Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}
	if err := s.transactions.Update(ctx, tx); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("transaction")
		}
		return err
	}
	return nil
}

// Delete removes a ledger entry.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("transaction")
		}
		return err
	}
	return nil
}

func validateTransaction(tx *domain.Transaction) error {
	if tx.Category == "" || tx.Amount <= 0 {
		return apperrors.NewValidationError("category and a positive amount required")
	}
	if tx.Type != domain.TransactionTypeIncome && tx.Type != domain.TransactionTypeExpense {
		return apperrors.NewValidationError("type must be income or expense")
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if tx.PaymentMethod == "" {
		tx.PaymentMethod = domain.PaymentMethodBank
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionStatusCompleted
	}
	return nil
}
