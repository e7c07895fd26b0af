package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// TransactionRepository defines persistence access for the bookkeeping ledger.
type TransactionRepository interface {
	List(ctx context.Context) ([]domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	Create(ctx context.Context, tx *domain.Transaction) error
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id int64) error
}

// FinancialTransactionRepository covers money movements derived from
// policies, commissions and claims.
type FinancialTransactionRepository interface {
	List(ctx context.Context) ([]domain.FinancialTransaction, error)
	Create(ctx context.Context, tx *domain.FinancialTransaction) error
	DeleteByRelated(ctx context.Context, txType domain.FinancialTransactionType, relatedID int64) error
}

type transactionRepository struct {
	db DB
}

// NewTransactionRepository returns a Postgres-backed implementation.
func NewTransactionRepository(db DB) TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `
        id, date, type, category, amount, related_entity_type,
        related_entity_id, description, payment_method, status,
        created_at, updated_at`

func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	return collectList[domain.Transaction](ctx, r.db,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date DESC, id DESC`)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	return collectOne[domain.Transaction](ctx, r.db,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (date, type, category, amount,
            related_entity_type, related_entity_id, description,
            payment_method, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		tx.Date,
		tx.Type,
		tx.Category,
		tx.Amount,
		tx.RelatedEntityType,
		tx.RelatedEntityID,
		tx.Description,
		tx.PaymentMethod,
		tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        UPDATE transactions SET date=$1, type=$2, category=$3, amount=$4,
            related_entity_type=$5, related_entity_id=$6, description=$7,
            payment_method=$8, status=$9, updated_at=NOW()
        WHERE id=$10`

	return execAffecting(ctx, r.db, query,
		tx.Date,
		tx.Type,
		tx.Category,
		tx.Amount,
		tx.RelatedEntityType,
		tx.RelatedEntityID,
		tx.Description,
		tx.PaymentMethod,
		tx.Status,
		tx.ID,
	)
}

func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM transactions WHERE id = $1`, id)
}

type financialTransactionRepository struct {
	db DB
}

// NewFinancialTransactionRepository returns a Postgres-backed implementation.
func NewFinancialTransactionRepository(db DB) FinancialTransactionRepository {
	return &financialTransactionRepository{db: db}
}

func (r *financialTransactionRepository) List(ctx context.Context) ([]domain.FinancialTransaction, error) {
	const query = `
        SELECT id, transaction_type, related_id, amount, transaction_date,
               description, status, created_at, updated_at
        FROM financial_transactions
        ORDER BY transaction_date DESC, id DESC`

	return collectList[domain.FinancialTransaction](ctx, r.db, query)
}

func (r *financialTransactionRepository) Create(ctx context.Context, tx *domain.FinancialTransaction) error {
	const query = `
        INSERT INTO financial_transactions (transaction_type, related_id,
            amount, transaction_date, description, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		tx.TransactionType,
		tx.RelatedID,
		tx.Amount,
		tx.TransactionDate,
		tx.Description,
		tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *financialTransactionRepository) DeleteByRelated(ctx context.Context, txType domain.FinancialTransactionType, relatedID int64) error {
	// Deleting zero rows is fine here; the related record may never have
	// produced a money movement.
	_, err := r.db.Exec(ctx,
		`DELETE FROM financial_transactions WHERE transaction_type = $1 AND related_id = $2`,
		txType, relatedID)
	return err
}
