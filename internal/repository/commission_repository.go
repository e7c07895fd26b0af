package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// CommissionRepository defines persistence access for commissions.
type CommissionRepository interface {
	List(ctx context.Context) ([]domain.Commission, error)
	ListByPolicy(ctx context.Context, policyID int64) ([]domain.Commission, error)
	GetByID(ctx context.Context, id int64) (*domain.Commission, error)
	Create(ctx context.Context, commission *domain.Commission) error
	Update(ctx context.Context, commission *domain.Commission) error
	UpdateStatus(ctx context.Context, id int64, status domain.CommissionStatus) error
	Delete(ctx context.Context, id int64) error
}

type commissionRepository struct {
	db DB
}

// NewCommissionRepository returns a Postgres-backed implementation.
func NewCommissionRepository(db DB) CommissionRepository {
	return &commissionRepository{db: db}
}

const commissionColumns = `
        id, policy_id, amount, rate, payment_date, status, created_at, updated_at`

func (r *commissionRepository) List(ctx context.Context) ([]domain.Commission, error) {
	return collectList[domain.Commission](ctx, r.db,
		`SELECT `+commissionColumns+` FROM commissions ORDER BY id`)
}

func (r *commissionRepository) ListByPolicy(ctx context.Context, policyID int64) ([]domain.Commission, error) {
	return collectList[domain.Commission](ctx, r.db,
		`SELECT `+commissionColumns+` FROM commissions WHERE policy_id = $1 ORDER BY id`, policyID)
}

func (r *commissionRepository) GetByID(ctx context.Context, id int64) (*domain.Commission, error) {
	return collectOne[domain.Commission](ctx, r.db,
		`SELECT `+commissionColumns+` FROM commissions WHERE id = $1`, id)
}

func (r *commissionRepository) Create(ctx context.Context, commission *domain.Commission) error {
	const query = `
        INSERT INTO commissions (policy_id, amount, rate, payment_date, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		commission.PolicyID,
		commission.Amount,
		commission.Rate,
		commission.PaymentDate,
		commission.Status,
	).Scan(&commission.ID, &commission.CreatedAt)
}

func (r *commissionRepository) Update(ctx context.Context, commission *domain.Commission) error {
	const query = `
        UPDATE commissions SET policy_id=$1, amount=$2, rate=$3,
            payment_date=$4, status=$5, updated_at=NOW()
        WHERE id=$6`

	return execAffecting(ctx, r.db, query,
		commission.PolicyID,
		commission.Amount,
		commission.Rate,
		commission.PaymentDate,
		commission.Status,
		commission.ID,
	)
}

func (r *commissionRepository) UpdateStatus(ctx context.Context, id int64, status domain.CommissionStatus) error {
	return execAffecting(ctx, r.db,
		`UPDATE commissions SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func (r *commissionRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM commissions WHERE id = $1`, id)
}
