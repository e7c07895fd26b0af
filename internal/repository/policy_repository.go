package repository

import (
	"context"
	"time"

	"github.com/agencydesk/backoffice/internal/domain"
)

// PolicyRepository defines persistence access for policies.
type PolicyRepository interface {
	List(ctx context.Context) ([]domain.Policy, error)
	GetByID(ctx context.Context, id int64) (*domain.Policy, error)
	Create(ctx context.Context, policy *domain.Policy) error
	Update(ctx context.Context, policy *domain.Policy) error
	Delete(ctx context.Context, id int64) error
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.Policy, error)
}

type policyRepository struct {
	db DB
}

// NewPolicyRepository returns a Postgres-backed implementation.
func NewPolicyRepository(db DB) PolicyRepository {
	return &policyRepository{db: db}
}

const policyColumns = `
        id, customer_id, policy_number, insurance_type, start_date, end_date,
        premium, status, created_at, updated_at`

func (r *policyRepository) List(ctx context.Context) ([]domain.Policy, error) {
	return collectList[domain.Policy](ctx, r.db,
		`SELECT `+policyColumns+` FROM policies ORDER BY id`)
}

func (r *policyRepository) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	return collectOne[domain.Policy](ctx, r.db,
		`SELECT `+policyColumns+` FROM policies WHERE id = $1`, id)
}

func (r *policyRepository) Create(ctx context.Context, policy *domain.Policy) error {
	const query = `
        INSERT INTO policies (customer_id, policy_number, insurance_type,
            start_date, end_date, premium, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		policy.CustomerID,
		policy.PolicyNumber,
		policy.InsuranceType,
		policy.StartDate,
		policy.EndDate,
		policy.Premium,
		policy.Status,
	).Scan(&policy.ID, &policy.CreatedAt)
}

func (r *policyRepository) Update(ctx context.Context, policy *domain.Policy) error {
	const query = `
        UPDATE policies SET customer_id=$1, policy_number=$2, insurance_type=$3,
            start_date=$4, end_date=$5, premium=$6, status=$7, updated_at=NOW()
        WHERE id=$8`

	return execAffecting(ctx, r.db, query,
		policy.CustomerID,
		policy.PolicyNumber,
		policy.InsuranceType,
		policy.StartDate,
		policy.EndDate,
		policy.Premium,
		policy.Status,
		policy.ID,
	)
}

func (r *policyRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM policies WHERE id = $1`, id)
}

func (r *policyRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.Policy, error) {
	return collectList[domain.Policy](ctx, r.db,
		`SELECT `+policyColumns+` FROM policies
         WHERE status = 'active' AND end_date <= $1
         ORDER BY end_date`, cutoff)
}
