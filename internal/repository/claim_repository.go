package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// ClaimRepository defines persistence access for damage claims.
type ClaimRepository interface {
	List(ctx context.Context) ([]domain.ClaimWithPolicy, error)
	ListByPolicy(ctx context.Context, policyID int64) ([]domain.Claim, error)
	GetByID(ctx context.Context, id int64) (*domain.Claim, error)
	Create(ctx context.Context, claim *domain.Claim) error
	Update(ctx context.Context, claim *domain.Claim) error
	UpdateStatus(ctx context.Context, id int64, status domain.ClaimStatus) error
	Delete(ctx context.Context, id int64) error
}

type claimRepository struct {
	db DB
}

// NewClaimRepository returns a Postgres-backed implementation.
func NewClaimRepository(db DB) ClaimRepository {
	return &claimRepository{db: db}
}

const claimColumns = `
        id, policy_id, claim_number, claim_date, description, damage_amount,
        status, documents, created_at, updated_at`

func (r *claimRepository) List(ctx context.Context) ([]domain.ClaimWithPolicy, error) {
	const query = `
        SELECT c.id, c.policy_id, c.claim_number, c.claim_date, c.description,
               c.damage_amount, c.status, c.documents, c.created_at, c.updated_at,
               p.policy_number,
               cu.first_name AS customer_first_name,
               cu.last_name AS customer_last_name
        FROM claims c
        JOIN policies p ON c.policy_id = p.id
        JOIN customers cu ON p.customer_id = cu.id
        ORDER BY c.id`

	return collectList[domain.ClaimWithPolicy](ctx, r.db, query)
}

func (r *claimRepository) ListByPolicy(ctx context.Context, policyID int64) ([]domain.Claim, error) {
	return collectList[domain.Claim](ctx, r.db,
		`SELECT `+claimColumns+` FROM claims WHERE policy_id = $1 ORDER BY id`, policyID)
}

func (r *claimRepository) GetByID(ctx context.Context, id int64) (*domain.Claim, error) {
	return collectOne[domain.Claim](ctx, r.db,
		`SELECT `+claimColumns+` FROM claims WHERE id = $1`, id)
}

func (r *claimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	const query = `
        INSERT INTO claims (policy_id, claim_number, claim_date, description,
            damage_amount, status, documents)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		claim.PolicyID,
		claim.ClaimNumber,
		claim.ClaimDate,
		claim.Description,
		claim.DamageAmount,
		claim.Status,
		claim.Documents,
	).Scan(&claim.ID, &claim.CreatedAt)
}

func (r *claimRepository) Update(ctx context.Context, claim *domain.Claim) error {
	const query = `
        UPDATE claims SET policy_id=$1, claim_number=$2, claim_date=$3,
            description=$4, damage_amount=$5, status=$6, documents=$7,
            updated_at=NOW()
        WHERE id=$8`

	return execAffecting(ctx, r.db, query,
		claim.PolicyID,
		claim.ClaimNumber,
		claim.ClaimDate,
		claim.Description,
		claim.DamageAmount,
		claim.Status,
		claim.Documents,
		claim.ID,
	)
}

func (r *claimRepository) UpdateStatus(ctx context.Context, id int64, status domain.ClaimStatus) error {
	return execAffecting(ctx, r.db,
		`UPDATE claims SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func (r *claimRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM claims WHERE id = $1`, id)
}
