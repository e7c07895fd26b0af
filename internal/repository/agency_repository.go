package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// AgencyRepository defines persistence access for partner agencies.
type AgencyRepository interface {
	List(ctx context.Context) ([]domain.Agency, error)
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	Create(ctx context.Context, agency *domain.Agency) error
	Update(ctx context.Context, agency *domain.Agency) error
	Delete(ctx context.Context, id int64) error
}

type agencyRepository struct {
	db DB
}

// NewAgencyRepository returns a Postgres-backed implementation.
func NewAgencyRepository(db DB) AgencyRepository {
	return &agencyRepository{db: db}
}

const agencyColumns = `
        id, name, code, owner_name, phone, email, address, tax_number,
        foundation_year, employee_count, website, status, created_at, updated_at`

func (r *agencyRepository) List(ctx context.Context) ([]domain.Agency, error) {
	return collectList[domain.Agency](ctx, r.db,
		`SELECT `+agencyColumns+` FROM agencies ORDER BY id`)
}

func (r *agencyRepository) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	return collectOne[domain.Agency](ctx, r.db,
		`SELECT `+agencyColumns+` FROM agencies WHERE id = $1`, id)
}

func (r *agencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	const query = `
        INSERT INTO agencies (name, code, owner_name, phone, email, address,
            tax_number, foundation_year, employee_count, website, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		agency.Name,
		agency.Code,
		agency.OwnerName,
		agency.Phone,
		agency.Email,
		agency.Address,
		agency.TaxNumber,
		agency.FoundationYear,
		agency.EmployeeCount,
		agency.Website,
		agency.Status,
	).Scan(&agency.ID, &agency.CreatedAt)
}

func (r *agencyRepository) Update(ctx context.Context, agency *domain.Agency) error {
	const query = `
        UPDATE agencies SET name=$1, code=$2, owner_name=$3, phone=$4,
            email=$5, address=$6, tax_number=$7, foundation_year=$8,
            employee_count=$9, website=$10, status=$11, updated_at=NOW()
        WHERE id=$12`

	return execAffecting(ctx, r.db, query,
		agency.Name,
		agency.Code,
		agency.OwnerName,
		agency.Phone,
		agency.Email,
		agency.Address,
		agency.TaxNumber,
		agency.FoundationYear,
		agency.EmployeeCount,
		agency.Website,
		agency.Status,
		agency.ID,
	)
}

func (r *agencyRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM agencies WHERE id = $1`, id)
}
