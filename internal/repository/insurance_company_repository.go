package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// InsuranceCompanyRepository defines persistence access for carriers.
type InsuranceCompanyRepository interface {
	List(ctx context.Context) ([]domain.InsuranceCompany, error)
	GetByID(ctx context.Context, id int64) (*domain.InsuranceCompany, error)
	Create(ctx context.Context, company *domain.InsuranceCompany) error
	Update(ctx context.Context, company *domain.InsuranceCompany) error
	Delete(ctx context.Context, id int64) error
}

type insuranceCompanyRepository struct {
	db DB
}

// NewInsuranceCompanyRepository returns a Postgres-backed implementation.
func NewInsuranceCompanyRepository(db DB) InsuranceCompanyRepository {
	return &insuranceCompanyRepository{db: db}
}

const insuranceCompanyColumns = `
        id, name, code, contact_person, phone, email, address, tax_number,
        foundation_year, website, commission_rate, payment_terms,
        contract_date, status, created_at, updated_at`

func (r *insuranceCompanyRepository) List(ctx context.Context) ([]domain.InsuranceCompany, error) {
	return collectList[domain.InsuranceCompany](ctx, r.db,
		`SELECT `+insuranceCompanyColumns+` FROM insurance_companies ORDER BY id`)
}

func (r *insuranceCompanyRepository) GetByID(ctx context.Context, id int64) (*domain.InsuranceCompany, error) {
	return collectOne[domain.InsuranceCompany](ctx, r.db,
		`SELECT `+insuranceCompanyColumns+` FROM insurance_companies WHERE id = $1`, id)
}

func (r *insuranceCompanyRepository) Create(ctx context.Context, company *domain.InsuranceCompany) error {
	const query = `
        INSERT INTO insurance_companies (name, code, contact_person, phone,
            email, address, tax_number, foundation_year, website,
            commission_rate, payment_terms, contract_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		company.Name,
		company.Code,
		company.ContactPerson,
		company.Phone,
		company.Email,
		company.Address,
		company.TaxNumber,
		company.FoundationYear,
		company.Website,
		company.CommissionRate,
		company.PaymentTerms,
		company.ContractDate,
		company.Status,
	).Scan(&company.ID, &company.CreatedAt)
}

func (r *insuranceCompanyRepository) Update(ctx context.Context, company *domain.InsuranceCompany) error {
	const query = `
        UPDATE insurance_companies SET name=$1, code=$2, contact_person=$3,
            phone=$4, email=$5, address=$6, tax_number=$7, foundation_year=$8,
            website=$9, commission_rate=$10, payment_terms=$11,
            contract_date=$12, status=$13, updated_at=NOW()
        WHERE id=$14`

	return execAffecting(ctx, r.db, query,
		company.Name,
		company.Code,
		company.ContactPerson,
		company.Phone,
		company.Email,
		company.Address,
		company.TaxNumber,
		company.FoundationYear,
		company.Website,
		company.CommissionRate,
		company.PaymentTerms,
		company.ContractDate,
		company.Status,
		company.ID,
	)
}

func (r *insuranceCompanyRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM insurance_companies WHERE id = $1`, id)
}
