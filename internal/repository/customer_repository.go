package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// CustomerRepository defines persistence access for customers.
type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int64) error
}

type customerRepository struct {
	db DB
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `
        id, first_name, last_name, email, phone, address, city,
        postal_code, birth_date, identity_number, created_at, updated_at`

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	return collectList[domain.Customer](ctx, r.db,
		`SELECT `+customerColumns+` FROM customers ORDER BY id`)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return collectOne[domain.Customer](ctx, r.db,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (first_name, last_name, email, phone, address,
            city, postal_code, birth_date, identity_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.BirthDate,
		customer.IdentityNumber,
	).Scan(&customer.ID, &customer.CreatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET first_name=$1, last_name=$2, email=$3, phone=$4,
            address=$5, city=$6, postal_code=$7, birth_date=$8,
            identity_number=$9, updated_at=NOW()
        WHERE id=$10`

	return execAffecting(ctx, r.db, query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.BirthDate,
		customer.IdentityNumber,
		customer.ID,
	)
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, `DELETE FROM customers WHERE id = $1`, id)
}
