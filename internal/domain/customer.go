package domain

import "time"

// Customer is an insured party managed by the agency.
type Customer struct {
	ID             int64      `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"firstName"`
	LastName       string     `db:"last_name" json:"lastName"`
	Email          string     `db:"email" json:"email"`
	Phone          string     `db:"phone" json:"phone"`
	Address        *string    `db:"address" json:"address,omitempty"`
	City           *string    `db:"city" json:"city,omitempty"`
	PostalCode     *string    `db:"postal_code" json:"postalCode,omitempty"`
	BirthDate      *time.Time `db:"birth_date" json:"birthDate,omitempty"`
	IdentityNumber *string    `db:"identity_number" json:"identityNumber,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}
