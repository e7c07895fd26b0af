package domain

import "time"

// InsuranceCompany is a carrier the agency sells policies for.
type InsuranceCompany struct {
	ID             int64         `db:"id" json:"id"`
	Name           string        `db:"name" json:"name"`
	Code           string        `db:"code" json:"code"`
	ContactPerson  *string       `db:"contact_person" json:"contactPerson,omitempty"`
	Phone          string        `db:"phone" json:"phone"`
	Email          string        `db:"email" json:"email"`
	Address        *string       `db:"address" json:"address,omitempty"`
	TaxNumber      *string       `db:"tax_number" json:"taxNumber,omitempty"`
	FoundationYear *int          `db:"foundation_year" json:"foundationYear,omitempty"`
	Website        *string       `db:"website" json:"website,omitempty"`
	CommissionRate *float64      `db:"commission_rate" json:"commissionRate,omitempty"`
	PaymentTerms   *string       `db:"payment_terms" json:"paymentTerms,omitempty"`
	ContractDate   *time.Time    `db:"contract_date" json:"contractDate,omitempty"`
	Status         PartnerStatus `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time    `db:"updated_at" json:"updatedAt,omitempty"`
}
