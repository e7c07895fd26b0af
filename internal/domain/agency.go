package domain

import "time"

// PartnerStatus is shared by agencies and insurance companies.
type PartnerStatus string

const (
	PartnerStatusActive    PartnerStatus = "active"
	PartnerStatusPassive   PartnerStatus = "passive"
	PartnerStatusSuspended PartnerStatus = "suspended"
)

// Agency is a partner sales office.
type Agency struct {
	ID             int64         `db:"id" json:"id"`
	Name           string        `db:"name" json:"name"`
	Code           string        `db:"code" json:"code"`
	OwnerName      string        `db:"owner_name" json:"ownerName"`
	Phone          string        `db:"phone" json:"phone"`
	Email          string        `db:"email" json:"email"`
	Address        *string       `db:"address" json:"address,omitempty"`
	TaxNumber      *string       `db:"tax_number" json:"taxNumber,omitempty"`
	FoundationYear *int          `db:"foundation_year" json:"foundationYear,omitempty"`
	EmployeeCount  *int          `db:"employee_count" json:"employeeCount,omitempty"`
	Website        *string       `db:"website" json:"website,omitempty"`
	Status         PartnerStatus `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time    `db:"updated_at" json:"updatedAt,omitempty"`
}
