package domain

import "time"

// PolicyStatus is the lifecycle state of a policy.
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

// Policy is an insurance contract sold to a customer.
type Policy struct {
	ID            int64        `db:"id" json:"id"`
	CustomerID    int64        `db:"customer_id" json:"customerId"`
	PolicyNumber  string       `db:"policy_number" json:"policyNumber"`
	InsuranceType *string      `db:"insurance_type" json:"insuranceType,omitempty"`
	StartDate     time.Time    `db:"start_date" json:"startDate"`
	EndDate       time.Time    `db:"end_date" json:"endDate"`
	Premium       float64      `db:"premium" json:"premium"`
	Status        PolicyStatus `db:"status" json:"status"`
	CreatedAt     time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt     *time.Time   `db:"updated_at" json:"updatedAt,omitempty"`
}
