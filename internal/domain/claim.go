package domain

import "time"

// ClaimStatus is the processing state of a damage claim.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
	ClaimStatusPaid     ClaimStatus = "paid"
)

// Valid reports whether the status is a known claim state.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected, ClaimStatusPaid:
		return true
	}
	return false
}

// Claim is a damage claim filed against a policy.
type Claim struct {
	ID           int64       `db:"id" json:"id"`
	PolicyID     int64       `db:"policy_id" json:"policyId"`
	ClaimNumber  string      `db:"claim_number" json:"claimNumber"`
	ClaimDate    time.Time   `db:"claim_date" json:"claimDate"`
	Description  string      `db:"description" json:"description"`
	DamageAmount float64     `db:"damage_amount" json:"damageAmount"`
	Status       ClaimStatus `db:"status" json:"status"`
	Documents    []string    `db:"documents" json:"documents,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    *time.Time  `db:"updated_at" json:"updatedAt,omitempty"`
}

// ClaimWithPolicy joins a claim with policy and customer display fields for listings.
type ClaimWithPolicy struct {
	Claim
	PolicyNumber      string `db:"policy_number" json:"policyNumber"`
	CustomerFirstName string `db:"customer_first_name" json:"customerFirstName"`
	CustomerLastName  string `db:"customer_last_name" json:"customerLastName"`
}
