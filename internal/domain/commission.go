package domain

import "time"

// CommissionStatus is the payout state of a commission entry.
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

// Commission is the agency's earning on a policy.
type Commission struct {
	ID          int64            `db:"id" json:"id"`
	PolicyID    int64            `db:"policy_id" json:"policyId"`
	Amount      float64          `db:"amount" json:"amount"`
	Rate        float64          `db:"rate" json:"rate"`
	PaymentDate *time.Time       `db:"payment_date" json:"paymentDate,omitempty"`
	Status      CommissionStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time       `db:"updated_at" json:"updatedAt,omitempty"`
}
