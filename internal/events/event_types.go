package events

import (
	"time"

	"github.com/agencydesk/backoffice/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPolicyCreated           EventType = "policy_created"
	EventClaimCreated            EventType = "claim_created"
	EventClaimStatusChanged      EventType = "claim_status_changed"
	EventCommissionStatusChanged EventType = "commission_status_changed"
	EventPolicyExpiring          EventType = "policy_expiring"
)

// Actor is the user the event is attributed to.
type Actor struct {
	UserID   int64       `json:"userId"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TargetID  int64       `json:"targetId"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PolicyCreatedPayload payload.
type PolicyCreatedPayload struct {
	PolicyNumber string  `json:"policyNumber"`
	CustomerID   int64   `json:"customerId"`
	Premium      float64 `json:"premium"`
}

// ClaimCreatedPayload payload.
type ClaimCreatedPayload struct {
	ClaimNumber  string  `json:"claimNumber"`
	PolicyID     int64   `json:"policyId"`
	DamageAmount float64 `json:"damageAmount"`
}

// ClaimStatusChangedPayload payload.
type ClaimStatusChangedPayload struct {
	ClaimNumber string             `json:"claimNumber"`
	OldStatus   domain.ClaimStatus `json:"oldStatus"`
	NewStatus   domain.ClaimStatus `json:"newStatus"`
}

// CommissionStatusChangedPayload payload.
type CommissionStatusChangedPayload struct {
	PolicyID  int64                   `json:"policyId"`
	OldStatus domain.CommissionStatus `json:"oldStatus"`
	NewStatus domain.CommissionStatus `json:"newStatus"`
	Amount    float64                 `json:"amount"`
}

// PolicyExpiringPayload payload.
type PolicyExpiringPayload struct {
	PolicyNumber string    `json:"policyNumber"`
	EndDate      time.Time `json:"endDate"`
}
