package dto

import "github.com/agencydesk/backoffice/internal/domain"

// Resource payloads bind straight onto the domain structs; their json tags
// are the wire contract. The types here cover the payloads that do not map
// onto a stored record one-to-one.

// ClaimStatusRequest updates a claim's lifecycle state.
type ClaimStatusRequest struct {
	Status domain.ClaimStatus `json:"status"`
}

// CommissionStatusRequest updates a commission's payout state.
type CommissionStatusRequest struct {
	Status domain.CommissionStatus `json:"status"`
}

// NotificationRequest addresses a notification to one user.
type NotificationRequest struct {
	UserID  int64                      `json:"userId"`
	Title   string                     `json:"title"`
	Message string                     `json:"message"`
	Channel domain.NotificationChannel `json:"channel"`
}

// BroadcastRequest sends the same notification to every account, or to every
// account holding Role when it is set.
type BroadcastRequest struct {
	Title   string                     `json:"title"`
	Message string                     `json:"message"`
	Channel domain.NotificationChannel `json:"channel"`
	Role    domain.Role                `json:"role"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
