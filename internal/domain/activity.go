package domain

import "time"

// ActivityAction enumerates audited operations.
type ActivityAction string

const (
	ActivityActionCreate   ActivityAction = "create"
	ActivityActionUpdate   ActivityAction = "update"
	ActivityActionDelete   ActivityAction = "delete"
	ActivityActionView     ActivityAction = "view"
	ActivityActionDownload ActivityAction = "download"
)

// ActivityLog is an append-only audit record attributed to a user.
type ActivityLog struct {
	ID         int64          `db:"id" json:"id"`
	UserID     int64          `db:"user_id" json:"userId"`
	Action     ActivityAction `db:"action" json:"action"`
	TargetType string         `db:"target_type" json:"targetType"`
	TargetID   int64          `db:"target_id" json:"targetId"`
	Details    string         `db:"details" json:"details,omitempty"`
	IPAddress  string         `db:"ip_address" json:"ipAddress,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
}
