package domain

import "time"

// NotificationChannel is the delivery channel for a notification.
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
	NotificationChannelApp   NotificationChannel = "app"
)

// NotificationStatus tracks whether the recipient has seen the notification.
type NotificationStatus string

const (
	NotificationStatusRead   NotificationStatus = "read"
	NotificationStatusUnread NotificationStatus = "unread"
)

// Notification is an in-app, email or SMS message addressed to a user.
type Notification struct {
	ID        int64               `db:"id" json:"id"`
	UserID    int64               `db:"user_id" json:"userId"`
	Title     string              `db:"title" json:"title"`
	Message   string              `db:"message" json:"message"`
	Channel   NotificationChannel `db:"channel" json:"channel"`
	Status    NotificationStatus  `db:"status" json:"status"`
	CreatedAt time.Time           `db:"created_at" json:"createdAt"`
	SentAt    *time.Time          `db:"sent_at" json:"sentAt,omitempty"`
	ReadAt    *time.Time          `db:"read_at" json:"readAt,omitempty"`
}
