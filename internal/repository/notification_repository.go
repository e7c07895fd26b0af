package repository

import (
	"context"

	"github.com/agencydesk/backoffice/internal/domain"
)

// NotificationRepository defines persistence access for notifications.
type NotificationRepository interface {
	ListAll(ctx context.Context) ([]domain.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	ListUnreadByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	Create(ctx context.Context, n *domain.Notification) error
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

type notificationRepository struct {
	db DB
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `
        id, user_id, title, message, channel, status, created_at, sent_at, read_at`

func (r *notificationRepository) ListAll(ctx context.Context) ([]domain.Notification, error) {
	return collectList[domain.Notification](ctx, r.db,
		`SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC`)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return collectList[domain.Notification](ctx, r.db,
		`SELECT `+notificationColumns+` FROM notifications
         WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *notificationRepository) ListUnreadByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return collectList[domain.Notification](ctx, r.db,
		`SELECT `+notificationColumns+` FROM notifications
         WHERE user_id = $1 AND status = 'unread'
         ORDER BY created_at DESC`, userID)
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	return collectOne[domain.Notification](ctx, r.db,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (user_id, title, message, channel, status, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		n.UserID,
		n.Title,
		n.Message,
		n.Channel,
		n.Status,
		n.SentAt,
	).Scan(&n.ID, &n.CreatedAt)
}

// MarkRead is scoped to the owning user so one user cannot mark another's
// notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	return execAffecting(ctx, r.db,
		`UPDATE notifications SET status='read', read_at=NOW()
         WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET status='read', read_at=NOW()
         WHERE user_id = $1 AND status = 'unread'`, userID)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID int64) error {
	return execAffecting(ctx, r.db,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
}
