package repository

import (
	"context"
	"time"

	"github.com/agencydesk/backoffice/internal/domain"
)

// ActivityLogRepository is the append-only audit store.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]domain.ActivityLog, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ActivityLog, error)
}

type activityLogRepository struct {
	db DB
}

// NewActivityLogRepository returns a Postgres-backed implementation.
func NewActivityLogRepository(db DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

const activityColumns = `
        id, user_id, action, target_type, target_id, details, ip_address, created_at`

func (r *activityLogRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	const query = `
        INSERT INTO activity_logs (user_id, action, target_type, target_id, details, ip_address)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.Details,
		entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *activityLogRepository) ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]domain.ActivityLog, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE user_id = $1`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		query += ` AND created_at >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND created_at <= $3`
		} else {
			query += ` AND created_at <= $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	return collectList[domain.ActivityLog](ctx, r.db, query, args...)
}

func (r *activityLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return collectList[domain.ActivityLog](ctx, r.db,
		`SELECT `+activityColumns+` FROM activity_logs
         ORDER BY created_at DESC LIMIT $1`, limit)
}
