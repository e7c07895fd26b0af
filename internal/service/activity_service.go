package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
)

// ActivityRecorder appends audit records attributed to the request identity.
// Writes are best-effort and asynchronous: a failed or slow audit insert must
// never fail or delay the primary request. Handlers call Record only after
// the primary mutation succeeded, so an aborted request leaves no entry.
type ActivityRecorder struct {
	repo    repository.ActivityLogRepository
	logger  *zap.Logger
	timeout time.Duration
}

// NewActivityRecorder builds the recorder.
func NewActivityRecorder(repo repository.ActivityLogRepository, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger, timeout: 5 * time.Second}
}

// Record writes the audit entry in the background.
func (r *ActivityRecorder) Record(identity auth.Identity, action domain.ActivityAction, targetType string, targetID int64, details, ip string) {
	if r == nil || r.repo == nil {
		return
	}
	entry := &domain.ActivityLog{
		UserID:     identity.UserID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		IPAddress:  ip,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.repo.Create(ctx, entry); err != nil && r.logger != nil {
			r.logger.Warn("activity log write failed",
				zap.Int64("user_id", entry.UserID),
				zap.String("action", string(entry.Action)),
				zap.String("target_type", entry.TargetType),
				zap.Error(err))
		}
	}()
}
