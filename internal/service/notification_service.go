package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/config"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// NotificationService delivers and tracks user notifications. Email and SMS
// delivery are logged only; the app channel is the persisted inbox.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	cfg           config.NotifyConfig
	logger        *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository, cfg config.NotifyConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, cfg: cfg, logger: logger}
}

// ListAll returns every notification in the system.
func (s *NotificationService) ListAll(ctx context.Context) ([]domain.Notification, error) {
	return s.notifications.ListAll(ctx)
}

// ListOwn returns the caller's notifications.
func (s *NotificationService) ListOwn(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// ListOwnUnread returns the caller's unread notifications.
func (s *NotificationService) ListOwnUnread(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notifications.ListUnreadByUser(ctx, userID)
}

// Notify creates one notification for one user.
func (s *NotificationService) Notify(ctx context.Context, userID int64, title, message string, channel domain.NotificationChannel) (*domain.Notification, error) {
	if userID == 0 || title == "" || message == "" {
		return nil, apperrors.NewValidationError("userId, title, message required")
	}
	if channel == "" {
		channel = domain.NotificationChannelApp
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}

	now := time.Now()
	n := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Channel: channel,
		Status:  domain.NotificationStatusUnread,
		SentAt:  &now,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	s.deliver(n)
	return n, nil
}

// Broadcast creates the same notification for every account. Used for
// system-wide announcements.
func (s *NotificationService) Broadcast(ctx context.Context, title, message string, channel domain.NotificationChannel) (int, error) {
	if title == "" || message == "" {
		return 0, apperrors.NewValidationError("title and message required")
	}
	if channel == "" {
		channel = domain.NotificationChannelApp
	}

	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, userID := range ids {
		now := time.Now()
		n := &domain.Notification{
			UserID:  userID,
			Title:   title,
			Message: message,
			Channel: channel,
			Status:  domain.NotificationStatusUnread,
			SentAt:  &now,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Warn("broadcast notification failed",
				zap.Int64("userId", userID), zap.Error(err))
			continue
		}
		s.deliver(n)
		sent++
	}
	return sent, nil
}

// NotifyRole creates a notification for every account holding a role.
func (s *NotificationService) NotifyRole(ctx context.Context, role domain.Role, title, message string, channel domain.NotificationChannel) (int, error) {
	if !role.Valid() {
		return 0, apperrors.NewValidationError("unknown role")
	}
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, user := range users {
		if _, err := s.Notify(ctx, user.ID, title, message, channel); err != nil {
			s.logger.Warn("role notification failed",
				zap.Int64("userId", user.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// MarkRead marks one of the caller's notifications read. Scoping to the
// caller means a user cannot touch another user's inbox.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if err := s.notifications.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification")
		}
		return err
	}
	return nil
}

// MarkAllRead marks the caller's whole inbox read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

// Delete removes one of the caller's notifications.
func (s *NotificationService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.notifications.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification")
		}
		return err
	}
	return nil
}

// deliver hands the notification to its out-of-app channel. Real email and
// SMS providers are not wired; delivery is recorded in the log so operators
// can see what would have gone out.
func (s *NotificationService) deliver(n *domain.Notification) {
	switch n.Channel {
	case domain.NotificationChannelEmail:
		s.logger.Info("email notification queued",
			zap.Int64("userId", n.UserID),
			zap.String("from", s.cfg.EmailFrom),
			zap.String("title", n.Title))
	case domain.NotificationChannelSMS:
		s.logger.Info("sms notification queued",
			zap.Int64("userId", n.UserID),
			zap.String("title", n.Title))
	}
}
