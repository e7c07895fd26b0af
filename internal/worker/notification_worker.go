package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	"github.com/agencydesk/backoffice/internal/repository"
	"github.com/agencydesk/backoffice/internal/service"
)

// NotificationWorker turns domain events into user notifications and scans
// for policies nearing expiry.
type NotificationWorker struct {
	dispatcher    events.Dispatcher
	notifications *service.NotificationService
	policies      repository.PolicyRepository
	logger        *zap.Logger

	renewalWindow time.Duration
	scanInterval  time.Duration
}

// NewNotificationWorker builds the worker.
func NewNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, policies repository.PolicyRepository, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{
		dispatcher:    dispatcher,
		notifications: notifications,
		policies:      policies,
		logger:        logger,
		renewalWindow: 30 * 24 * time.Hour,
		scanInterval:  12 * time.Hour,
	}
}

// Start registers the event subscriptions and launches the renewal scanner.
// The scanner stops when ctx is canceled.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.dispatcher.Subscribe(events.EventPolicyCreated, w.onPolicyCreated)
	w.dispatcher.Subscribe(events.EventClaimCreated, w.onClaimCreated)
	w.dispatcher.Subscribe(events.EventClaimStatusChanged, w.onClaimStatusChanged)
	w.dispatcher.Subscribe(events.EventCommissionStatusChanged, w.onCommissionStatusChanged)

	go w.scanRenewals(ctx)
}

func (w *NotificationWorker) onPolicyCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PolicyCreatedPayload)
	if !ok {
		return nil
	}
	return w.notifyManagers(ctx,
		"New policy issued",
		fmt.Sprintf("Policy %s was issued by %s", payload.PolicyNumber, event.Actor.Username))
}

func (w *NotificationWorker) onClaimCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ClaimCreatedPayload)
	if !ok {
		return nil
	}
	return w.notifyManagers(ctx,
		"New claim filed",
		fmt.Sprintf("Claim %s filed for %.2f against policy %d", payload.ClaimNumber, payload.DamageAmount, payload.PolicyID))
}

func (w *NotificationWorker) onClaimStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ClaimStatusChangedPayload)
	if !ok {
		return nil
	}
	return w.notifyManagers(ctx,
		"Claim status changed",
		fmt.Sprintf("Claim %s moved from %s to %s", payload.ClaimNumber, payload.OldStatus, payload.NewStatus))
}

func (w *NotificationWorker) onCommissionStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CommissionStatusChangedPayload)
	if !ok {
		return nil
	}
	return w.notifyManagers(ctx,
		"Commission status changed",
		fmt.Sprintf("Commission on policy %d is now %s (%.2f)", payload.PolicyID, payload.NewStatus, payload.Amount))
}

func (w *NotificationWorker) notifyManagers(ctx context.Context, title, message string) error {
	if _, err := w.notifications.NotifyRole(ctx, domain.RoleManager, title, message, domain.NotificationChannelApp); err != nil {
		w.logger.Warn("manager notification failed", zap.String("title", title), zap.Error(err))
		return err
	}
	return nil
}

// scanRenewals periodically notifies managers about policies expiring within
// the renewal window. One scan runs immediately on startup.
func (w *NotificationWorker) scanRenewals(ctx context.Context) {
	ticker := time.NewTicker(w.scanInterval)
	defer ticker.Stop()

	w.runRenewalScan(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runRenewalScan(ctx)
		}
	}
}

func (w *NotificationWorker) runRenewalScan(ctx context.Context) {
	expiring, err := w.policies.ListExpiringBefore(ctx, time.Now().Add(w.renewalWindow))
	if err != nil {
		w.logger.Warn("renewal scan failed", zap.Error(err))
		return
	}
	for _, policy := range expiring {
		_ = w.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventPolicyExpiring,
			TargetID:  policy.ID,
			Timestamp: time.Now(),
			Payload: events.PolicyExpiringPayload{
				PolicyNumber: policy.PolicyNumber,
				EndDate:      policy.EndDate,
			},
		})
		if err := w.notifyManagers(ctx,
			"Policy expiring soon",
			fmt.Sprintf("Policy %s expires on %s", policy.PolicyNumber, policy.EndDate.Format("2006-01-02"))); err != nil {
			return
		}
	}
}
