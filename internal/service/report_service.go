package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

const (
	statisticsCacheKey = "reports:statistics"
	statisticsCacheTTL = time.Minute
)

// ReportService serves the read-only reporting queries. The dashboard
// statistics aggregate is cached in Redis because it touches every table.
type ReportService struct {
	reports  repository.ReportRepository
	policies repository.PolicyRepository
	activity repository.ActivityLogRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewReportService builds the service. cache may be nil; reports then always
// hit Postgres.
func NewReportService(reports repository.ReportRepository, policies repository.PolicyRepository, activity repository.ActivityLogRepository, cache *redis.Client, logger *zap.Logger) *ReportService {
	return &ReportService{reports: reports, policies: policies, activity: activity, cache: cache, logger: logger}
}

// Statistics returns the dashboard aggregate, cached for a minute.
func (s *ReportService) Statistics(ctx context.Context) (*repository.Statistics, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, statisticsCacheKey).Bytes()
		if err == nil {
			var stats repository.Statistics
			if jsonErr := json.Unmarshal(raw, &stats); jsonErr == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("statistics cache read failed", zap.Error(err))
		}
	}

	stats, err := s.reports.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statisticsCacheKey, raw, statisticsCacheTTL).Err(); err != nil {
				s.logger.Warn("statistics cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// BindInvalidation subscribes the cache invalidation to every event that
// changes a statistics count, so the dashboard never serves a stale
// aggregate for the full cache TTL after a write.
func (s *ReportService) BindInvalidation(dispatcher events.Dispatcher) {
	invalidate := func(ctx context.Context, _ events.Event) error {
		s.InvalidateStatistics(ctx)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventPolicyCreated,
		events.EventClaimCreated,
		events.EventClaimStatusChanged,
		events.EventCommissionStatusChanged,
	} {
		dispatcher.Subscribe(eventType, invalidate)
	}
}

// InvalidateStatistics drops the cached aggregate.
func (s *ReportService) InvalidateStatistics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statisticsCacheKey).Err(); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.Error(err))
	}
}

// Sales returns policy production grouped by the requested period.
func (s *ReportService) Sales(ctx context.Context, filter repository.ReportFilter) ([]repository.SalesRow, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.reports.Sales(ctx, filter)
}

// Claims returns claim volumes grouped by status and period.
func (s *ReportService) Claims(ctx context.Context, filter repository.ReportFilter, status *domain.ClaimStatus) ([]repository.ClaimsRow, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, apperrors.NewValidationError("unknown claim status")
	}
	return s.reports.Claims(ctx, filter, status)
}

// Commissions returns commission totals split into paid and pending.
func (s *ReportService) Commissions(ctx context.Context, filter repository.ReportFilter) ([]repository.CommissionsRow, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.reports.Commissions(ctx, filter)
}

// AgentPerformance returns per-agent production totals.
func (s *ReportService) AgentPerformance(ctx context.Context, filter repository.ReportFilter) ([]repository.AgentPerformanceRow, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.reports.AgentPerformance(ctx, filter)
}

// InsuranceTypes returns the policy book broken down by product type.
func (s *ReportService) InsuranceTypes(ctx context.Context) ([]repository.InsuranceTypeRow, error) {
	return s.reports.InsuranceTypes(ctx)
}

// Renewals returns active policies expiring within the window.
func (s *ReportService) Renewals(ctx context.Context, window time.Duration) ([]domain.Policy, error) {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	return s.policies.ListExpiringBefore(ctx, time.Now().Add(window))
}

// UserActivities returns one user's audit trail bounded by optional dates.
func (s *ReportService) UserActivities(ctx context.Context, userID int64, from, to *time.Time) ([]domain.ActivityLog, error) {
	if userID == 0 {
		return nil, apperrors.NewValidationError("userId required")
	}
	return s.activity.ListByUser(ctx, userID, from, to)
}

// RecentActivities returns the newest audit entries across all users.
func (s *ReportService) RecentActivities(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	return s.activity.ListRecent(ctx, limit)
}

func validateFilter(filter repository.ReportFilter) error {
	switch filter.GroupBy {
	case "", "day", "month", "year":
	default:
		return apperrors.NewValidationError("groupBy must be day, month or year")
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return apperrors.NewValidationError("endDate before startDate")
	}
	return nil
}
