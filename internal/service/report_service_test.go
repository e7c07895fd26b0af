package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/events"
	"github.com/agencydesk/backoffice/internal/repository"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

type fakeReportRepo struct {
	agentRows []repository.AgentPerformanceRow
	typeRows  []repository.InsuranceTypeRow
	statCalls int
}

func (f *fakeReportRepo) Statistics(context.Context) (*repository.Statistics, error) {
	f.statCalls++
	return &repository.Statistics{CustomerCount: 3, PolicyCount: 5}, nil
}

func (f *fakeReportRepo) Sales(context.Context, repository.ReportFilter) ([]repository.SalesRow, error) {
	return nil, nil
}

func (f *fakeReportRepo) Claims(context.Context, repository.ReportFilter, *domain.ClaimStatus) ([]repository.ClaimsRow, error) {
	return nil, nil
}

func (f *fakeReportRepo) Commissions(context.Context, repository.ReportFilter) ([]repository.CommissionsRow, error) {
	return nil, nil
}

func (f *fakeReportRepo) AgentPerformance(context.Context, repository.ReportFilter) ([]repository.AgentPerformanceRow, error) {
	return f.agentRows, nil
}

func (f *fakeReportRepo) InsuranceTypes(context.Context) ([]repository.InsuranceTypeRow, error) {
	return f.typeRows, nil
}

type fakeActivityLogRepo struct {
	entries   []domain.ActivityLog
	lastLimit int
}

func (f *fakeActivityLogRepo) Create(_ context.Context, entry *domain.ActivityLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityLogRepo) ListByUser(_ context.Context, userID int64, _, _ *time.Time) ([]domain.ActivityLog, error) {
	var out []domain.ActivityLog
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeActivityLogRepo) ListRecent(_ context.Context, limit int) ([]domain.ActivityLog, error) {
	f.lastLimit = limit
	return f.entries, nil
}

// recordingDispatcher captures subscriptions without delivering anything.
type recordingDispatcher struct {
	subscribed []events.EventType
}

func (d *recordingDispatcher) Publish(context.Context, events.Event) error { return nil }

func (d *recordingDispatcher) Subscribe(eventType events.EventType, _ events.EventHandler) {
	d.subscribed = append(d.subscribed, eventType)
}

func newReportService(reports *fakeReportRepo, activity *fakeActivityLogRepo) *ReportService {
	return NewReportService(reports, newFakePolicyRepo(), activity, nil, zap.NewNop())
}

func TestReportFilterRejectsUnknownGrouping(t *testing.T) {
	svc := newReportService(&fakeReportRepo{}, &fakeActivityLogRepo{})

	_, err := svc.Sales(context.Background(), repository.ReportFilter{GroupBy: "week"})
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}

	_, err = svc.AgentPerformance(context.Background(), repository.ReportFilter{GroupBy: "week"})
	domainErr = apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestAgentPerformanceReturnsRows(t *testing.T) {
	repo := &fakeReportRepo{agentRows: []repository.AgentPerformanceRow{
		{UserID: 7, Username: "jdoe", PolicyCount: 4, TotalPremium: 4800},
	}}
	svc := newReportService(repo, &fakeActivityLogRepo{})

	rows, err := svc.AgentPerformance(context.Background(), repository.ReportFilter{})
	if err != nil {
		t.Fatalf("agent performance: %v", err)
	}
	if len(rows) != 1 || rows[0].Username != "jdoe" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestInsuranceTypesReturnsRows(t *testing.T) {
	kasko := "kasko"
	repo := &fakeReportRepo{typeRows: []repository.InsuranceTypeRow{
		{InsuranceType: &kasko, PolicyCount: 9, TotalPremium: 12000, ActivePolicies: 6},
	}}
	svc := newReportService(repo, &fakeActivityLogRepo{})

	rows, err := svc.InsuranceTypes(context.Background())
	if err != nil {
		t.Fatalf("insurance types: %v", err)
	}
	if len(rows) != 1 || rows[0].PolicyCount != 9 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestRecentActivities(t *testing.T) {
	activity := &fakeActivityLogRepo{entries: []domain.ActivityLog{
		{UserID: 1, Action: domain.ActivityActionCreate, TargetType: "policy", TargetID: 3},
	}}
	svc := newReportService(&fakeReportRepo{}, activity)

	entries, err := svc.RecentActivities(context.Background(), 25)
	if err != nil {
		t.Fatalf("recent activities: %v", err)
	}
	if len(entries) != 1 || entries[0].TargetType != "policy" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if activity.lastLimit != 25 {
		t.Fatalf("expected limit 25 passed through, got %d", activity.lastLimit)
	}
}

func TestStatisticsWithoutCacheHitsRepository(t *testing.T) {
	repo := &fakeReportRepo{}
	svc := newReportService(repo, &fakeActivityLogRepo{})

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.PolicyCount != 5 || repo.statCalls != 1 {
		t.Fatalf("unexpected stats %+v (calls %d)", stats, repo.statCalls)
	}
}

// Every event that changes a statistics count must drop the cached aggregate.
func TestBindInvalidationSubscribesToMutationEvents(t *testing.T) {
	svc := newReportService(&fakeReportRepo{}, &fakeActivityLogRepo{})
	dispatcher := &recordingDispatcher{}

	svc.BindInvalidation(dispatcher)

	want := map[events.EventType]bool{
		events.EventPolicyCreated:           false,
		events.EventClaimCreated:            false,
		events.EventClaimStatusChanged:      false,
		events.EventCommissionStatusChanged: false,
	}
	for _, eventType := range dispatcher.subscribed {
		if _, ok := want[eventType]; ok {
			want[eventType] = true
		}
	}
	for eventType, seen := range want {
		if !seen {
			t.Fatalf("no invalidation subscription for %s", eventType)
		}
	}
}
