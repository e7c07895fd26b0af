package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/agencydesk/backoffice/internal/domain"
)

// Statistics is the dashboard aggregate.
type Statistics struct {
	CustomerCount    int64   `json:"customerCount"`
	PolicyCount      int64   `json:"policyCount"`
	ActivePolicies   int64   `json:"activePolicies"`
	ClaimCount       int64   `json:"claimCount"`
	TotalDamage      float64 `json:"totalDamage"`
	TotalCommissions float64 `json:"totalCommissions"`
}

// SalesRow is one period bucket of the sales report.
type SalesRow struct {
	Period       *string `db:"period" json:"period,omitempty"`
	PolicyCount  int64   `db:"policy_count" json:"policyCount"`
	TotalPremium float64 `db:"total_premium" json:"totalPremium"`
}

// ClaimsRow is one bucket of the claims report.
type ClaimsRow struct {
	Period      *string            `db:"period" json:"period,omitempty"`
	Status      domain.ClaimStatus `db:"status" json:"status"`
	ClaimCount  int64              `db:"claim_count" json:"claimCount"`
	TotalDamage float64            `db:"total_damage" json:"totalDamage"`
}

// CommissionsRow is one bucket of the commissions report.
type CommissionsRow struct {
	Period          *string `db:"period" json:"period,omitempty"`
	CommissionCount int64   `db:"commission_count" json:"commissionCount"`
	TotalAmount     float64 `db:"total_amount" json:"totalAmount"`
	PaidAmount      float64 `db:"paid_amount" json:"paidAmount"`
	PendingAmount   float64 `db:"pending_amount" json:"pendingAmount"`
}

// AgentPerformanceRow aggregates one agent's production. Policies are
// attributed to the agent through the audit trail's create entries.
type AgentPerformanceRow struct {
	UserID           int64   `db:"user_id" json:"userId"`
	Username         string  `db:"username" json:"username"`
	PolicyCount      int64   `db:"policy_count" json:"policyCount"`
	TotalPremium     float64 `db:"total_premium" json:"totalPremium"`
	TotalCommission  float64 `db:"total_commission" json:"totalCommission"`
	ClaimCount       int64   `db:"claim_count" json:"claimCount"`
	TotalClaimAmount float64 `db:"total_claim_amount" json:"totalClaimAmount"`
}

// InsuranceTypeRow buckets the policy book by product type.
type InsuranceTypeRow struct {
	InsuranceType  *string `db:"insurance_type" json:"insuranceType"`
	PolicyCount    int64   `db:"policy_count" json:"policyCount"`
	TotalPremium   float64 `db:"total_premium" json:"totalPremium"`
	ActivePolicies int64   `db:"active_policies" json:"activePolicies"`
}

// ReportFilter bounds a report query; zero values mean unbounded.
type ReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	GroupBy   string // "", "day", "month" or "year"
}

// ReportRepository runs the read-only aggregation queries.
type ReportRepository interface {
	Statistics(ctx context.Context) (*Statistics, error)
	Sales(ctx context.Context, filter ReportFilter) ([]SalesRow, error)
	Claims(ctx context.Context, filter ReportFilter, status *domain.ClaimStatus) ([]ClaimsRow, error)
	Commissions(ctx context.Context, filter ReportFilter) ([]CommissionsRow, error)
	AgentPerformance(ctx context.Context, filter ReportFilter) ([]AgentPerformanceRow, error)
	InsuranceTypes(ctx context.Context) ([]InsuranceTypeRow, error)
}

type reportRepository struct {
	db DB
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(db DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Statistics(ctx context.Context) (*Statistics, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM customers) AS customer_count,
            (SELECT COUNT(*) FROM policies) AS policy_count,
            (SELECT COUNT(*) FROM policies WHERE status = 'active') AS active_policies,
            (SELECT COUNT(*) FROM claims) AS claim_count,
            (SELECT COALESCE(SUM(damage_amount), 0) FROM claims) AS total_damage,
            (SELECT COALESCE(SUM(amount), 0) FROM commissions) AS total_commissions`

	var stats Statistics
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.CustomerCount,
		&stats.PolicyCount,
		&stats.ActivePolicies,
		&stats.ClaimCount,
		&stats.TotalDamage,
		&stats.TotalCommissions,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// periodExpr returns the SQL bucket expression for a grouping, or "" when the
// grouping is not one of the supported values.
func periodExpr(groupBy, dateColumn string) string {
	switch groupBy {
	case "day":
		return `TO_CHAR(` + dateColumn + `, 'YYYY-MM-DD')`
	case "month":
		return `TO_CHAR(` + dateColumn + `, 'YYYY-MM')`
	case "year":
		return `TO_CHAR(` + dateColumn + `, 'YYYY')`
	}
	return ""
}

func (r *reportRepository) Sales(ctx context.Context, filter ReportFilter) ([]SalesRow, error) {
	period := periodExpr(filter.GroupBy, "start_date")

	query := `SELECT COUNT(*) AS policy_count, COALESCE(SUM(premium), 0) AS total_premium`
	if period != "" {
		query += `, ` + period + ` AS period`
	} else {
		query += `, NULL::text AS period`
	}
	query += ` FROM policies WHERE 1=1`

	var args []any
	query, args = appendDateBounds(query, args, "start_date", filter)

	if period != "" {
		query += ` GROUP BY period ORDER BY period`
	}

	return collectList[SalesRow](ctx, r.db, query, args...)
}

func (r *reportRepository) Claims(ctx context.Context, filter ReportFilter, status *domain.ClaimStatus) ([]ClaimsRow, error) {
	period := periodExpr(filter.GroupBy, "claim_date")

	query := `SELECT COUNT(*) AS claim_count, COALESCE(SUM(damage_amount), 0) AS total_damage, status`
	if period != "" {
		query += `, ` + period + ` AS period`
	} else {
		query += `, NULL::text AS period`
	}
	query += ` FROM claims WHERE 1=1`

	var args []any
	query, args = appendDateBounds(query, args, "claim_date", filter)
	if status != nil {
		args = append(args, *status)
		query += ` AND status = $` + itoa(len(args))
	}

	if period != "" {
		query += ` GROUP BY period, status ORDER BY period, status`
	} else {
		query += ` GROUP BY status ORDER BY status`
	}

	return collectList[ClaimsRow](ctx, r.db, query, args...)
}

func (r *reportRepository) Commissions(ctx context.Context, filter ReportFilter) ([]CommissionsRow, error) {
	period := periodExpr(filter.GroupBy, "payment_date")

	query := `
        SELECT COUNT(*) AS commission_count,
               COALESCE(SUM(amount), 0) AS total_amount,
               COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid_amount,
               COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending_amount`
	if period != "" {
		query += `, ` + period + ` AS period`
	} else {
		query += `, NULL::text AS period`
	}
	query += ` FROM commissions WHERE 1=1`

	var args []any
	query, args = appendDateBounds(query, args, "payment_date", filter)

	if period != "" {
		query += ` GROUP BY period ORDER BY period`
	}

	return collectList[CommissionsRow](ctx, r.db, query, args...)
}

func (r *reportRepository) AgentPerformance(ctx context.Context, filter ReportFilter) ([]AgentPerformanceRow, error) {
	query := `
        SELECT u.id AS user_id,
               u.username,
               COUNT(DISTINCT p.id) AS policy_count,
               COALESCE(SUM(p.premium), 0) AS total_premium,
               COALESCE(SUM(c.amount), 0) AS total_commission,
               COUNT(DISTINCT cl.id) AS claim_count,
               COALESCE(SUM(cl.damage_amount), 0) AS total_claim_amount
        FROM users u
        LEFT JOIN activity_logs a
               ON a.user_id = u.id AND a.target_type = 'policy' AND a.action = 'create'
        LEFT JOIN policies p ON p.id = a.target_id
        LEFT JOIN commissions c ON c.policy_id = p.id
        LEFT JOIN claims cl ON cl.policy_id = p.id
        WHERE u.role = 'agent'`

	var args []any
	query, args = appendDateBounds(query, args, "p.start_date", filter)
	query += ` GROUP BY u.id, u.username ORDER BY total_premium DESC`

	return collectList[AgentPerformanceRow](ctx, r.db, query, args...)
}

func (r *reportRepository) InsuranceTypes(ctx context.Context) ([]InsuranceTypeRow, error) {
	const query = `
        SELECT insurance_type,
               COUNT(*) AS policy_count,
               COALESCE(SUM(premium), 0) AS total_premium,
               COUNT(*) FILTER (WHERE status = 'active') AS active_policies
        FROM policies
        GROUP BY insurance_type
        ORDER BY policy_count DESC`

	return collectList[InsuranceTypeRow](ctx, r.db, query)
}

func appendDateBounds(query string, args []any, column string, filter ReportFilter) (string, []any) {
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND ` + column + ` >= $` + itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND ` + column + ` <= $` + itoa(len(args))
	}
	return query, args
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
