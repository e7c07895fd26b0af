package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/repository"
	"github.com/agencydesk/backoffice/internal/service"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// ReportsHandler exposes the read-only reporting endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// Statistics handles GET /reports/statistics.
func (h *ReportsHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.reports.Statistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Sales handles GET /reports/sales.
func (h *ReportsHandler) Sales(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}
	rows, err := h.reports.Sales(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// Claims handles GET /reports/claims.
func (h *ReportsHandler) Claims(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}
	var status *domain.ClaimStatus
	if s := c.Query("status"); s != "" {
		claimStatus := domain.ClaimStatus(s)
		status = &claimStatus
	}
	rows, err := h.reports.Claims(c.UserContext(), filter, status)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// Commissions handles GET /reports/commissions.
func (h *ReportsHandler) Commissions(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}
	rows, err := h.reports.Commissions(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// AgentPerformance handles GET /reports/agent-performance.
func (h *ReportsHandler) AgentPerformance(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}
	rows, err := h.reports.AgentPerformance(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// InsuranceTypes handles GET /reports/insurance-types.
func (h *ReportsHandler) InsuranceTypes(c *fiber.Ctx) error {
	rows, err := h.reports.InsuranceTypes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// Renewals handles GET /reports/renewals.
func (h *ReportsHandler) Renewals(c *fiber.Ctx) error {
	window := time.Duration(c.QueryInt("days", 30)) * 24 * time.Hour
	policies, err := h.reports.Renewals(c.UserContext(), window)
	if err != nil {
		return err
	}
	return c.JSON(policies)
}

// RecentActivities handles GET /reports/activities.
func (h *ReportsHandler) RecentActivities(c *fiber.Ctx) error {
	entries, err := h.reports.RecentActivities(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// UserActivities handles GET /reports/user-activities/:userId.
func (h *ReportsHandler) UserActivities(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return apperrors.NewValidationError("invalid userId")
	}
	from := parseDateQuery(c, "startDate")
	to := parseDateQuery(c, "endDate")
	entries, err := h.reports.UserActivities(c.UserContext(), userID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func parseReportFilter(c *fiber.Ctx) (repository.ReportFilter, error) {
	filter := repository.ReportFilter{
		StartDate: parseDateQuery(c, "startDate"),
		EndDate:   parseDateQuery(c, "endDate"),
		GroupBy:   c.Query("groupBy"),
	}
	if s := c.Query("startDate"); s != "" && filter.StartDate == nil {
		return filter, apperrors.NewValidationError("invalid startDate")
	}
	if s := c.Query("endDate"); s != "" && filter.EndDate == nil {
		return filter, apperrors.NewValidationError("invalid endDate")
	}
	return filter, nil
}

// parseDateQuery accepts YYYY-MM-DD or RFC 3339 values.
func parseDateQuery(c *fiber.Ctx, name string) *time.Time {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t
	}
	return nil
}
