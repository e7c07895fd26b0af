package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agencydesk/backoffice/internal/api/http/handlers"
	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health             *handlers.HealthHandler
	Users              *handlers.UsersHandler
	Customers          *handlers.CustomersHandler
	Policies           *handlers.PoliciesHandler
	Claims             *handlers.ClaimsHandler
	Commissions        *handlers.CommissionsHandler
	Transactions       *handlers.TransactionsHandler
	Documents          *handlers.DocumentsHandler
	Notifications      *handlers.NotificationsHandler
	Agencies           *handlers.AgenciesHandler
	InsuranceCompanies *handlers.InsuranceCompaniesHandler
	Reports            *handlers.ReportsHandler
	AuthMiddleware     *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Role lists per route are the API
// contract: admin gets no implicit access to a route it is not listed on.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	admin := auth.RequireRoles(domain.RoleAdmin)
	managers := auth.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	allStaff := auth.RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleAgent)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	api.Post("/users/register", cfg.Users.Register)
	api.Post("/users/login", cfg.Users.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	customers := protected.Group("/customers")
	customers.Get("/", allStaff, cfg.Customers.List)
	customers.Get("/:id", allStaff, cfg.Customers.Get)
	customers.Post("/", managers, cfg.Customers.Create)
	customers.Put("/:id", managers, cfg.Customers.Update)
	customers.Delete("/:id", managers, cfg.Customers.Delete)

	policies := protected.Group("/policies")
	policies.Get("/", allStaff, cfg.Policies.List)
	policies.Get("/renewals", allStaff, cfg.Policies.Renewals)
	policies.Get("/:id", allStaff, cfg.Policies.Get)
	policies.Get("/:id/claims", allStaff, cfg.Policies.ListClaims)
	policies.Post("/", allStaff, cfg.Policies.Create)
	policies.Put("/:id", managers, cfg.Policies.Update)
	policies.Delete("/:id", managers, cfg.Policies.Delete)

	claims := protected.Group("/claims")
	claims.Get("/", allStaff, cfg.Claims.List)
	claims.Get("/:id", allStaff, cfg.Claims.Get)
	claims.Post("/", allStaff, cfg.Claims.Create)
	claims.Put("/:id", managers, cfg.Claims.Update)
	claims.Patch("/:id/status", managers, cfg.Claims.UpdateStatus)
	claims.Delete("/:id", admin, cfg.Claims.Delete)

	commissions := protected.Group("/commissions")
	commissions.Get("/", managers, cfg.Commissions.List)
	commissions.Get("/financial/transactions", managers, cfg.Commissions.ListFinancial)
	commissions.Post("/financial/transactions", managers, cfg.Commissions.CreateFinancial)
	commissions.Get("/policy/:policyId", allStaff, cfg.Commissions.ListByPolicy)
	commissions.Get("/:id", allStaff, cfg.Commissions.Get)
	commissions.Post("/", managers, cfg.Commissions.Create)
	commissions.Put("/:id", managers, cfg.Commissions.Update)
	commissions.Patch("/:id/status", managers, cfg.Commissions.UpdateStatus)
	commissions.Delete("/:id", admin, cfg.Commissions.Delete)

	transactions := protected.Group("/transactions", managers)
	transactions.Get("/", cfg.Transactions.List)
	transactions.Get("/:id", cfg.Transactions.Get)
	transactions.Post("/", cfg.Transactions.Create)
	transactions.Put("/:id", cfg.Transactions.Update)
	transactions.Delete("/:id", cfg.Transactions.Delete)

	documents := protected.Group("/documents")
	documents.Get("/", allStaff, cfg.Documents.List)
	documents.Get("/:id", allStaff, cfg.Documents.Get)
	documents.Get("/:id/download", allStaff, cfg.Documents.Download)
	documents.Post("/", allStaff, cfg.Documents.Upload)
	documents.Delete("/:id", managers, cfg.Documents.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/all", admin, cfg.Notifications.ListAll)
	notifications.Post("/bulk", admin, cfg.Notifications.Broadcast)
	notifications.Post("/", managers, cfg.Notifications.Create)
	notifications.Get("/", auth.RequireAuthenticated(), cfg.Notifications.ListOwn)
	notifications.Patch("/read-all", auth.RequireAuthenticated(), cfg.Notifications.MarkAllRead)
	notifications.Patch("/:id/read", auth.RequireAuthenticated(), cfg.Notifications.MarkRead)
	notifications.Delete("/:id", auth.RequireAuthenticated(), cfg.Notifications.Delete)

	agencies := protected.Group("/agencies")
	agencies.Get("/", allStaff, cfg.Agencies.List)
	agencies.Get("/:id", allStaff, cfg.Agencies.Get)
	agencies.Post("/", managers, cfg.Agencies.Create)
	agencies.Put("/:id", managers, cfg.Agencies.Update)
	agencies.Delete("/:id", managers, cfg.Agencies.Delete)

	companies := protected.Group("/insurance-companies")
	companies.Get("/", allStaff, cfg.InsuranceCompanies.List)
	companies.Get("/:id", allStaff, cfg.InsuranceCompanies.Get)
	companies.Post("/", managers, cfg.InsuranceCompanies.Create)
	companies.Put("/:id", managers, cfg.InsuranceCompanies.Update)
	companies.Delete("/:id", managers, cfg.InsuranceCompanies.Delete)

	reports := protected.Group("/reports")
	reports.Get("/statistics", managers, cfg.Reports.Statistics)
	reports.Get("/sales", managers, cfg.Reports.Sales)
	reports.Get("/claims", managers, cfg.Reports.Claims)
	reports.Get("/commissions", managers, cfg.Reports.Commissions)
	reports.Get("/agent-performance", managers, cfg.Reports.AgentPerformance)
	reports.Get("/insurance-types", managers, cfg.Reports.InsuranceTypes)
	reports.Get("/renewals", allStaff, cfg.Reports.Renewals)
	reports.Get("/activities", admin, cfg.Reports.RecentActivities)
	reports.Get("/user-activities/:userId", admin, cfg.Reports.UserActivities)
}
