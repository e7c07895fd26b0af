package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agencydesk/backoffice/internal/api/dto"
	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/service"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// InsuranceCompaniesHandler exposes carrier CRUD.
type InsuranceCompaniesHandler struct {
	companies *service.InsuranceCompanyService
	activity  *service.ActivityRecorder
}

// NewInsuranceCompaniesHandler constructs handler.
func NewInsuranceCompaniesHandler(companies *service.InsuranceCompanyService, activity *service.ActivityRecorder) *InsuranceCompaniesHandler {
	return &InsuranceCompaniesHandler{companies: companies, activity: activity}
}

// List handles GET /insurance-companies.
func (h *InsuranceCompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

// Get handles GET /insurance-companies/:id.
func (h *InsuranceCompaniesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	company, err := h.companies.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(company)
}

// Create handles POST /insurance-companies.
func (h *InsuranceCompaniesHandler) Create(c *fiber.Ctx) error {
	var company domain.InsuranceCompany
	if err := c.BodyParser(&company); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.companies.Create(c.UserContext(), &company); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionCreate, "insurance_company", company.ID, company.Code, c.IP())
	}
	return c.Status(http.StatusCreated).JSON(company)
}

// Update handles PUT /insurance-companies/:id.
func (h *InsuranceCompaniesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var company domain.InsuranceCompany
	if err := c.BodyParser(&company); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	company.ID = id
	if err := h.companies.Update(c.UserContext(), &company); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionUpdate, "insurance_company", id, company.Code, c.IP())
	}
	return c.JSON(company)
}

// Delete handles DELETE /insurance-companies/:id.
func (h *InsuranceCompaniesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.companies.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "insurance_company", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "insurance company deleted"})
}
