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

// AgenciesHandler exposes partner agency CRUD.
type AgenciesHandler struct {
	agencies *service.AgencyService
	activity *service.ActivityRecorder
}

// NewAgenciesHandler constructs handler.
func NewAgenciesHandler(agencies *service.AgencyService, activity *service.ActivityRecorder) *AgenciesHandler {
	return &AgenciesHandler{agencies: agencies, activity: activity}
}

// List handles GET /agencies.
func (h *AgenciesHandler) List(c *fiber.Ctx) error {
	agencies, err := h.agencies.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(agencies)
}

// Get handles GET /agencies/:id.
func (h *AgenciesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	agency, err := h.agencies.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(agency)
}

// Create handles POST /agencies.
func (h *AgenciesHandler) Create(c *fiber.Ctx) error {
	var agency domain.Agency
	if err := c.BodyParser(&agency); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.agencies.Create(c.UserContext(), &agency); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionCreate, "agency", agency.ID, agency.Code, c.IP())
	}
	return c.Status(http.StatusCreated).JSON(agency)
}

// Update handles PUT /agencies/:id.
func (h *AgenciesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var agency domain.Agency
	if err := c.BodyParser(&agency); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	agency.ID = id
	if err := h.agencies.Update(c.UserContext(), &agency); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionUpdate, "agency", id, agency.Code, c.IP())
	}
	return c.JSON(agency)
}

// Delete handles DELETE /agencies/:id.
func (h *AgenciesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.agencies.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "agency", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "agency deleted"})
}
