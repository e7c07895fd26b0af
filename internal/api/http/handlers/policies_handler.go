package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agencydesk/backoffice/internal/api/dto"
	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/service"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// PoliciesHandler exposes policy CRUD.
type PoliciesHandler struct {
	policies *service.PolicyService
	claims   *service.ClaimService
	activity *service.ActivityRecorder
}

// NewPoliciesHandler constructs handler.
func NewPoliciesHandler(policies *service.PolicyService, claims *service.ClaimService, activity *service.ActivityRecorder) *PoliciesHandler {
	return &PoliciesHandler{policies: policies, claims: claims, activity: activity}
}

// List handles GET /policies.
func (h *PoliciesHandler) List(c *fiber.Ctx) error {
	policies, err := h.policies.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(policies)
}

// Get handles GET /policies/:id.
func (h *PoliciesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	policy, err := h.policies.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(policy)
}

// ListClaims handles GET /policies/:id/claims.
func (h *PoliciesHandler) ListClaims(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	claims, err := h.claims.ListByPolicy(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(claims)
}

// Create handles POST /policies.
func (h *PoliciesHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	var policy domain.Policy
	if err := c.BodyParser(&policy); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.policies.Create(c.UserContext(), identity, &policy); err != nil {
		return err
	}
	h.activity.Record(identity, domain.ActivityActionCreate, "policy", policy.ID, policy.PolicyNumber, c.IP())
	return c.Status(http.StatusCreated).JSON(policy)
}

// Update handles PUT /policies/:id.
func (h *PoliciesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var policy domain.Policy
	if err := c.BodyParser(&policy); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	policy.ID = id
	if err := h.policies.Update(c.UserContext(), &policy); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionUpdate, "policy", id, policy.PolicyNumber, c.IP())
	}
	return c.JSON(policy)
}

// Delete handles DELETE /policies/:id.
func (h *PoliciesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.policies.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "policy", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "policy deleted"})
}

// Renewals handles GET /policies/renewals. The window defaults to 30 days.
func (h *PoliciesHandler) Renewals(c *fiber.Ctx) error {
	window := time.Duration(c.QueryInt("days", 30)) * 24 * time.Hour
	policies, err := h.policies.ListRenewals(c.UserContext(), window)
	if err != nil {
		return err
	}
	return c.JSON(policies)
}
