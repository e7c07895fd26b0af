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

// ClaimsHandler exposes claim endpoints.
type ClaimsHandler struct {
	claims   *service.ClaimService
	activity *service.ActivityRecorder
}

// NewClaimsHandler constructs handler.
func NewClaimsHandler(claims *service.ClaimService, activity *service.ActivityRecorder) *ClaimsHandler {
	return &ClaimsHandler{claims: claims, activity: activity}
}

// List handles GET /claims.
func (h *ClaimsHandler) List(c *fiber.Ctx) error {
	claims, err := h.claims.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(claims)
}

// Get handles GET /claims/:id.
func (h *ClaimsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	claim, err := h.claims.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(claim)
}

// Create handles POST /claims.
func (h *ClaimsHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	var claim domain.Claim
	if err := c.BodyParser(&claim); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.claims.Create(c.UserContext(), identity, &claim); err != nil {
		return err
	}
	h.activity.Record(identity, domain.ActivityActionCreate, "claim", claim.ID, claim.ClaimNumber, c.IP())
	return c.Status(http.StatusCreated).JSON(claim)
}

// Update handles PUT /claims/:id.
func (h *ClaimsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var claim domain.Claim
	if err := c.BodyParser(&claim); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	claim.ID = id
	if err := h.claims.Update(c.UserContext(), &claim); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionUpdate, "claim", id, claim.ClaimNumber, c.IP())
	}
	return c.JSON(claim)
}

// UpdateStatus handles PATCH /claims/:id/status.
func (h *ClaimsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ClaimStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	identity, _ := auth.IdentityFromContext(c)
	claim, err := h.claims.UpdateStatus(c.UserContext(), identity, id, req.Status)
	if err != nil {
		return err
	}
	h.activity.Record(identity, domain.ActivityActionUpdate, "claim", id, "status:"+string(req.Status), c.IP())
	return c.JSON(claim)
}

// Delete handles DELETE /claims/:id.
func (h *ClaimsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.claims.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "claim", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "claim deleted"})
}
