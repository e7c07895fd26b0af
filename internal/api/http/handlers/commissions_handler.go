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

// CommissionsHandler exposes commission endpoints and the derived financial
// ledger.
type CommissionsHandler struct {
	commissions *service.CommissionService
	activity    *service.ActivityRecorder
}

// NewCommissionsHandler constructs handler.
func NewCommissionsHandler(commissions *service.CommissionService, activity *service.ActivityRecorder) *CommissionsHandler {
	return &CommissionsHandler{commissions: commissions, activity: activity}
}

// List handles GET /commissions.
func (h *CommissionsHandler) List(c *fiber.Ctx) error {
	commissions, err := h.commissions.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(commissions)
}

// ListByPolicy handles GET /commissions/policy/:policyId.
func (h *CommissionsHandler) ListByPolicy(c *fiber.Ctx) error {
	policyID, err := parseID(c, "policyId")
	if err != nil {
		return err
	}
	commissions, err := h.commissions.ListByPolicy(c.UserContext(), policyID)
	if err != nil {
		return err
	}
	return c.JSON(commissions)
}

// Get handles GET /commissions/:id.
func (h *CommissionsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	commission, err := h.commissions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(commission)
}

// Create handles POST /commissions.
func (h *CommissionsHandler) Create(c *fiber.Ctx) error {
	var commission domain.Commission
	if err := c.BodyParser(&commission); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.commissions.Create(c.UserContext(), &commission); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionCreate, "commission", commission.ID, "", c.IP())
	}
	return c.Status(http.StatusCreated).JSON(commission)
}

// Update handles PUT /commissions/:id.
func (h *CommissionsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var commission domain.Commission
	if err := c.BodyParser(&commission); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	commission.ID = id
	if err := h.commissions.Update(c.UserContext(), &commission); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionUpdate, "commission", id, "", c.IP())
	}
	return c.JSON(commission)
}

// UpdateStatus handles PATCH /commissions/:id/status.
func (h *CommissionsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CommissionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	identity, _ := auth.IdentityFromContext(c)
	commission, err := h.commissions.UpdateStatus(c.UserContext(), identity, id, req.Status)
	if err != nil {
		return err
	}
	h.activity.Record(identity, domain.ActivityActionUpdate, "commission", id, "status:"+string(req.Status), c.IP())
	return c.JSON(commission)
}

// Delete handles DELETE /commissions/:id.
func (h *CommissionsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.commissions.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "commission", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "commission deleted"})
}

// ListFinancial handles GET /commissions/financial/transactions.
func (h *CommissionsHandler) ListFinancial(c *fiber.Ctx) error {
	txs, err := h.commissions.ListFinancial(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(txs)
}

// CreateFinancial handles POST /commissions/financial/transactions.
func (h *CommissionsHandler) CreateFinancial(c *fiber.Ctx) error {
	var tx domain.FinancialTransaction
	if err := c.BodyParser(&tx); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.commissions.CreateFinancial(c.UserContext(), &tx); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionCreate, "financial_transaction", tx.ID, string(tx.TransactionType), c.IP())
	}
	return c.Status(http.StatusCreated).JSON(tx)
}
