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

// TransactionsHandler exposes the bookkeeping ledger.
type TransactionsHandler struct {
	transactions *service.TransactionService
	activity     *service.ActivityRecorder
}

// NewTransactionsHandler constructs handler.
func NewTransactionsHandler(transactions *service.TransactionService, activity *service.ActivityRecorder) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactions, activity: activity}
}

// List handles GET /transactions.
func (h *TransactionsHandler) List(c *fiber.Ctx) error {
	txs, err := h.transactions.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(txs)
}

// Get handles GET /transactions/:id.
func (h *TransactionsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	tx, err := h.transactions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(tx)
}

// Create handles POST /transactions.
func (h *TransactionsHandler) Create(c *fiber.Ctx) error {
	var tx domain.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.transactions.Create(c.UserContext(), &tx); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionCreate, "transaction", tx.ID, tx.Category, c.IP())
	}
	return c.Status(http.StatusCreated).JSON(tx)
}

// Update handles PUT /transactions/:id.
func (h *TransactionsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var tx domain.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	tx.ID = id
	if err := h.transactions.Update(c.UserContext(), &tx); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionUpdate, "transaction", id, tx.Category, c.IP())
	}
	return c.JSON(tx)
}

// Delete handles DELETE /transactions/:id.
func (h *TransactionsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.transactions.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "transaction", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "transaction deleted"})
}
