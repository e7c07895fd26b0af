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

// CustomersHandler exposes customer CRUD.
type CustomersHandler struct {
	customers *service.CustomerService
	activity  *service.ActivityRecorder
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService, activity *service.ActivityRecorder) *CustomersHandler {
	return &CustomersHandler{customers: customers, activity: activity}
}

// List handles GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.customers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(customers)
}

// Get handles GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

// Create handles POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var customer domain.Customer
	if err := c.BodyParser(&customer); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := h.customers.Create(c.UserContext(), &customer); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionCreate, "customer", customer.ID, customer.Email, c.IP())
	}
	return c.Status(http.StatusCreated).JSON(customer)
}

// Update handles PUT /customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var customer domain.Customer
	if err := c.BodyParser(&customer); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	customer.ID = id
	if err := h.customers.Update(c.UserContext(), &customer); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionUpdate, "customer", id, customer.Email, c.IP())
	}
	return c.JSON(customer)
}

// Delete handles DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.customers.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "customer", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "customer deleted"})
}
