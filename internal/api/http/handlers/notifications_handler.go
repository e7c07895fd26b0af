package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agencydesk/backoffice/internal/api/dto"
	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/service"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// NotificationsHandler exposes the notification inbox.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// ListAll handles GET /notifications/all.
func (h *NotificationsHandler) ListAll(c *fiber.Ctx) error {
	notifications, err := h.notifications.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(notifications)
}

// ListOwn handles GET /notifications. The unread=true query narrows to the
// unread subset.
func (h *NotificationsHandler) ListOwn(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if c.QueryBool("unread", false) {
		notifications, err := h.notifications.ListOwnUnread(c.UserContext(), identity.UserID)
		if err != nil {
			return err
		}
		return c.JSON(notifications)
	}
	notifications, err := h.notifications.ListOwn(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(notifications)
}

// Create handles POST /notifications.
func (h *NotificationsHandler) Create(c *fiber.Ctx) error {
	var req dto.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	n, err := h.notifications.Notify(c.UserContext(), req.UserID, req.Title, req.Message, req.Channel)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(n)
}

// Broadcast handles POST /notifications/bulk.
func (h *NotificationsHandler) Broadcast(c *fiber.Ctx) error {
	var req dto.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	var sent int
	var err error
	if req.Role != "" {
		sent, err = h.notifications.NotifyRole(c.UserContext(), req.Role, req.Title, req.Message, req.Channel)
	} else {
		sent, err = h.notifications.Broadcast(c.UserContext(), req.Title, req.Message, req.Channel)
	}
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "notifications sent", "count": sent})
}

// MarkRead handles PATCH /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)
	if err := h.notifications.MarkRead(c.UserContext(), id, identity.UserID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "notification marked read"})
}

// MarkAllRead handles PATCH /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := h.notifications.MarkAllRead(c.UserContext(), identity.UserID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "all notifications marked read"})
}

// Delete handles DELETE /notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)
	if err := h.notifications.Delete(c.UserContext(), id, identity.UserID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "notification deleted"})
}
