package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/agencydesk/backoffice/internal/api/dto"
	"github.com/agencydesk/backoffice/internal/auth"
	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/service"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// DocumentsHandler exposes document upload, download and metadata endpoints.
type DocumentsHandler struct {
	documents *service.DocumentService
	activity  *service.ActivityRecorder
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(documents *service.DocumentService, activity *service.ActivityRecorder) *DocumentsHandler {
	return &DocumentsHandler{documents: documents, activity: activity}
}

// List handles GET /documents. Optional relatedType/relatedId filters narrow
// the listing to one record's attachments.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	relatedType := c.Query("relatedType")
	relatedIDStr := c.Query("relatedId")
	if relatedType != "" && relatedIDStr != "" {
		relatedID, err := strconv.ParseInt(relatedIDStr, 10, 64)
		if err != nil || relatedID <= 0 {
			return apperrors.NewValidationError("invalid relatedId")
		}
		docs, err := h.documents.ListByRelated(c.UserContext(), relatedType, relatedID)
		if err != nil {
			return err
		}
		return c.JSON(docs)
	}

	docs, err := h.documents.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// Get handles GET /documents/:id.
func (h *DocumentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.documents.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// Upload handles POST /documents. The file arrives as multipart form field
// "file" alongside relatedType and relatedId fields.
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file required")
	}
	relatedType := c.FormValue("relatedType")
	relatedID, err := strconv.ParseInt(c.FormValue("relatedId"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid relatedId")
	}

	doc, err := h.documents.Upload(c.UserContext(), relatedType, relatedID, identity.UserID, header)
	if err != nil {
		return err
	}
	h.activity.Record(identity, domain.ActivityActionCreate, "document", doc.ID, doc.FileName, c.IP())
	return c.Status(http.StatusCreated).JSON(doc)
}

// Download handles GET /documents/:id/download.
func (h *DocumentsHandler) Download(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	doc, path, err := h.documents.FilePath(c.UserContext(), id)
	if err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDownload, "document", id, doc.FileName, c.IP())
	}
	return c.Download(path, doc.FileName)
}

// Delete handles DELETE /documents/:id.
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.documents.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if identity, ok := auth.IdentityFromContext(c); ok {
		h.activity.Record(identity, domain.ActivityActionDelete, "document", id, "", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "document deleted"})
}
