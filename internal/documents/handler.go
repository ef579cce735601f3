package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-onboarding/internal/shared/server/middleware"
	"candidate-onboarding/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10 MiB

var allowedMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.DELETE("/documents/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	entityType := strings.TrimSpace(c.PostForm("entity_type"))
	entityID := strings.TrimSpace(c.PostForm("entity_id"))
	documentType := strings.TrimSpace(c.PostForm("document_type"))
	if entityType != EntityCandidate {
		respond.Error(c, http.StatusBadRequest, "validation_error", "entity_type must be candidate", nil)
		return
	}
	if entityID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "entity_id is required", nil)
		return
	}
	if documentType != TypeResume {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document_type must be resume", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	declared := fileHeader.Header.Get("Content-Type")
	if _, ok := allowedMimeTypes[declared]; !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file type", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), userID, entityID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"id":            doc.ID,
		"entity_type":   doc.EntityType,
		"entity_id":     doc.EntityID,
		"document_type": doc.DocumentType,
		"file_name":     doc.FileName,
		"mime_type":     doc.MimeType,
		"size_bytes":    doc.SizeBytes,
		"created_at":    doc.CreatedAt,
	})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	if err := h.Svc.Remove(c.Request.Context(), userID, documentID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
