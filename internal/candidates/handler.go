package candidates

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-onboarding/internal/profile"
	"candidate-onboarding/internal/shared/server/middleware"
	"candidate-onboarding/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidates/me", h.me)
	rg.POST("/candidates", h.provision)
	rg.PATCH("/candidates/:id", h.patch)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	candidate, err := h.Svc.GetForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load candidate", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"data": candidate.ToRecord()})
}

type provisionRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// provision responds with the creation envelope rather than the standard
// error body: callers branch on {success, candidate, error}.
func (h *Handler) provision(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req provisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.JSON(c, http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		req.Email = middleware.UserEmailFromContext(c)
	}
	if strings.TrimSpace(req.FullName) == "" {
		req.FullName = middleware.UserNameFromContext(c)
	}

	candidate, created, err := h.Svc.Provision(c.Request.Context(), userID, req.Email, req.FullName, req.AvatarURL)
	if err != nil {
		respond.JSON(c, http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create candidate"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	rec := candidate.ToRecord()
	respond.JSON(c, status, gin.H{"success": true, "candidate": rec})
}

func (h *Handler) patch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	recordID := c.Param("id")

	var patch profile.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	candidate, err := h.Svc.ApplyPatch(c.Request.Context(), userID, recordID, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "candidate belongs to another user", nil)
		case errors.Is(err, ErrInvalidStatus):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update candidate", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"data": candidate.ToRecord()})
}
