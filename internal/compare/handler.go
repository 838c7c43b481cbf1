package compare

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalens-backend/internal/documents"
	"legalens-backend/internal/shared/server/middleware"
	"legalens-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/compare", h.compare)
}

type compareRequest struct {
	Document1ID string `json:"document1Id"`
	Document2ID string `json:"document2Id"`
}

func (h *Handler) compare(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Document1ID == "" || req.Document2ID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document1Id and document2Id are required", nil)
		return
	}
	if req.Document1ID == req.Document2ID {
		respond.Error(c, http.StatusBadRequest, "validation_error", "cannot compare a document with itself", nil)
		return
	}

	result, err := h.Svc.Compare(c.Request.Context(), userID, req.Document1ID, req.Document2ID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compare documents", nil)
		return
	}

	respond.OK(c, result)
}
