package chat

import (
	"errors"
	"net/http"
	"strings"

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
	rg.POST("/chat", h.respond)
}

type chatRequest struct {
	Question   string    `json:"question"`
	History    []Message `json:"history"`
	DocumentID string    `json:"documentId"`
}

func (h *Handler) respond(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
		return
	}

	reply, err := h.Svc.Respond(c.Request.Context(), userID, req.Question, req.History, req.DocumentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to answer question", nil)
		return
	}

	if reply.Fallback {
		c.Set("llmFallback", true)
	}
	respond.OK(c, reply)
}
