package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	rg.GET("/profile/:userId", h.get)
	rg.PUT("/profile/:userId", h.update)
}

func (h *Handler) get(c *gin.Context) {
	profile, err := h.Svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) update(c *gin.Context) {
	userID := c.Param("userId")
	if middleware.UserIDFromContext(c) != userID {
		respond.Error(c, http.StatusForbidden, "forbidden", "you can only edit your own profile", nil)
		return
	}

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	profile, err := h.Svc.Update(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}
	respond.OK(c, profile)
}
