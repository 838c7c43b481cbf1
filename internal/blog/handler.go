package blog

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
	rg.POST("/blog", h.createPost)
	rg.GET("/blog", h.listPosts)
	rg.GET("/blog/:id", h.getPost) // path parameter is the slug
	rg.PUT("/blog/:id", h.updatePost)
	rg.DELETE("/blog/:id", h.deletePost)
	rg.POST("/blog/:id/like", h.toggleLike)
	rg.GET("/blog/:id/like", h.likeState)
	rg.POST("/blog/:id/comments", h.addComment)
	rg.GET("/blog/:id/comments", h.listComments)
	rg.DELETE("/blog/:id/comments/:commentId", h.deleteComment)
}

func sessionAuthor(c *gin.Context) Author {
	return Author{
		ID:    middleware.UserIDFromContext(c),
		Name:  middleware.UserNameFromContext(c),
		Photo: middleware.UserPictureFromContext(c),
	}
}

func (h *Handler) createPost(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	post, err := h.Svc.CreatePost(c.Request.Context(), sessionAuthor(c), in)
	if err != nil {
		writeServiceError(c, err, "failed to create post")
		return
	}
	respond.JSON(c, http.StatusCreated, post)
}

func (h *Handler) listPosts(c *gin.Context) {
	var (
		posts []Post
		err   error
	)
	if authorID := c.Query("author"); authorID != "" {
		posts, err = h.Svc.ListByAuthor(c.Request.Context(), middleware.UserIDFromContext(c), authorID)
	} else {
		posts, err = h.Svc.ListPublished(c.Request.Context())
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list posts", nil)
		return
	}
	respond.OK(c, posts)
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "failed to fetch post")
		return
	}
	respond.OK(c, post)
}

func (h *Handler) updatePost(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	post, err := h.Svc.UpdatePost(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), in)
	if err != nil {
		writeServiceError(c, err, "failed to update post")
		return
	}
	respond.OK(c, post)
}

func (h *Handler) deletePost(c *gin.Context) {
	err := h.Svc.DeletePost(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "failed to delete post")
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func (h *Handler) toggleLike(c *gin.Context) {
	state, err := h.Svc.ToggleLike(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "failed to toggle like")
		return
	}
	respond.OK(c, state)
}

func (h *Handler) likeState(c *gin.Context) {
	state, err := h.Svc.HasLiked(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "failed to fetch like state")
		return
	}
	respond.OK(c, state)
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) addComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	comment, err := h.Svc.AddComment(c.Request.Context(), sessionAuthor(c), c.Param("id"), req.Content)
	if err != nil {
		writeServiceError(c, err, "failed to add comment")
		return
	}
	respond.JSON(c, http.StatusCreated, comment)
}

func (h *Handler) listComments(c *gin.Context) {
	comments, err := h.Svc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "failed to list comments")
		return
	}
	respond.OK(c, comments)
}

func (h *Handler) deleteComment(c *gin.Context) {
	err := h.Svc.DeleteComment(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), c.Param("commentId"))
	if err != nil {
		writeServiceError(c, err, "failed to delete comment")
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func writeServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "you do not own this resource", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "post or comment not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallbackMsg, nil)
	}
}
