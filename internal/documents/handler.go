package documents

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"legalens-backend/internal/shared/server/middleware"
	"legalens-backend/internal/shared/server/respond"
)

const (
	maxUploadSize = 10 << 20 // 10MB
	maxImageSize  = 5 << 20
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.query)
	rg.DELETE("/documents", h.remove)
	rg.POST("/analyze-image", h.analyzeImage)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload document", nil)
		}
		return
	}
	c.Set("documentId", doc.ID)

	respond.JSON(c, http.StatusCreated, doc)
}

// query dispatches GET /documents by query parameter: ?id= fetches one
// record, ?stats=true aggregates, ?q= searches, bare lists.
func (h *Handler) query(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if id := strings.TrimSpace(c.Query("id")); id != "" {
		doc, err := h.Svc.Get(c.Request.Context(), userID, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
			return
		}
		respond.OK(c, doc)
		return
	}

	if c.Query("stats") == "true" {
		stats, err := h.Svc.GetStats(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
			return
		}
		respond.OK(c, stats)
		return
	}

	if q := c.Query("q"); q != "" {
		docs, err := h.Svc.Search(c.Request.Context(), userID, q)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search documents", nil)
			return
		}
		respond.OK(c, listResponse(docs))
		return
	}

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}
	respond.OK(c, listResponse(docs))
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if id := strings.TrimSpace(c.Query("id")); id != "" {
		if err := h.Svc.Delete(c.Request.Context(), userID, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
			return
		}
		respond.OK(c, gin.H{"deleted": 1})
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id query parameter or ids body is required", nil)
		return
	}

	deleted, err := h.Svc.BulkDelete(c.Request.Context(), userID, req.IDs)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete documents", nil)
		return
	}
	respond.OK(c, gin.H{"deleted": deleted})
}

// analyzeImage transcribes a photographed document through the model and
// stores it like any other upload.
func (h *Handler) analyzeImage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "image is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "image content type is required", nil)
		return
	}

	text, err := h.Svc.Analyzer.ExtractImageText(c.Request.Context(), data, mimeType)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read document image", nil)
		return
	}

	result := h.Svc.Analyzer.Analyze(c.Request.Context(), text, fileHeader.Filename)
	doc, err := h.Svc.SaveAnalyzed(c.Request.Context(), userID, "", fileHeader.Filename, text, result, int64(len(data)))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save document", nil)
		return
	}
	c.Set("documentId", doc.ID)

	respond.JSON(c, http.StatusCreated, doc)
}

func listResponse(docs []Document) []gin.H {
	resp := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, gin.H{
			"id":           doc.ID,
			"fileName":     doc.FileName,
			"documentType": doc.DocumentType,
			"riskLevel":    doc.RiskLevel,
			"hasDeadlines": doc.HasDeadlines,
			"tags":         doc.Tags,
			"sizeBytes":    doc.SizeBytes,
			"uploadedAt":   doc.UploadedAt,
			"lastAccessed": doc.LastAccessed,
		})
	}
	return resp
}
