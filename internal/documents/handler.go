package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pdfhelper-backend/internal/shared/server/middleware"
	"pdfhelper-backend/internal/shared/server/respond"
	"pdfhelper-backend/internal/shared/telemetry"
)

const maxUploadSize = 25 << 20 // 25MB

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
	rg.POST("/upload", h.upload)
	rg.GET("/getpdfs", h.list)
	rg.GET("/pdfs/:pdfId/details", h.details)
	rg.DELETE("/pdfs/:pdfId", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "PDF file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Ingest(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		// The cause stays server-side; clients only see the generic message.
		telemetry.Error("pdf.upload", map[string]any{
			"user_id": userID,
			"file":    fileHeader.Filename,
			"error":   err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process PDF", nil)
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch PDFs", nil)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) details(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("pdfId")

	if _, err := uuid.Parse(documentID); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid PDF ID format", nil)
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "PDF not found or access denied", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch PDF details", nil)
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("pdfId")

	if _, err := uuid.Parse(documentID); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid PDF ID format", nil)
		return
	}

	err := h.Svc.Delete(c.Request.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "PDF not found or access denied", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete PDF", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"message": "PDF deleted successfully"})
}
