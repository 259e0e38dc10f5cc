package ai

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdfhelper-backend/internal/conversations"
	"pdfhelper-backend/internal/shared/server/middleware"
	"pdfhelper-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", h.ask)
	rg.POST("/chat", h.chat)
	rg.GET("/conversation/:pdfId", h.history)
	rg.POST("/generate-notes", h.generateNotes)
}

type askRequest struct {
	DocumentID string `json:"pdfId"`
	Question   string `json:"question"`
}

func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.Ask(c.Request.Context(), userID, req.DocumentID, req.Question)
	if err != nil {
		h.writeError(c, err, "Failed to answer question")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"answer": res.Answer, "cached": res.Cached})
}

type chatRequest struct {
	DocumentID     string `json:"pdfId"`
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.Chat(c.Request.Context(), userID, req.DocumentID, req.ConversationID, req.Message)
	if err != nil {
		h.writeError(c, err, "Failed to process chat message")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"response": res.Response, "conversationId": res.ConversationID})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("pdfId")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	res, err := h.Svc.History(c.Request.Context(), userID, documentID, page, limit)
	if err != nil {
		h.writeError(c, err, "Failed to fetch conversation history")
		return
	}
	respond.JSON(c, http.StatusOK, res)
}

type generateNotesRequest struct {
	DocumentID string `json:"pdfId"`
}

func (h *Handler) generateNotes(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	note, err := h.Svc.GenerateNotes(c.Request.Context(), userID, req.DocumentID)
	if err != nil {
		h.writeError(c, err, "Failed to generate notes")
		return
	}
	respond.JSON(c, http.StatusCreated, note)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrDocumentNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "PDF not found or access denied", nil)
	case errors.Is(err, conversations.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Conversation not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
