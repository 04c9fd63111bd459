package mailer

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for email operations
type Handler struct {
	service    *Service
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewHandler creates a new mailer handler
func NewHandler(service *Service, dispatcher *Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		service:    service,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterRoutes registers mailer routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	mail := router.Group("/mail")
	{
		mail.POST("/send", h.sendOne)
		mail.POST("/send-batch", h.sendBatch)
		mail.GET("/test", h.testConnection)
	}
}

// SendRequest targets a single participant
type SendRequest struct {
	ParticipantID uuid.UUID `json:"participant_id" binding:"required"`
}

// SendBatchRequest targets an ordered list of participants
type SendBatchRequest struct {
	ParticipantIDs []uuid.UUID `json:"participant_ids" binding:"required,min=1"`
}

func (h *Handler) sendOne(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SendToParticipant(c.Request.Context(), req.ParticipantID); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "email sent"})
}

func (h *Handler) sendBatch(c *gin.Context) {
	var req SendBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.SendBatch(c.Request.Context(), req.ParticipantIDs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sent":    result.Sent,
		"failed":  result.Failed,
		"errors":  result.Errors,
	})
}

func (h *Handler) testConnection(c *gin.Context) {
	if err := h.dispatcher.TestConnection(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "smtp connection ok"})
}
