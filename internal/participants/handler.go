package participants

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for participant operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new participants handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers participant routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	participants := router.Group("/participants")
	{
		participants.POST("", h.createParticipant)
		participants.GET("", h.listParticipants)
		participants.GET("/:id", h.getParticipant)
	}
}

func (h *Handler) createParticipant(c *gin.Context) {
	var req CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) listParticipants(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list participants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list participants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": list, "total": len(list)})
}

func (h *Handler) getParticipant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}
