package certificates

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for certificate operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new certificates handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers certificate routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	certs := router.Group("/certificates")
	{
		certs.POST("/generate", h.generateBatch)
		certs.GET("", h.listCertificates)
		certs.GET("/templates", h.listTemplates)
		certs.GET("/export", h.exportRegistry)
		certs.GET("/:id/download", h.downloadCertificate)
	}
}

// GenerateRequest is the batch generation payload
type GenerateRequest struct {
	ParticipantIDs []uuid.UUID `json:"participant_ids" binding:"required,min=1"`
}

func (h *Handler) generateBatch(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.GenerateForParticipants(c.Request.Context(), req.ParticipantIDs)
	if err != nil {
		h.logger.Error("Batch generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// partial failures are reported inside the result, not as an HTTP error
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"generated":    result.Generated,
		"errors":       result.Errors,
		"certificates": result.Certificates,
	})
}

func (h *Handler) listCertificates(c *gin.Context) {
	certs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list certificates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list certificates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"certificates": certs, "total": len(certs)})
}

func (h *Handler) listTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *Handler) downloadCertificate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certificate id"})
		return
	}

	path, filename, err := h.service.GetFile(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.FileAttachment(path, filename)
}

func (h *Handler) exportRegistry(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="certificates.csv"`)
		if err := h.service.ExportCSV(c.Request.Context(), c.Writer); err != nil {
			h.logger.Error("CSV export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="certificates.xlsx"`)
		if err := h.service.ExportExcel(c.Request.Context(), c.Writer); err != nil {
			h.logger.Error("Excel export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format, use csv or xlsx"})
	}
}
