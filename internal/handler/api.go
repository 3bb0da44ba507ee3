package handler

import (
	"errors"
	"net/http"

	"github.com/pjtries/VeritasAI/internal/models"
	"github.com/pjtries/VeritasAI/internal/pipeline"
	"github.com/pjtries/VeritasAI/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests
type Handler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(p *pipeline.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline: p,
		logger:   logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)

	r.POST("/scan", h.StartScan)
	r.GET("/scan/:id", h.GetScan)
	r.GET("/scan/:id/deep_dive", h.DeepDive)
	r.POST("/scan/:id/supreme_court", h.SupremeCourt)
	r.POST("/scan/:id/firewall_reconstruction", h.FirewallReconstruction)

	api := r.Group("/api/v1")
	{
		api.GET("/scans/stats", h.Stats)
	}

	r.GET("/health", h.HealthCheck)
}

// Root returns the engine banner
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "online",
		"engine": "VERITAS Reasoning Engine v1.0",
	})
}

// StartScan accepts multipart content and runs Phase 1 triage
func (h *Handler) StartScan(c *gin.Context) {
	input := models.ScanInput{
		Text: c.PostForm("text_content"),
		URL:  c.PostForm("url"),
	}

	// The upload itself is never read: only the name feeds the
	// transcription placeholder.
	if file, err := c.FormFile("file"); err == nil && file != nil {
		input.FileName = file.Filename
	}

	record, err := h.pipeline.Triage(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Triage failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scan failed"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetScan returns a stored scan record
func (h *Handler) GetScan(c *gin.Context) {
	record, err := h.pipeline.GetScan(c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "get scan")
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeepDive returns the Phase 2 forensic report
func (h *Handler) DeepDive(c *gin.Context) {
	report, err := h.pipeline.DeepDive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "deep dive")
		return
	}

	c.JSON(http.StatusOK, report)
}

// SupremeCourt returns the Phase 3 verdict, degraded or not
func (h *Handler) SupremeCourt(c *gin.Context) {
	report, err := h.pipeline.Adjudicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "adjudication")
		return
	}

	c.JSON(http.StatusOK, report)
}

// FirewallReconstruction returns the Phase 4 reconstruction report
func (h *Handler) FirewallReconstruction(c *gin.Context) {
	report, err := h.pipeline.Reconstruct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err, "reconstruction")
		return
	}

	c.JSON(http.StatusOK, report)
}

// Stats returns aggregate scan statistics
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.pipeline.Stats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck returns service health and the provider chain state
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "veritas-engine",
		"version":   "1.0.0",
		"providers": h.pipeline.ProvidersInfo(),
	})
}

func (h *Handler) respondLookupError(c *gin.Context, err error, op string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		return
	}
	h.logger.Error("Request failed", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}
