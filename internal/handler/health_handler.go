package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"firsgate/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Ready when the signing key encrypts and artifact storage is writable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.healthService.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "signing not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health handles GET /api/v1/system/health
// @Summary System health
// @Description Build information and, with detailed=true, probes of the key bundle, storage, tax authority API, database, and archive bucket
// @Tags health
// @Produce json
// @Param detailed query bool false "Probe every dependency"
// @Success 200 {object} Response{data=service.HealthReport} "System healthy"
// @Router /system/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context(), c.Query("detailed") == "true")
	message := "System healthy"
	if report.Status == service.HealthDegraded {
		message = "System degraded"
	}
	RespondOK(c, message, report)
}
