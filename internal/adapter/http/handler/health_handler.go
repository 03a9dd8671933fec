package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davidmnz/textclassify/internal/usecase"
)

// ServiceVersion is reported by the root descriptor endpoint.
const ServiceVersion = "1.0.0"

// HealthHandler handles the root descriptor and health check endpoints
type HealthHandler struct {
	predictionUC usecase.PredictionUsecase
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(predictionUC usecase.PredictionUsecase) *HealthHandler {
	return &HealthHandler{predictionUC: predictionUC}
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{
		"service": "text classification service",
		"version": ServiceVersion,
		"health":  "/health",
		"metrics": "/metrics",
	})
}

// Health handles GET /health. An unloaded model is reported as unhealthy
// with status 200; 503 is reserved for the health computation itself
// failing.
func (h *HealthHandler) Health(c *gin.Context) {
	output, err := h.predictionUC.Health(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "health check failed")
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
