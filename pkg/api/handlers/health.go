package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rllynch/pi-garage-smartthings/pkg/api/types"
	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	controller sensor.Controller
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller sensor.Controller) *HealthHandler {
	return &HealthHandler{controller: controller}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the hub
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	hubStatus := "stopped"
	status := "degraded"
	httpStatus := http.StatusServiceUnavailable

	if h.controller.Ready() {
		hubStatus = "running"
		status = "healthy"
		httpStatus = http.StatusOK
	}

	count := 0
	if sensors, err := h.controller.ListSensors(c.Request.Context()); err == nil {
		count = len(sensors)
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Hub:       hubStatus,
		Sensors:   count,
		Timestamp: time.Now(),
	})
}
