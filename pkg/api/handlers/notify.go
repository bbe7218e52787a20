package handlers

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rllynch/pi-garage-smartthings/pkg/api/types"
	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
)

// NotifyHandler handles inbound sensor notifications and raw message ingest
type NotifyHandler struct {
	controller sensor.Controller
}

// NewNotifyHandler creates a new notify handler
func NewNotifyHandler(controller sensor.Controller) *NotifyHandler {
	return &NotifyHandler{controller: controller}
}

// Notify handles POST /notify and POST /notify/:suffix
// @Summary      Sensor notification callback
// @Description  Receives the XML event payload a sensor delivers to its subscription callback
// @Tags         notify
// @Accept       xml
// @Produce      json
// @Param        suffix  path      string  false  "Callback suffix"
// @Success      200     {object}  types.IngestResponse
// @Failure      400     {object}  types.ErrorResponse  "Malformed payload"
// @Router       /notify [post]
func (h *NotifyHandler) Notify(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "empty notification body",
		})
		return
	}

	if suffix := c.Param("suffix"); suffix != "" {
		log.Debug().Str("suffix", suffix).Msg("Notification received on suffixed callback")
	}

	// Sensors deliver the XML document raw; the canonical message form
	// carries it base64-encoded in the body field.
	raw := "body:" + base64.StdEncoding.EncodeToString(body)
	if err := h.controller.IngestMessage(c.Request.Context(), raw); err != nil {
		respondSensorError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.IngestResponse{Status: "accepted"})
}

// IngestMessage handles POST /messages
// @Summary      Ingest a raw message
// @Description  Handles one discovery or notification message in its comma-separated wire form
// @Tags         notify
// @Accept       json
// @Produce      json
// @Param        request  body      types.IngestRequest  true  "Raw message"
// @Success      200      {object}  types.IngestResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request or malformed payload"
// @Router       /messages [post]
func (h *NotifyHandler) IngestMessage(c *gin.Context) {
	var req types.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "message is required",
		})
		return
	}

	if err := h.controller.IngestMessage(c.Request.Context(), req.Message); err != nil {
		respondSensorError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.IngestResponse{Status: "accepted"})
}
