package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rllynch/pi-garage-smartthings/pkg/api/types"
	"github.com/rllynch/pi-garage-smartthings/pkg/sensor"
	"github.com/rllynch/pi-garage-smartthings/pkg/ssdp"
)

// SensorsHandler handles sensor CRUD and action endpoints
type SensorsHandler struct {
	controller sensor.Controller
}

// NewSensorsHandler creates a new sensors handler
func NewSensorsHandler(controller sensor.Controller) *SensorsHandler {
	return &SensorsHandler{controller: controller}
}

// ListSensors handles GET /sensors
// @Summary      List all sensors
// @Description  Returns all registered contact sensors and their state
// @Tags         sensors
// @Produce      json
// @Success      200  {object}  types.ListSensorsResponse
// @Failure      500  {object}  types.ErrorResponse  "Hub error"
// @Router       /sensors [get]
func (h *SensorsHandler) ListSensors(c *gin.Context) {
	sensors, err := h.controller.ListSensors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "hub_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.ListSensorsResponse{
		Sensors: sensors,
		Count:   len(sensors),
	})
}

// GetSensor handles GET /sensors/:usn
// @Summary      Get sensor details
// @Description  Returns details for a specific sensor by USN
// @Tags         sensors
// @Produce      json
// @Param        usn  path      string  true  "Sensor USN"
// @Success      200  {object}  types.SensorResponse
// @Failure      404  {object}  types.ErrorResponse  "Sensor not found"
// @Router       /sensors/{usn} [get]
func (h *SensorsHandler) GetSensor(c *gin.Context) {
	got, err := h.controller.GetSensor(c.Request.Context(), c.Param("usn"))
	if err != nil {
		respondSensorError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.SensorResponse{Sensor: *got})
}

// RegisterSensor handles POST /sensors
// @Summary      Register a sensor
// @Description  Manually registers a contact sensor and subscribes to it
// @Tags         sensors
// @Accept       json
// @Produce      json
// @Param        request  body      sensor.Registration  true  "Sensor registration"
// @Success      201      {object}  types.SensorResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid registration"
// @Failure      409      {object}  types.ErrorResponse  "Sensor already registered"
// @Router       /sensors [post]
func (h *SensorsHandler) RegisterSensor(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "failed to read request body",
		})
		return
	}

	// Validate against the registration schema before decoding, so
	// unknown and malformed fields are rejected with a clear message.
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "request body is not valid JSON",
		})
		return
	}
	if err := sensor.ValidateRegistration(payload); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	var reg sensor.Registration
	if err := json.Unmarshal(raw, &reg); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	registered, err := h.controller.RegisterSensor(c.Request.Context(), reg)
	if err != nil {
		respondSensorError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.SensorResponse{Sensor: *registered})
}

// RemoveSensor handles DELETE /sensors/:usn
// @Summary      Remove a sensor
// @Description  Unregisters a sensor from the hub
// @Tags         sensors
// @Produce      json
// @Param        usn  path  string  true  "Sensor USN"
// @Success      204  "Sensor removed successfully"
// @Failure      404  {object}  types.ErrorResponse  "Sensor not found"
// @Router       /sensors/{usn} [delete]
func (h *SensorsHandler) RemoveSensor(c *gin.Context) {
	if err := h.controller.RemoveSensor(c.Request.Context(), c.Param("usn")); err != nil {
		respondSensorError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PollSensor handles POST /sensors/:usn/poll
// @Summary      Poll a sensor
// @Description  Asks the sensor to push its current state
// @Tags         sensors
// @Produce      json
// @Param        usn  path      string  true  "Sensor USN"
// @Success      200  {object}  types.ActionResponse
// @Failure      404  {object}  types.ErrorResponse  "Sensor not found"
// @Failure      422  {object}  types.ErrorResponse  "No usable endpoint"
// @Router       /sensors/{usn}/poll [post]
func (h *SensorsHandler) PollSensor(c *gin.Context) {
	h.action(c, "polled", h.controller.PollSensor)
}

// RefreshSensor handles POST /sensors/:usn/refresh
// @Summary      Refresh a sensor
// @Description  Re-establishes the event subscription for a sensor
// @Tags         sensors
// @Produce      json
// @Param        usn  path      string  true  "Sensor USN"
// @Success      200  {object}  types.ActionResponse
// @Failure      404  {object}  types.ErrorResponse  "Sensor not found"
// @Failure      422  {object}  types.ErrorResponse  "No usable endpoint"
// @Router       /sensors/{usn}/refresh [post]
func (h *SensorsHandler) RefreshSensor(c *gin.Context) {
	h.action(c, "refreshed", h.controller.RefreshSensor)
}

// SubscribeSensor handles POST /sensors/:usn/subscribe
// @Summary      Subscribe to a sensor
// @Description  Issues an explicit event subscription to a sensor
// @Tags         sensors
// @Produce      json
// @Param        usn  path      string  true  "Sensor USN"
// @Success      200  {object}  types.ActionResponse
// @Failure      404  {object}  types.ErrorResponse  "Sensor not found"
// @Failure      422  {object}  types.ErrorResponse  "No usable endpoint"
// @Router       /sensors/{usn}/subscribe [post]
func (h *SensorsHandler) SubscribeSensor(c *gin.Context) {
	h.action(c, "subscribed", h.controller.SubscribeSensor)
}

type actionFunc func(ctx context.Context, usn string) error

func (h *SensorsHandler) action(c *gin.Context, status string, fn actionFunc) {
	usn := c.Param("usn")
	if err := fn(c.Request.Context(), usn); err != nil {
		respondSensorError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ActionResponse{Status: status, USN: usn})
}

// respondSensorError maps domain errors to HTTP responses.
func respondSensorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sensor.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Sensor not found",
		})
	case errors.Is(err, sensor.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error:   "already_registered",
			Message: "A sensor with this USN is already registered",
		})
	case errors.Is(err, sensor.ErrValidation):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, ssdp.ErrEndpointUnresolved), errors.Is(err, ssdp.ErrMalformedAddress):
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
			Error:   "endpoint_unresolved",
			Message: err.Error(),
		})
	case errors.Is(err, ssdp.ErrMalformedPayload):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "malformed_payload",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "hub_error",
			Message: err.Error(),
		})
	}
}
