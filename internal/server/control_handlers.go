package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ovencontroller/internal/models"
)

// @Summary  Start the controller on the active profile
// @Tags     control
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /api/v1/control/start [post]
func (h *Handler) start(c *gin.Context) {
	if _, ok := h.ctrl.Loaded(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no active profile"})
		return
	}
	h.ctrl.Start()
	c.JSON(http.StatusOK, gin.H{"status": "started", "running": h.ctrl.Running()})
}

// @Summary  Stop the controller
// @Tags     control
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /api/v1/control/stop [post]
func (h *Handler) stop(c *gin.Context) {
	h.ctrl.Stop()
	c.JSON(http.StatusOK, gin.H{"status": "stopped", "running": h.ctrl.Running()})
}

// @Summary  Current controller run state
// @Tags     control
// @Produce  json
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /api/v1/control/state [get]
func (h *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"running":            h.ctrl.Running(),
		"current_phase":      h.ctrl.CurrentPhaseIndex(),
		"process_duration_ms": h.ctrl.ProcessDurationMs(),
		"phase_duration_ms":   h.ctrl.PhaseDurationMs(),
	})
}

// @Summary  Current PID gains
// @Tags     control
// @Produce  json
// @Success  200 {object} models.PIDTunings
// @Security BearerAuth
// @Router   /api/v1/control/pid [get]
func (h *Handler) getPID(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.PIDTunings())
}

// @Summary  Update PID gains (rejected while running)
// @Tags     control
// @Accept   json
// @Produce  json
// @Param    body body models.PIDTunings true "tunings"
// @Success  200 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Security BearerAuth
// @Router   /api/v1/control/pid [put]
func (h *Handler) setPID(c *gin.Context) {
	var t models.PIDTunings
	if !h.bindJSONOrBadRequest(c, &t) {
		return
	}
	if !h.ctrl.SetPIDTunings(t) {
		c.JSON(http.StatusConflict, gin.H{"error": "controller busy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
