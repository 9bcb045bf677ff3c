// Package pid implements the fixed-period, DIRECT-mode discrete PID loop
// described in spec.md §4.7, grounded on two sources: the gating/derivative-
// on-measurement shape of VLOvenController's m_PID (original_source,
// a PID_v1-style library), and the clamp-based anti-windup style of
// other_examples' Ixian-fan-controller-go pid.go.
package pid

import "ovencontroller/internal/models"

// Period is the fixed PID compute interval in milliseconds (PID_SAMPLE_TIME
// in the original firmware).
const Period = 250

// OutputMin and OutputMax bound the duty cycle the loop may command.
const (
	OutputMin = 0.0
	OutputMax = 100.0
)

// Controller is a DIRECT-mode PID: increasing error (input below setpoint)
// drives output up. Gains are only settable while the loop is stopped
// (spec.md invariant on PID tunings).
type Controller struct {
	kp, ki, kd float64

	running       bool
	integral      float64
	lastInput     float64
	haveLastInput bool
	lastComputeMs uint64
	haveCompute   bool

	output float64
}

// New constructs a Controller with the given tunings.
func New(t models.PIDTunings) *Controller {
	return &Controller{kp: t.Kp, ki: t.Ki, kd: t.Kd}
}

// Tunings returns the current gains.
func (c *Controller) Tunings() models.PIDTunings {
	return models.PIDTunings{Kp: c.kp, Ki: c.ki, Kd: c.kd}
}

// SetTunings updates the gains. Returns false without effect if the loop
// is currently running (tunings are pre-Start only, per spec.md).
func (c *Controller) SetTunings(t models.PIDTunings) bool {
	if c.running {
		return false
	}
	c.kp, c.ki, c.kd = t.Kp, t.Ki, t.Kd
	return true
}

// Start puts the loop into automatic mode, clearing any stale integral or
// derivative history from a previous run.
func (c *Controller) Start(nowMs uint64) {
	c.running = true
	c.integral = 0
	c.haveLastInput = false
	c.lastComputeMs = nowMs
	c.haveCompute = true
	c.output = 0
}

// Stop puts the loop into manual mode and forces the output to zero,
// mirroring VLOvenController::Stop's SetMode(MANUAL) + setHeaterDuty(0).
func (c *Controller) Stop() {
	c.running = false
	c.output = 0
}

// Running reports whether the loop is in automatic mode.
func (c *Controller) Running() bool {
	return c.running
}

// Output returns the last computed duty cycle.
func (c *Controller) Output() float64 {
	return c.output
}

// Tick advances the loop. It only recomputes the output once Period ms
// have elapsed since the last compute (PID_v1's internal gating, driving
// m_PID.Compute()'s return value in the original firmware); computed
// reports whether a new output was produced this call.
func (c *Controller) Tick(nowMs uint64, input, setpoint float64) (output float64, computed bool) {
	if !c.running {
		return 0, false
	}
	if c.haveCompute && nowMs-c.lastComputeMs < Period {
		return c.output, false
	}
	c.lastComputeMs = nowMs
	c.haveCompute = true

	errorVal := setpoint - input

	c.integral += c.ki * errorVal
	c.integral = clamp(c.integral, OutputMin, OutputMax)

	dInput := 0.0
	if c.haveLastInput {
		dInput = input - c.lastInput
	}
	c.lastInput = input
	c.haveLastInput = true

	out := c.kp*errorVal + c.integral - c.kd*dInput
	c.output = clamp(out, OutputMin, OutputMax)
	return c.output, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
