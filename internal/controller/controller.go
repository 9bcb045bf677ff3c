// Package controller implements the phase state machine (spec.md §4.8,
// component C8), grounded on VLOvenController::startPhase/doCycle in
// original_source: a single-threaded cooperative Tick() drives the
// envelope generator and PID loop exactly as the original firmware's
// doCycle did, adapted from global statics into an injectable struct.
package controller

import (
	"ovencontroller/internal/actuator"
	"ovencontroller/internal/envelope"
	"ovencontroller/internal/events"
	"ovencontroller/internal/models"
	"ovencontroller/internal/pid"
	"ovencontroller/internal/profile"
	"ovencontroller/internal/sensor"
)

// IdleHeartbeatMs is how often a temp[...] heartbeat is emitted while the
// oven is not running (TEMPLOGSAMPLING_TIME in the original firmware).
const IdleHeartbeatMs = 500

// Clock is the minimal time source the controller needs.
type Clock interface {
	NowMs() uint64
}

// Controller ties the sensor, actuator, envelope generator and PID loop
// together into the phase state machine.
type Controller struct {
	clock    Clock
	sensor   sensor.Sensor
	actuator actuator.Actuator
	bus      *events.Bus

	loaded      *models.Profile
	activeIndex int // catalog index of loaded, -1 if loaded wasn't set via SetActiveIndex
	phaseIdx    int // -1 before any profile is loaded and after the last phase ends
	running     bool

	startTemp       float64
	currentSetpoint float64
	env             envelope.Generator
	pidCtl          *pid.Controller

	processStartMs uint64
	phaseStartMs   uint64
	envelopeSample uint64

	idleSample    uint64
	haveIdleSample bool
}

// New constructs an idle Controller with default PID tunings.
func New(clk Clock, sens sensor.Sensor, act actuator.Actuator, bus *events.Bus) *Controller {
	return &Controller{
		clock:       clk,
		sensor:      sens,
		actuator:    act,
		bus:         bus,
		phaseIdx:    -1,
		activeIndex: -1,
		pidCtl:      pid.New(models.DefaultPIDTunings()),
	}
}

// SetPhases validates and loads a new profile, stopping any run in
// progress, mirroring VLOvenController::setPhases.
func (c *Controller) SetPhases(p models.Profile) error {
	if err := profile.Validate(p); err != nil {
		return err
	}
	c.Stop()
	cp := p
	c.loaded = &cp
	c.activeIndex = -1
	c.phaseIdx = 0
	c.actuator.SetDuty(0)
	c.running = false
	return nil
}

// SetActiveIndex records the catalog index the currently loaded profile
// was selected from, reported by "p cur" (spec.md §6). Callers that select
// or create a profile by catalog index (the dispatcher, the HTTP profile
// handlers) call this immediately after a successful SetPhases.
func (c *Controller) SetActiveIndex(idx int) {
	c.activeIndex = idx
}

// ActiveIndex returns the catalog index of the loaded profile, or -1 if
// none is loaded or it wasn't loaded by index.
func (c *Controller) ActiveIndex() int {
	return c.activeIndex
}

// Loaded returns the currently loaded profile, if any.
func (c *Controller) Loaded() (models.Profile, bool) {
	if c.loaded == nil {
		return models.Profile{}, false
	}
	return *c.loaded, true
}

// Start begins the process at phase 0. No-op if already running or no
// profile is loaded; returns the resulting running state, matching
// VLOvenController::Start's bool return.
func (c *Controller) Start() bool {
	if c.running || c.loaded == nil {
		return c.running
	}
	now := c.clock.NowMs()
	c.processStartMs = now
	c.startPhase(0, now)
	c.running = true
	c.emitOven()
	return c.running
}

// Stop forces the loop off: PID to manual, actuator to zero duty.
func (c *Controller) Stop() {
	c.pidCtl.Stop()
	c.actuator.SetDuty(0)
	c.running = false
	c.emitOven()
}

// Running reports whether the process is currently active.
func (c *Controller) Running() bool {
	return c.running
}

// CurrentPhaseIndex returns the active phase index while running, or -1
// before any profile is loaded and after the last phase ends. While idle
// otherwise it reports 0 after SetPhases, or the phase that was running
// when Stop was called.
func (c *Controller) CurrentPhaseIndex() int {
	return c.phaseIdx
}

// PIDTunings returns the PID loop's current gains.
func (c *Controller) PIDTunings() models.PIDTunings {
	return c.pidCtl.Tunings()
}

// SetPIDTunings updates the PID gains. Rejected (returns false) while the
// process is running, per spec.md's pre-Start-only tunings invariant. On
// success, emits the tunings-change event (SPEC_FULL.md §12).
func (c *Controller) SetPIDTunings(t models.PIDTunings) bool {
	if !c.pidCtl.SetTunings(t) {
		return false
	}
	c.bus.Publish(models.EventPID, events.PIDTunings(t), t)
	return true
}

// ProcessDurationMs mirrors getProcessDuration: zero while not running.
func (c *Controller) ProcessDurationMs() uint64 {
	if !c.running {
		return 0
	}
	return c.clock.NowMs() - c.processStartMs
}

// PhaseDurationMs mirrors getPhaseDuration: zero while not running.
func (c *Controller) PhaseDurationMs() uint64 {
	if !c.running {
		return 0
	}
	return c.clock.NowMs() - c.phaseStartMs
}

// startPhase begins phaseIdx, or ends the process if it is out of range
// (PID to manual, actuator to zero duty), mirroring
// VLOvenController::startPhase.
func (c *Controller) startPhase(idx int, now uint64) {
	if c.loaded == nil || idx < 0 || idx >= len(c.loaded.Phases) {
		c.pidCtl.Stop()
		c.actuator.SetDuty(0)
		c.running = false
		c.phaseIdx = -1
		c.emitOven()
		return
	}

	c.phaseIdx = idx
	ph := c.loaded.Phases[idx]
	c.startTemp = c.sensor.Read()
	c.env.Start(c.startTemp, ph.EndTemp, ph.Slope, ph.Duration)
	c.currentSetpoint = c.startTemp

	if !c.pidCtl.Running() {
		c.pidCtl.Start(now)
	}

	c.phaseStartMs = now
	c.envelopeSample = now

	c.bus.Publish(models.EventPhase, events.Phase(ph, true), ph)
}

// Tick advances the state machine by one step. Call it as often as the
// host loop wants finer time resolution; it is a no-op between the 50ms
// envelope sampling and 250ms PID sampling periods, exactly as doCycle's
// internal gating allowed it to be called more often than either period.
func (c *Controller) Tick() {
	now := c.clock.NowMs()

	if !c.running {
		c.tickIdle(now)
		return
	}

	elapsedPhase := now - c.phaseStartMs
	input := c.sensor.Read()

	if now-c.envelopeSample >= envelope.SamplingPeriodMs {
		c.envelopeSample = now
		c.currentSetpoint, _ = c.env.Setpoint(elapsedPhase)

		if c.env.Holding() {
			c.maybeAdvancePhase(elapsedPhase, input, now)
		}
	}

	out, computed := c.pidCtl.Tick(now, input, c.currentSetpoint)
	if computed {
		c.actuator.SetDuty(out)
		line := events.PID(c.ProcessDurationMs(), input, c.env.Slope(), c.currentSetpoint, out)
		c.bus.Publish(models.EventPID, line, models.RunState{
			PIDInput:    input,
			PIDSetpoint: c.currentSetpoint,
			PIDOutput:   out,
		})
	}
}

// maybeAdvancePhase evaluates the phase terminator, only reachable while
// the envelope is holding (effective slope == 0), per spec.md §4.8's
// hold-mode-only resolution.
func (c *Controller) maybeAdvancePhase(elapsedPhase uint64, input float64, now uint64) {
	ph := c.loaded.Phases[c.phaseIdx]
	terminate := false
	switch {
	case ph.Duration > 0:
		terminate = elapsedPhase/1000 >= uint64(ph.Duration)
	case ph.Duration == 0:
		if c.startTemp <= ph.EndTemp {
			terminate = input >= ph.EndTemp
		} else {
			terminate = input <= ph.EndTemp
		}
	default:
		terminate = false // negative duration: only Stop()/SetPhases exits
	}
	if terminate {
		c.startPhase(c.phaseIdx+1, now)
	}
}

// tickIdle emits the idle heartbeat at most every IdleHeartbeatMs.
func (c *Controller) tickIdle(now uint64) {
	if c.haveIdleSample && now-c.idleSample < IdleHeartbeatMs {
		return
	}
	c.idleSample = now
	c.haveIdleSample = true
	current := c.sensor.Read()
	c.bus.Publish(models.EventTemp, events.Temp(now, c.processStartMs, current), current)
}

func (c *Controller) emitOven() {
	c.bus.Publish(models.EventOven, events.Oven(c.running), c.running)
}
