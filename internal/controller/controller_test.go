package controller

import (
	"testing"

	"ovencontroller/internal/actuator"
	"ovencontroller/internal/clock"
	"ovencontroller/internal/events"
	"ovencontroller/internal/models"
	"ovencontroller/internal/sensor"
)

func newHarness(start float64) (*Controller, *clock.Fake, *sensor.Fake, *actuator.Fake) {
	clk := clock.NewFake(0)
	sens := sensor.NewFake(start)
	act := actuator.NewFake()
	bus := events.NewBus()
	return New(clk, sens, act, bus), clk, sens, act
}

func singlePhaseProfile(end, slope float64, dur int32) models.Profile {
	return models.Profile{
		Name:   "Test",
		Phases: []models.Phase{{Name: "P1", EndTemp: end, Slope: slope, Duration: dur}},
	}
}

func TestActiveIndex_DefaultsToNegativeOne(t *testing.T) {
	c, _, _, _ := newHarness(25)
	if c.ActiveIndex() != -1 {
		t.Fatalf("expected -1 before any profile is loaded, got %d", c.ActiveIndex())
	}
}

func TestActiveIndex_SetByCallerThenResetOnSetPhases(t *testing.T) {
	c, _, _, _ := newHarness(25)
	_ = c.SetPhases(singlePhaseProfile(100, 5, 0))
	c.SetActiveIndex(3)
	if c.ActiveIndex() != 3 {
		t.Fatalf("expected active index 3, got %d", c.ActiveIndex())
	}
	_ = c.SetPhases(singlePhaseProfile(100, 5, 0))
	if c.ActiveIndex() != -1 {
		t.Fatalf("expected SetPhases to reset active index to -1, got %d", c.ActiveIndex())
	}
}

func TestStart_NoProfileLoaded_StaysIdle(t *testing.T) {
	c, _, _, _ := newHarness(25)
	if c.Start() {
		t.Fatalf("expected Start() to stay false without a loaded profile")
	}
}

func TestStart_BeginsFirstPhase(t *testing.T) {
	c, _, _, _ := newHarness(25)
	_ = c.SetPhases(singlePhaseProfile(100, 5, 0))
	if !c.Start() {
		t.Fatalf("expected Start() to return true")
	}
	if c.CurrentPhaseIndex() != 0 {
		t.Fatalf("expected phase 0, got %d", c.CurrentPhaseIndex())
	}
}

func TestTick_RampsSetpointAndCommandsActuator(t *testing.T) {
	c, clk, sens, act := newHarness(25)
	_ = c.SetPhases(singlePhaseProfile(100, 5, 0)) // 5 deg/s ramp
	c.Start()

	sens.Set(25)
	clk.Advance(250)
	c.Tick()

	if act.Last() == 0 {
		t.Fatalf("expected actuator to receive a nonzero duty while well below setpoint")
	}
}

func TestTick_DurationTerminatedPhaseAdvances(t *testing.T) {
	c, clk, sens, _ := newHarness(25)
	p := models.Profile{
		Name: "Test",
		Phases: []models.Phase{
			{Name: "Hold", EndTemp: 25, Slope: 0, Duration: 1}, // holds immediately (start==end), 1s duration
			{Name: "Next", EndTemp: 200, Slope: 1, Duration: 0},
		},
	}
	_ = c.SetPhases(p)
	c.Start()
	sens.Set(25)

	clk.Advance(1100) // past the 1s duration
	c.Tick()

	if c.CurrentPhaseIndex() != 1 {
		t.Fatalf("expected advance to phase 1, got %d", c.CurrentPhaseIndex())
	}
}

func TestTick_TemperatureTerminatedPhaseAdvancesOnArrival(t *testing.T) {
	c, clk, sens, _ := newHarness(25)
	p := models.Profile{
		Name: "Test",
		Phases: []models.Phase{
			{Name: "Ramp", EndTemp: 30, Slope: 5, Duration: 0}, // envelope reaches 30 after 1s
			{Name: "Next", EndTemp: 200, Slope: 1, Duration: 0},
		},
	}
	_ = c.SetPhases(p)
	c.Start()

	clk.Advance(1050) // envelope clamps to end temp, enters hold
	sens.Set(30)       // measured input has caught up to the end temp
	c.Tick()

	if c.CurrentPhaseIndex() != 1 {
		t.Fatalf("expected advance once holding and input reaches end temp, got phase %d", c.CurrentPhaseIndex())
	}
}

func TestStart_PastLastPhase_EndsProcess(t *testing.T) {
	c, clk, sens, _ := newHarness(25)
	p := models.Profile{
		Name:   "Test",
		Phases: []models.Phase{{Name: "Only", EndTemp: 25, Slope: 0, Duration: 1}},
	}
	_ = c.SetPhases(p)
	c.Start()
	sens.Set(25)

	clk.Advance(1100)
	c.Tick()

	if c.Running() {
		t.Fatalf("expected process to end after the only phase's duration elapses")
	}
	if c.CurrentPhaseIndex() != -1 {
		t.Fatalf("expected phase index -1 at end of process, got %d", c.CurrentPhaseIndex())
	}
}

func TestStop_ZeroesActuatorAndStopsPID(t *testing.T) {
	c, _, _, act := newHarness(25)
	_ = c.SetPhases(singlePhaseProfile(100, 5, 0))
	c.Start()
	c.Stop()
	if act.Last() != 0 {
		t.Fatalf("expected actuator duty zeroed on Stop, got %v", act.Last())
	}
	if c.Running() {
		t.Fatalf("expected Running() false after Stop")
	}
}

func TestSetPIDTunings_RejectedWhileRunning(t *testing.T) {
	c, _, _, _ := newHarness(25)
	_ = c.SetPhases(singlePhaseProfile(100, 5, 0))
	c.Start()
	if c.SetPIDTunings(models.PIDTunings{Kp: 1, Ki: 1, Kd: 1}) {
		t.Fatalf("expected SetPIDTunings to be rejected while running")
	}
}

func TestSetPIDTunings_AppliedWhileStopped(t *testing.T) {
	c, _, _, _ := newHarness(25)
	want := models.PIDTunings{Kp: 1, Ki: 2, Kd: 3}
	if !c.SetPIDTunings(want) {
		t.Fatalf("expected SetPIDTunings to succeed while stopped")
	}
	if c.PIDTunings() != want {
		t.Fatalf("got %+v, want %+v", c.PIDTunings(), want)
	}
}

func TestSetPhases_RejectsInvalidProfile(t *testing.T) {
	c, _, _, _ := newHarness(25)
	err := c.SetPhases(models.Profile{Name: "", Phases: nil})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}
