package pid

import (
	"testing"

	"ovencontroller/internal/models"
)

func TestTick_SkipsUntilPeriodElapses(t *testing.T) {
	c := New(models.DefaultPIDTunings())
	c.Start(0)
	_, computed := c.Tick(100, 20, 50)
	if computed {
		t.Fatalf("expected no compute before %dms elapsed", Period)
	}
	_, computed = c.Tick(250, 20, 50)
	if !computed {
		t.Fatalf("expected compute once period elapses")
	}
}

func TestTick_OutputClampedToBounds(t *testing.T) {
	c := New(models.PIDTunings{Kp: 1000, Ki: 0, Kd: 0})
	c.Start(0)
	out, _ := c.Tick(Period, 0, 1000) // huge error, should saturate high
	if out != OutputMax {
		t.Fatalf("got %v, want clamp to %v", out, OutputMax)
	}

	c2 := New(models.PIDTunings{Kp: 1000, Ki: 0, Kd: 0})
	c2.Start(0)
	out2, _ := c2.Tick(Period, 1000, 0) // input far above setpoint, should saturate low
	if out2 != OutputMin {
		t.Fatalf("got %v, want clamp to %v", out2, OutputMin)
	}
}

func TestTick_ReturnsZeroWhenNotRunning(t *testing.T) {
	c := New(models.DefaultPIDTunings())
	out, computed := c.Tick(0, 20, 50)
	if computed || out != 0 {
		t.Fatalf("expected no-op while stopped, got out=%v computed=%v", out, computed)
	}
}

func TestStop_ForcesOutputToZero(t *testing.T) {
	c := New(models.PIDTunings{Kp: 1000, Ki: 0, Kd: 0})
	c.Start(0)
	c.Tick(Period, 0, 1000)
	if c.Output() == 0 {
		t.Fatalf("expected nonzero output before Stop")
	}
	c.Stop()
	if c.Output() != 0 {
		t.Fatalf("expected Output() == 0 after Stop, got %v", c.Output())
	}
	if c.Running() {
		t.Fatalf("expected Running() == false after Stop")
	}
}

func TestSetTunings_RejectedWhileRunning(t *testing.T) {
	c := New(models.DefaultPIDTunings())
	c.Start(0)
	ok := c.SetTunings(models.PIDTunings{Kp: 1, Ki: 1, Kd: 1})
	if ok {
		t.Fatalf("expected SetTunings to be rejected while running")
	}
	if c.Tunings() != models.DefaultPIDTunings() {
		t.Fatalf("tunings should be unchanged while running")
	}
}

func TestSetTunings_AppliedWhileStopped(t *testing.T) {
	c := New(models.DefaultPIDTunings())
	want := models.PIDTunings{Kp: 1, Ki: 2, Kd: 3}
	if ok := c.SetTunings(want); !ok {
		t.Fatalf("expected SetTunings to succeed while stopped")
	}
	if c.Tunings() != want {
		t.Fatalf("got %+v, want %+v", c.Tunings(), want)
	}
}

func TestIntegral_AntiWindupClampsAccumulation(t *testing.T) {
	c := New(models.PIDTunings{Kp: 0, Ki: 1000, Kd: 0})
	c.Start(0)
	now := uint64(0)
	for i := 0; i < 5; i++ {
		now += Period
		c.Tick(now, 0, 1000) // sustained large error
	}
	if c.integral > OutputMax {
		t.Fatalf("integral should be clamped to OutputMax, got %v", c.integral)
	}
}
