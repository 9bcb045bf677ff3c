// Package events implements the line-oriented event protocol (spec.md §4.9
// / §6), grounded on VLOvenController's Send*/beginEvent/endEvent methods in
// original_source, which write exactly these bracketed key=value lines to
// the serial console.
package events

import (
	"fmt"
	"strconv"

	"ovencontroller/internal/models"
)

// formatFloat mirrors the Arduino println(double) default precision (2
// decimal places) that the original firmware relies on implicitly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Oven formats the oven on/off event: oven[on=0|1].
func Oven(running bool) string {
	on := 0
	if running {
		on = 1
	}
	return fmt.Sprintf("oven[on=%d]", on)
}

// Phase formats the phase-start event: phase[nam="X",end=..,m=..,t=..].
// With active false (end of process, no current phase) it renders
// phase[nam=""] regardless of p.
func Phase(p models.Phase, active bool) string {
	if !active {
		return `phase[nam=""]`
	}
	return fmt.Sprintf("phase[nam=%q,end=%s,m=%s,t=%d]",
		p.Name, formatFloat(p.EndTemp), formatFloat(p.Slope), p.Duration)
}

// PID formats a PID compute-tick event:
// pid[pdt=..,tmp=..,slp=..,spt=..,out=..].
func PID(processDurationMs uint64, input, slope, setpoint, output float64) string {
	return fmt.Sprintf("pid[pdt=%d,tmp=%s,slp=%s,spt=%s,out=%s]",
		processDurationMs, formatFloat(input), formatFloat(slope), formatFloat(setpoint), formatFloat(output))
}

// Profile formats a profile-selection event: profile[idx=..].
func Profile(index int) string {
	return fmt.Sprintf("profile[idx=%d]", index)
}

// Temp formats the idle heartbeat added in the Go-native expansion
// (SPEC_FULL.md §12): temp[st=..,lpt=..,tmp=..], emitted on
// TEMPLOGSAMPLING_TIME while the oven is not running, mirroring
// SendTemperatureSensorState (present but commented out in the original
// firmware's doCycle idle branch).
func Temp(nowMs, lastProcessStartMs uint64, current float64) string {
	return fmt.Sprintf("temp[st=%d,lpt=%d,tmp=%s]", nowMs, lastProcessStartMs, formatFloat(current))
}

// PIDTunings formats the tunings-change event added in the Go-native
// expansion: pid[kp=..,ki=..,kd=..], emitted whenever SetTunings succeeds.
func PIDTunings(t models.PIDTunings) string {
	return fmt.Sprintf("pid[kp=%s,ki=%s,kd=%s]", formatFloat(t.Kp), formatFloat(t.Ki), formatFloat(t.Kd))
}
