// Package envelope generates the setpoint trajectory a phase follows,
// grounded on VLOvenController::startPhase/doCycle in original_source
// (the Arduino firmware this system was distilled from): ramp the setpoint
// from the phase's start temperature towards its end temperature at a
// fixed slope, clamp to the end temperature and stop ramping (enter hold)
// once it's reached.
package envelope

import "github.com/chewxy/math32"

// SamplingPeriodMs is how often the envelope advances the setpoint
// (PROFILE_SAMPLING_TIME in the original firmware).
const SamplingPeriodMs = 50

// MaxSlope is the degrees/second clamp applied when a phase specifies
// neither an explicit slope nor a duration (MAXIMUM_TEMPERATURE_SLOPE).
const MaxSlope = 100.0

// Generator tracks one phase's setpoint ramp.
type Generator struct {
	startTemp float32
	endTemp   float32
	slope     float32 // degrees/second; zero means holding at endTemp
}

// Start begins a new ramp towards endTemp from startTemp, deriving the
// effective slope per the three-way rule in startPhase:
//  1. phaseSlope > 0: use it, negated if endTemp is below startTemp.
//  2. else durationSeconds > 0: derive slope from (end-start)/duration.
//  3. else: ±MaxSlope in the direction of travel.
//
// When startTemp equals endTemp the generator holds immediately.
func (g *Generator) Start(startTemp, endTemp float64, phaseSlope float64, durationSeconds int32) {
	g.startTemp = float32(startTemp)
	g.endTemp = float32(endTemp)

	switch {
	case g.startTemp == g.endTemp:
		g.slope = 0
	case phaseSlope > 0:
		g.slope = clampSlope(float32(phaseSlope))
		if g.endTemp < g.startTemp {
			g.slope = -g.slope
		}
	case durationSeconds > 0:
		g.slope = clampSlope((g.endTemp - g.startTemp) / float32(durationSeconds))
	default:
		if g.endTemp > g.startTemp {
			g.slope = MaxSlope
		} else {
			g.slope = -MaxSlope
		}
	}
}

// Setpoint returns the setpoint at elapsedMs into the current phase,
// clamping to endTemp and zeroing the slope (entering hold) once reached.
// Returns the setpoint and whether the ramp just completed this call.
func (g *Generator) Setpoint(elapsedMs uint64) (setpoint float64, justArrived bool) {
	if g.slope == 0 {
		return float64(g.endTemp), false
	}

	sp := g.startTemp + g.slope*(float32(elapsedMs)/1000.0)

	switch {
	case g.startTemp < g.endTemp:
		if sp >= g.endTemp {
			g.slope = 0
			return float64(g.endTemp), true
		}
	case g.startTemp > g.endTemp:
		if sp <= g.endTemp {
			g.slope = 0
			return float64(g.endTemp), true
		}
	}
	return float64(sp), false
}

// Holding reports whether the ramp has reached its end temperature
// (slope zeroed, i.e. doCycle's m_Slope == 0.0).
func (g *Generator) Holding() bool {
	return g.slope == 0
}

// Slope returns the current ramp slope in degrees/second (0 while holding).
func (g *Generator) Slope() float64 {
	return float64(g.slope)
}

// clampSlope bounds an explicit or duration-derived slope to ±MaxSlope.
func clampSlope(s float32) float32 {
	return math32.Max(-MaxSlope, math32.Min(MaxSlope, s))
}
