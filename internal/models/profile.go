// Package models holds the value types shared across the oven controller:
// the profile/phase data model (C5) and the transient run state the
// controller (C8) mutates while executing a profile.
//
// Grounded on the teacher's internal/models package (FurnaceState,
// FurnaceEvent): small, JSON-tagged value structs with no behavior beyond
// validation helpers living in sibling packages.
package models

// MaxPhaseNameLen is the maximum printable-code-point length for a phase
// name (spec.md §3), excluding the implicit terminator.
const MaxPhaseNameLen = 10

// MaxProfileNameLen is the maximum printable-code-point length for a
// profile name (spec.md §3).
const MaxProfileNameLen = 19

// MaxSlope is the absolute maximum allowed temperature slope, °C/s
// (spec.md §3, §4.5).
const MaxSlope = 100.0

// MaxPhases bounds the inline phase buffer capacity per spec.md §9's
// "fixed-capacity inline buffer" recommendation.
const MaxPhases = 16

// Phase is a single segment of a thermal profile.
type Phase struct {
	Name     string  `json:"name" yaml:"name"`
	EndTemp  float64 `json:"end_temp" yaml:"end_temp"`
	Slope    float64 `json:"slope" yaml:"slope"`
	Duration int32   `json:"duration" yaml:"duration"`
}

// Profile is an ordered sequence of phases plus identifying metadata.
type Profile struct {
	Name   string  `json:"name" yaml:"name"`
	Phases []Phase `json:"phases" yaml:"phases"`
}

// PIDTunings holds the three PID gains (§4.7).
type PIDTunings struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

// DefaultPIDTunings are the factory gains from spec.md §4.7.
func DefaultPIDTunings() PIDTunings {
	return PIDTunings{Kp: 300, Ki: 0.05, Kd: 250}
}
