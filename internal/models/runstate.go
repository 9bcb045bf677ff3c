package models

// RunState is the transient execution state of the controller (spec.md §3).
// It is owned exclusively by the controller for the lifetime of a run; it
// never persists.
type RunState struct {
	Running           bool
	ActiveProfile     *Profile
	CurrentPhaseIndex int
	StartTemp         float64
	EffectiveSlope    float64
	PIDSetpoint       float64
	PIDInput          float64
	PIDOutput         float64
	ProcessStartMs    uint64
	PhaseStartMs      uint64
}
