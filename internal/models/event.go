package models

import "time"

// Event is a single emitted state-transition or telemetry record (C9),
// kept for host tooling consumption (HTTP/WS/MQTT) in addition to the
// bracketed line form defined in spec.md §4.9.
//
// Grounded on the teacher's internal/models.FurnaceEvent.
type Event struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"` // OVEN | PHASE | PID | PROFILE | TEMP
	Line       string    `json:"line"` // the bracketed wire form, e.g. oven[on=1]
	Metadata   any       `json:"metadata,omitempty"`
}

// Event type tags.
const (
	EventOven    = "OVEN"
	EventPhase   = "PHASE"
	EventPID     = "PID"
	EventProfile = "PROFILE"
	EventTemp    = "TEMP"
)
