// Package profile validates profiles and phases on load or host submission
// (component C5, spec.md §4.5).
package profile

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"ovencontroller/internal/models"
)

// Validation errors. Each corresponds to a rejection rule in spec.md §4.5.
var (
	ErrEmptyProfileName  = errors.New("profile name must not be empty")
	ErrProfileNameTooLong = errors.New("profile name exceeds maximum length")
	ErrNoPhases          = errors.New("profile must have at least one phase")
	ErrTooManyPhases     = errors.New("profile exceeds maximum phase count")
	ErrEmptyPhaseName    = errors.New("phase name must not be empty")
	ErrPhaseNameTooLong  = errors.New("phase name exceeds maximum length")
	ErrSlopeOutOfRange   = errors.New("phase slope exceeds maximum allowed magnitude")
)

// Validate rejects a Profile per spec.md §4.5:
//   - empty name,
//   - phases_count < 1,
//   - any phase with |slope| > MaxSlope,
//   - any phase name that is empty or would not fit (with terminator) in its
//     on-disk field.
func Validate(p models.Profile) error {
	if p.Name == "" {
		return ErrEmptyProfileName
	}
	if utf8.RuneCountInString(p.Name) > models.MaxProfileNameLen {
		return ErrProfileNameTooLong
	}
	if len(p.Phases) < 1 {
		return ErrNoPhases
	}
	if len(p.Phases) > models.MaxPhases {
		return ErrTooManyPhases
	}
	for i, ph := range p.Phases {
		if err := ValidatePhase(ph); err != nil {
			return fmt.Errorf("phase %d: %w", i, err)
		}
	}
	return nil
}

// ValidatePhase checks a single phase's invariants (spec.md §3, §4.5).
func ValidatePhase(ph models.Phase) error {
	if ph.Name == "" {
		return ErrEmptyPhaseName
	}
	if utf8.RuneCountInString(ph.Name) > models.MaxPhaseNameLen {
		return ErrPhaseNameTooLong
	}
	if absf(ph.Slope) > models.MaxSlope {
		return ErrSlopeOutOfRange
	}
	return nil
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
