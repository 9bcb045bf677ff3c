// Package clock provides the monotonic millisecond time source used by the
// control loop (component C1). Real and fake implementations share the Clock
// interface so the controller can be driven by synthetic time in tests.
package clock

import "time"

// Clock returns a monotonic, non-decreasing millisecond timestamp.
type Clock interface {
	NowMs() uint64
}

// Real is backed by the Go runtime's monotonic clock.
type Real struct {
	start time.Time
}

// NewReal returns a Clock anchored at the current time.
func NewReal() *Real {
	return &Real{start: time.Now()}
}

// NowMs returns milliseconds elapsed since the clock was created.
func (r *Real) NowMs() uint64 {
	return uint64(time.Since(r.start).Milliseconds())
}
