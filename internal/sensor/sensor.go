// Package sensor implements the temperature sensor component (C2): a
// smoothed, NaN-free, read-only °C observation.
package sensor

import (
	"math"

	"ovencontroller/internal/sample"
)

// MinSamples is the minimum moving-average window required by spec.md §4.2.
const MinSamples = 100

// Sensor returns a smoothed temperature reading in °C.
type Sensor interface {
	Read() float64
}

// RawSource supplies unsmoothed readings, e.g. from an ADC driver. It is the
// out-of-scope hardware collaborator named in spec.md §1/§6 (ADC).
type RawSource interface {
	ReadRaw() (float64, error)
}

// Averaging smooths a RawSource with a sample.Window of at least MinSamples.
type Averaging struct {
	src    RawSource
	window *sample.Window
	last   float64
}

// NewAveraging builds a smoothing sensor over src. windowSize is clamped up
// to MinSamples if given smaller.
func NewAveraging(src RawSource, windowSize int) *Averaging {
	if windowSize < MinSamples {
		windowSize = MinSamples
	}
	return &Averaging{src: src, window: sample.NewWindow(windowSize)}
}

// Read pulls a fresh raw sample, folds it into the moving average, and
// returns the smoothed result. A raw-read failure or NaN sample is dropped
// silently and the previous smoothed value is returned, satisfying the
// "never contain NaN" contract in spec.md §4.2.
func (a *Averaging) Read() float64 {
	v, err := a.src.ReadRaw()
	if err != nil || math.IsNaN(v) {
		return a.last
	}
	a.last = a.window.Push(v)
	return a.last
}
