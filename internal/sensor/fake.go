package sensor

// Fake is a test double returning a directly-settable temperature, bypassing
// smoothing. Used by controller/envelope/pid tests that drive synthetic
// thermal scenarios (spec.md §8 seed tests).
type Fake struct {
	Temp float64
}

// NewFake returns a Fake reading start °C.
func NewFake(start float64) *Fake {
	return &Fake{Temp: start}
}

// Read returns the current fake temperature.
func (f *Fake) Read() float64 {
	return f.Temp
}

// Set pins the fake temperature.
func (f *Fake) Set(v float64) {
	f.Temp = v
}
