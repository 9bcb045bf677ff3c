//go:build !linux

package actuator

// GPIOConfig names the chip/line the SSR is wired to. Only meaningful on
// the linux build, which is the only target with a real SSR driver.
type GPIOConfig struct {
	Chip string
	Pin  int
}

// New always returns a Fake outside the linux build.
func New(cfg GPIOConfig) (Actuator, error) {
	return NewFake(), nil
}
