//go:build linux

package actuator

// GPIOConfig names the chip/line the SSR is wired to.
type GPIOConfig struct {
	Chip string
	Pin  int
}

// New opens the real GPIO-backed SSR when cfg names a chip, otherwise falls
// back to a Fake (e.g. running the linux build on a dev machine with no
// GPIO chip attached).
func New(cfg GPIOConfig) (Actuator, error) {
	if cfg.Chip == "" {
		return NewFake(), nil
	}
	return NewSSR(cfg.Chip, cfg.Pin)
}
