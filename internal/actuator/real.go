//go:build linux

package actuator

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// SSR drives a solid-state relay through a Linux GPIO character device line,
// time-proportioning the requested duty cycle over Period.
//
// Grounded on sweeney-boiler-sensor/internal/gpio's real.go: request a line
// from a gpiocdev.Chip and drive it, swapped here from an input reader to an
// output driver running its own duty-cycle ticker goroutine.
type SSR struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line

	mu   sync.Mutex
	duty float64

	stop chan struct{}
	done chan struct{}
}

// NewSSR opens chipName (e.g. "gpiochip0") and requests pin as an output,
// starting the time-proportioning loop immediately at 0% duty.
func NewSSR(chipName string, pin int) (*SSR, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %q: %w", chipName, err)
	}
	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request ssr pin %d: %w", pin, err)
	}

	s := &SSR{
		chip: chip,
		line: line,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// SetDuty clamps d to [0,100] and updates the fraction of Period the line is
// driven high.
func (s *SSR) SetDuty(d float64) {
	s.mu.Lock()
	s.duty = Clamp(d)
	s.mu.Unlock()
}

func (s *SSR) run() {
	defer close(s.done)
	period := Period * time.Millisecond
	for {
		s.mu.Lock()
		d := s.duty
		s.mu.Unlock()

		onTime := time.Duration(d/100.0*float64(Period)) * time.Millisecond
		offTime := period - onTime

		if onTime > 0 {
			_ = s.line.SetValue(1)
			select {
			case <-time.After(onTime):
			case <-s.stop:
				_ = s.line.SetValue(0)
				return
			}
		}
		if offTime > 0 {
			_ = s.line.SetValue(0)
			select {
			case <-time.After(offTime):
			case <-s.stop:
				return
			}
		}
	}
}

// Close stops the duty-cycle loop and releases the GPIO line.
func (s *SSR) Close() error {
	close(s.stop)
	<-s.done
	var err error
	if e := s.line.Close(); e != nil {
		err = e
	}
	if e := s.chip.Close(); e != nil && err == nil {
		err = e
	}
	return err
}
