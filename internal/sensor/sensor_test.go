package sensor

import (
	"errors"
	"math"
	"testing"
)

type stubSource struct {
	vals []float64
	i    int
	err  error
}

func (s *stubSource) ReadRaw() (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.i >= len(s.vals) {
		return s.vals[len(s.vals)-1], nil
	}
	v := s.vals[s.i]
	s.i++
	return v, nil
}

func TestAveraging_SmoothsAndNeverReturnsNaN(t *testing.T) {
	src := &stubSource{vals: []float64{100, 100, 100, 100}}
	s := NewAveraging(src, 4)
	var last float64
	for i := 0; i < 4; i++ {
		last = s.Read()
	}
	if last != 100 {
		t.Fatalf("expected converged mean of 100, got %v", last)
	}
}

func TestAveraging_DropsNaNSample(t *testing.T) {
	src := &stubSource{vals: []float64{50}}
	s := NewAveraging(src, MinSamples)
	first := s.Read()
	src.vals = []float64{math.NaN()}
	second := s.Read()
	if second != first {
		t.Fatalf("NaN sample should be dropped, got %v want %v", second, first)
	}
}

func TestAveraging_DropsErroredSample(t *testing.T) {
	src := &stubSource{vals: []float64{50}}
	s := NewAveraging(src, MinSamples)
	first := s.Read()
	src.err = errors.New("adc fault")
	second := s.Read()
	if second != first {
		t.Fatalf("errored sample should be dropped, got %v want %v", second, first)
	}
}

func TestAveraging_EnforcesMinimumWindow(t *testing.T) {
	src := &stubSource{vals: []float64{1}}
	s := NewAveraging(src, 1)
	for i := 0; i < MinSamples-1; i++ {
		s.Read()
	}
	if s.window.Full() {
		t.Fatalf("window size should be clamped to at least %d", MinSamples)
	}
}
