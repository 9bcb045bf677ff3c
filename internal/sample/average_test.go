package sample

import "testing"

func TestWindow_MeanOverFullWindow(t *testing.T) {
	w := NewWindow(4)
	for _, v := range []float64{10, 20, 30, 40} {
		w.Push(v)
	}
	if !w.Full() {
		t.Fatalf("expected window to be full")
	}
	if got, want := w.Mean(), 25.0; got != want {
		t.Fatalf("mean = %v, want %v", got, want)
	}
}

func TestWindow_SlidesOutOldestSample(t *testing.T) {
	w := NewWindow(3)
	for _, v := range []float64{10, 10, 10, 100} {
		w.Push(v)
	}
	if got, want := w.Mean(), 40.0; got != want {
		t.Fatalf("mean = %v, want %v", got, want)
	}
}

func TestWindow_PartialFillBeforeFull(t *testing.T) {
	w := NewWindow(100)
	w.Push(5)
	w.Push(15)
	if w.Full() {
		t.Fatalf("expected window not full yet")
	}
	if got, want := w.Mean(), 10.0; got != want {
		t.Fatalf("mean = %v, want %v", got, want)
	}
}

func TestNewWindow_NonPositiveSizeDefaultsToOne(t *testing.T) {
	w := NewWindow(0)
	w.Push(1)
	w.Push(2)
	if got, want := w.Mean(), 2.0; got != want {
		t.Fatalf("mean = %v, want %v", got, want)
	}
}
