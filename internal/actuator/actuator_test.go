package actuator

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Fatalf("Clamp(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFake_RecordsClampedCalls(t *testing.T) {
	f := NewFake()
	f.SetDuty(-10)
	f.SetDuty(42)
	f.SetDuty(200)

	want := []float64{0, 42, 100}
	if len(f.Calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(f.Calls), len(want))
	}
	for i, v := range want {
		if f.Calls[i] != v {
			t.Fatalf("call %d = %v, want %v", i, f.Calls[i], v)
		}
	}
	if f.Last() != 100 {
		t.Fatalf("Last() = %v, want 100", f.Last())
	}
}

func TestFake_LastWithNoCalls(t *testing.T) {
	f := NewFake()
	if f.Last() != 0 {
		t.Fatalf("Last() with no calls = %v, want 0", f.Last())
	}
}
