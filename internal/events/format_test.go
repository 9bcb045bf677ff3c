package events

import (
	"testing"

	"ovencontroller/internal/models"
)

func TestOven_FormatsOnAndOff(t *testing.T) {
	if got := Oven(true); got != "oven[on=1]" {
		t.Fatalf("got %q", got)
	}
	if got := Oven(false); got != "oven[on=0]" {
		t.Fatalf("got %q", got)
	}
}

func TestPhase_FormatsActivePhase(t *testing.T) {
	p := models.Phase{Name: "Soak-1", EndTemp: 200, Slope: 0, Duration: 100}
	got := Phase(p, true)
	want := `phase[nam="Soak-1",end=200.00,m=0.00,t=100]`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPhase_FormatsEndOfProcess(t *testing.T) {
	got := Phase(models.Phase{}, false)
	if got != `phase[nam=""]` {
		t.Fatalf("got %q", got)
	}
}

func TestPID_FormatsAllFields(t *testing.T) {
	got := PID(12345, 150.5, 2.0, 151.0, 75.25)
	want := "pid[pdt=12345,tmp=150.50,slp=2.00,spt=151.00,out=75.25]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestProfile_FormatsIndex(t *testing.T) {
	if got := Profile(1); got != "profile[idx=1]" {
		t.Fatalf("got %q", got)
	}
}

func TestTemp_FormatsHeartbeat(t *testing.T) {
	got := Temp(1000, 0, 24.5)
	want := "temp[st=1000,lpt=0,tmp=24.50]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPIDTunings_FormatsGains(t *testing.T) {
	got := PIDTunings(models.PIDTunings{Kp: 300, Ki: 0.05, Kd: 250})
	want := "pid[kp=300.00,ki=0.05,kd=250.00]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
