package config

import "testing"

func TestDefaults_MatchesPublishedPIDTunings(t *testing.T) {
	cfg := Defaults()
	want := cfg.PIDTunings()
	if want.Kp != 300 || want.Ki != 0.05 || want.Kd != 250 {
		t.Fatalf("got %+v, want Kp=300 Ki=0.05 Kd=250", want)
	}
}

func TestDefaults_NonEmptyHostSurfaceDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.HTTPPort == "" || cfg.StorePath == "" || cfg.StoreSize <= 0 {
		t.Fatalf("expected nonzero host defaults, got %+v", cfg)
	}
}
