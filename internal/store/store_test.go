package store

import (
	"context"
	"errors"
	"testing"

	"ovencontroller/internal/models"
)

func phaseFixture(name string, end, slope float64, dur int32) models.Phase {
	return models.Phase{Name: name, EndTemp: end, Slope: slope, Duration: dur}
}

func reflowFixture() models.Profile {
	return models.Profile{
		Name: "PbFree - Reflow",
		Phases: []models.Phase{
			phaseFixture("Preheat-1", 50, 0, 0),
			phaseFixture("Soak-1", 200, 0, 100),
			phaseFixture("Reflow-1", 245, 0, 20),
		},
	}
}

func TestNew_FormatsWithValidSignature(t *testing.T) {
	e := New(4096)
	if !e.ValidateSignature() {
		t.Fatalf("expected fresh store to carry a valid signature")
	}
	n, err := e.Count()
	if err != nil || n != 0 {
		t.Fatalf("expected empty catalog, got n=%d err=%v", n, err)
	}
}

func TestValidateSignature_RejectsUnformattedBuffer(t *testing.T) {
	e := Wrap(make([]byte, 64))
	if e.ValidateSignature() {
		t.Fatalf("expected zeroed buffer to fail signature validation")
	}
}

func TestAppend_ThenLoadProfile_RoundTrips(t *testing.T) {
	e := New(4096)
	want := reflowFixture()
	if err := e.Append(want); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := e.LoadProfile(0)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if got.Name != want.Name || len(got.Phases) != len(want.Phases) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want.Phases {
		if got.Phases[i] != want.Phases[i] {
			t.Fatalf("phase %d: got %+v, want %+v", i, got.Phases[i], want.Phases[i])
		}
	}
}

func TestAppend_MultipleProfiles_PreservesOrderAndCount(t *testing.T) {
	e := New(8192)
	a := models.Profile{Name: "A", Phases: []models.Phase{phaseFixture("P1", 100, 1, 0)}}
	b := models.Profile{Name: "B", Phases: []models.Phase{phaseFixture("P1", 50, -1, 0), phaseFixture("P2", 0, -1, 0)}}
	if err := e.Append(a); err != nil {
		t.Fatalf("append a: %v", err)
	}
	if err := e.Append(b); err != nil {
		t.Fatalf("append b: %v", err)
	}
	n, err := e.Count()
	if err != nil || n != 2 {
		t.Fatalf("expected 2 profiles, got n=%d err=%v", n, err)
	}
	gotA, _ := e.LoadProfile(0)
	gotB, _ := e.LoadProfile(1)
	if gotA.Name != "A" || gotB.Name != "B" {
		t.Fatalf("order not preserved: %q, %q", gotA.Name, gotB.Name)
	}
}

func TestAppend_ReturnsErrCatalogFullWhenOutOfRoom(t *testing.T) {
	e := New(SigLen + HeaderLen) // exactly enough for a zero-phase profile's header, nothing more
	small := models.Profile{Name: "X"}
	if err := e.Append(small); err != nil {
		t.Fatalf("first append should fit: %v", err)
	}
	if err := e.Append(small); !errors.Is(err, ErrCatalogFull) {
		t.Fatalf("got %v, want ErrCatalogFull", err)
	}
}

func TestLoadHeader_OutOfRangeIndex(t *testing.T) {
	e := New(4096)
	_, err := e.LoadHeader(0)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestFindFreeOffset_AdvancesPastEachAppend(t *testing.T) {
	e := New(4096)
	first, _ := e.FindFreeOffset()
	if first != SigLen {
		t.Fatalf("expected free offset %d on empty catalog, got %d", SigLen, first)
	}
	_ = e.Append(models.Profile{Name: "X", Phases: []models.Phase{phaseFixture("P", 1, 1, 1)}})
	second, _ := e.FindFreeOffset()
	if second <= first {
		t.Fatalf("expected free offset to advance, got %d after %d", second, first)
	}
}

func TestFormat_ClearsExistingProfiles(t *testing.T) {
	e := New(4096)
	_ = e.Append(reflowFixture())
	e.Format()
	n, _ := e.Count()
	if n != 0 {
		t.Fatalf("expected 0 profiles after Format, got %d", n)
	}
	if !e.ValidateSignature() {
		t.Fatalf("expected signature to survive Format")
	}
}

func TestDump_ClampsToBufferBound(t *testing.T) {
	e := New(16)
	out, err := e.Dump(10, 100)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(out) != 6 {
		t.Fatalf("expected clamp to 6 bytes, got %d", len(out))
	}
}

func TestMemoryCatalog_SatisfiesCatalogInterface(t *testing.T) {
	var c Catalog = NewMemoryCatalog(4096)
	if !c.ValidateSignature() {
		t.Fatalf("expected valid signature")
	}
	if err := c.Append(context.Background(), reflowFixture()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	n, err := c.Count()
	if err != nil || n != 1 {
		t.Fatalf("expected 1 profile, got n=%d err=%v", n, err)
	}
}
