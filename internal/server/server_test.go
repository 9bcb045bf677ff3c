package server

import (
	"context"
	"testing"

	"ovencontroller/internal/actuator"
	"ovencontroller/internal/clock"
	"ovencontroller/internal/controller"
	"ovencontroller/internal/events"
	"ovencontroller/internal/models"
	"ovencontroller/internal/sensor"
)

func TestServer_Shutdown_WithoutController_NoOp(t *testing.T) {
	s := &Server{}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil error shutting down with no httpServer or controller, got %v", err)
	}
}

func TestServer_Shutdown_StopsControllerBeforeListenerCloses(t *testing.T) {
	clk := clock.NewFake(0)
	sens := sensor.NewFake(25)
	act := actuator.NewFake()
	bus := events.NewBus()
	ctrl := controller.New(clk, sens, act, bus)

	if err := ctrl.SetPhases(models.Profile{
		Name:   "Test",
		Phases: []models.Phase{{Name: "P1", EndTemp: 100, Slope: 5, Duration: 0}},
	}); err != nil {
		t.Fatalf("SetPhases: %v", err)
	}
	ctrl.Start()
	act.SetDuty(50)

	s := &Server{}
	s.SetController(ctrl)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if ctrl.Running() {
		t.Fatalf("expected Shutdown to stop the controller")
	}
	if act.Last() != 0 {
		t.Fatalf("expected Shutdown to zero the actuator duty, got %v", act.Last())
	}
}
