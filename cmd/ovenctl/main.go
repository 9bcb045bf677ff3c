// Command ovenctl is the reflow oven controller host process: it wires the
// control loop (clock/sensor/actuator/envelope/PID) to the durable profile
// catalog, the HTTP/WebSocket API, an optional serial console and an
// optional MQTT telemetry sink, then ticks the controller on a fixed
// interval until a termination signal arrives.
//
// Grounded on the teacher's cmd/main.go: same load-config / open-db / wire
// dependencies / start-server / wait-for-shutdown shape, generalized from
// the furnace simulator + repository wiring to the oven controller + event
// bus wiring.
package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"ovencontroller/internal/actuator"
	"ovencontroller/internal/clock"
	"ovencontroller/internal/config"
	"ovencontroller/internal/controller"
	"ovencontroller/internal/dispatcher"
	"ovencontroller/internal/events"
	"ovencontroller/internal/logger"
	"ovencontroller/internal/sensor"
	"ovencontroller/internal/serialtransport"
	"ovencontroller/internal/server"
	"ovencontroller/internal/store"
	"ovencontroller/internal/telemetry"
)

// tickInterval drives Controller.Tick() well under the 50ms envelope
// sampling period and the 250ms PID period so neither gate is ever missed
// by more than a tick's worth of jitter.
const tickInterval = 20 * time.Millisecond

func main() {
	cfg, err := config.Load()
	log := logger.Get(cfg.LogLevel)
	if err != nil {
		log.Fatalw("failed to load config", "err", err)
	}

	db, err := openDB(cfg.StorePath)
	if err != nil {
		log.Fatalw("failed to open store db", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close store db", "err", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := store.Open(ctx, db, cfg.StoreSize)
	if err != nil {
		log.Fatalw("failed to open catalog store", "err", err)
	}
	applyBootPolicy(ctx, cfg, cat, log)

	if err := server.EnsureUsersSchema(db); err != nil {
		log.Fatalw("failed to ensure users schema", "err", err)
	}

	bus := events.NewBus()

	realClock := clock.NewReal()
	sens := sensor.NewAveraging(newRawSource(), sensor.MinSamples)
	act, err := actuator.New(actuator.GPIOConfig{Chip: cfg.GPIOChip, Pin: cfg.GPIOPin})
	if err != nil {
		log.Fatalw("failed to open actuator", "err", err)
	}

	ctrl := controller.New(realClock, sens, act, bus)
	ctrl.SetPIDTunings(cfg.PIDTunings())

	disp := dispatcher.New(ctrl, cat, bus, nil)

	authRepo := server.NewUserRepo(db)
	authSvc := server.NewAuthService(authRepo, signingKeyOrDefault(cfg.JWTSigningKey, log))

	handler := server.NewHandler(ctrl, cat, bus, authSvc, log.Named("http"))

	srv := &server.Server{}
	srv.SetController(ctrl)
	go func() {
		if err := srv.Run(cfg.HTTPPort, handler.InitRoutes()); err != nil {
			log.Errorw("http server stopped", "err", err)
		}
	}()

	if cfg.SerialPort != "" {
		startSerial(ctx, cfg, disp, log)
	}

	var pub *telemetry.Publisher
	if cfg.MQTTBrokerURL != "" {
		pub, err = telemetry.Connect(telemetry.Config{
			BrokerURL: cfg.MQTTBrokerURL,
			ClientID:  cfg.MQTTClientID,
			Topic:     cfg.MQTTTopic,
		}, log.Named("mqtt"))
		if err != nil {
			log.Errorw("mqtt connect failed, continuing without telemetry", "err", err)
		} else {
			defer pub.Close()
			forwardTo(ctx, bus, pub)
		}
	}

	go runTickLoop(ctx, ctrl)

	waitForShutdown(cancel, srv, log)
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}
	return db, nil
}

// newRawSource builds the sensor.RawSource. The ADC driver itself is the
// hardware contract spec.md leaves out of scope (§1/§6); absent a real one
// this returns a source that always fails, so Sensor.Read degrades to its
// documented NaN-free fallback of repeating the last smoothed value (which
// starts at zero until a real RawSource is wired in for the target board).
func newRawSource() sensor.RawSource {
	return noRawSource{}
}

type noRawSource struct{}

func (noRawSource) ReadRaw() (float64, error) {
	return 0, fmt.Errorf("no ADC driver wired for this build")
}

func runTickLoop(ctx context.Context, ctrl *controller.Controller) {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			ctrl.Tick()
		}
	}
}

func startSerial(ctx context.Context, cfg config.Config, disp *dispatcher.Dispatcher, log *logger.Logger) {
	tr, err := serialtransport.Open(serialtransport.Config{
		Port:     cfg.SerialPort,
		BaudRate: cfg.SerialBaud,
	}, disp, log.Named("serial"))
	if err != nil {
		log.Errorw("failed to open serial port, continuing without console", "port", cfg.SerialPort, "err", err)
		return
	}
	go func() {
		defer tr.Close()
		if err := tr.Run(ctx); err != nil {
			log.Errorw("serial transport stopped", "err", err)
		}
	}()
}

func forwardTo(ctx context.Context, bus *events.Bus, sink events.Sink) {
	sub, unsubscribe := bus.Subscribe(64)
	go func() {
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				sink.Emit(ev)
			}
		}
	}()
}

func signingKeyOrDefault(key string, log *logger.Logger) string {
	if key != "" {
		return key
	}
	log.Warnw("jwt_signing_key not configured; generating an ephemeral key for this run")
	return uniqueEphemeralKey()
}

func uniqueEphemeralKey() string {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "ephemeral-dev-key-change-me"
	}
	return fmt.Sprintf("%x", buf)
}

func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down...")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
