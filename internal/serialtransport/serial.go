// Package serialtransport frames the dispatcher's line protocol over a
// real UART, grounded on itohio-golpm/pkg/lpm's go.bug.st/serial wiring
// (device.go's serial.Port / serial.Open usage) adapted from that
// project's binary LPM frame to this system's line-oriented text protocol.
package serialtransport

import (
	"bufio"
	"context"
	"fmt"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"ovencontroller/internal/dispatcher"
)

// Config describes which port to open and at what baud rate.
type Config struct {
	Port     string
	BaudRate int
}

// Transport owns an open serial port and feeds each received line to a
// Dispatcher, writing back its response lines.
type Transport struct {
	port   serial.Port
	disp   *dispatcher.Dispatcher
	log    *zap.SugaredLogger
	reader *bufio.Scanner
}

// Open opens the configured serial port in 8N1 mode.
func Open(cfg Config, disp *dispatcher.Dispatcher, log *zap.SugaredLogger) (*Transport, error) {
	mode := &serial.Mode{BaudRate: cfg.BaudRate}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", cfg.Port, err)
	}
	return &Transport{
		port:   port,
		disp:   disp,
		log:    log,
		reader: bufio.NewScanner(port),
	}, nil
}

// Ports lists the serial ports available on this host, for operator
// diagnostics and config validation.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Close releases the underlying port.
func (t *Transport) Close() error {
	return t.port.Close()
}

// Run reads lines until ctx is cancelled or the port errors, dispatching
// each to the Dispatcher and writing its response back.
func (t *Transport) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !t.reader.Scan() {
			if err := t.reader.Err(); err != nil {
				return fmt.Errorf("read serial line: %w", err)
			}
			return nil
		}
		line := t.reader.Text()
		out, err := t.disp.Handle(ctx, line)
		if err != nil {
			t.writeLine(fmt.Sprintf("CONSOLEERROR[reason=%s]", err.Error()))
			continue
		}
		for _, l := range out {
			t.writeLine(l)
		}
	}
}

func (t *Transport) writeLine(line string) {
	if _, err := t.port.Write([]byte(line + "\n")); err != nil && t.log != nil {
		t.log.Errorw("serial_write_failed", "err", err)
	}
}
