// Package dispatcher implements the transport-agnostic line command
// protocol (spec.md §6), grounded on the response shape of the original
// firmware's console commands together with the teacher's response.go
// envelope convention, adapted from JSON HTTP responses to single-line
// serial replies.
package dispatcher

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ovencontroller/internal/controller"
	"ovencontroller/internal/events"
	"ovencontroller/internal/models"
	"ovencontroller/internal/profile"
	"ovencontroller/internal/store"
)

// Error reason codes (spec.md §6).
const (
	ArgsCount     = "ARGSCOUNT"
	ArgOutOfRange = "ARGOUTOFRANGE"
	ArgInvalidOpt = "ARGINVALIDOPT"
	NoMemory      = "NOMEMORY"
)

// ConsoleError is a dispatcher-level failure, rendered as
// CONSOLEERROR[reason=..].
type ConsoleError struct {
	Reason string
	Detail string
}

func (e *ConsoleError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func argError(reason, detail string) *ConsoleError {
	return &ConsoleError{Reason: reason, Detail: detail}
}

// DigitalReader reads the current level of a pin for the "i <pin>" command,
// satisfied by the GPIO host adapter (out of scope here per spec.md §1,
// contract only). The command reports one reading per call; it does not
// stream transitions.
type DigitalReader interface {
	ReadPin(pin int) (bool, error)
}

// Dispatcher parses and executes one line at a time. It holds no transport
// state of its own — serialtransport and server both drive it with lines
// and get back response lines.
type Dispatcher struct {
	ctrl    *controller.Controller
	cat     store.Catalog
	bus     *events.Bus
	digital DigitalReader
}

// New constructs a Dispatcher wired to the given controller and catalog.
func New(ctrl *controller.Controller, cat store.Catalog, bus *events.Bus, digital DigitalReader) *Dispatcher {
	return &Dispatcher{ctrl: ctrl, cat: cat, bus: bus, digital: digital}
}

// Handle parses one input line and returns the response lines to send
// back, in order. A returned error is always a *ConsoleError.
func (d *Dispatcher) Handle(ctx context.Context, line string) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, argError(ArgsCount, "empty command")
	}

	switch fields[0] {
	case "?":
		return d.help(), nil
	case "i":
		return d.input(fields[1:])
	case "p":
		return d.profileCmd(ctx, fields[1:])
	case "e":
		return d.storeCmd(ctx, fields[1:])
	case "rst":
		return nil, nil // soft reset: no response, handled by the transport/host loop
	default:
		return nil, argError(ArgInvalidOpt, fields[0])
	}
}

func (d *Dispatcher) help() []string {
	return []string{
		"?                  help",
		"i <pin>            read digital-input level once",
		"p cur              active profile index",
		"p ls               list profile names",
		"p sel <idx>        activate profile",
		"p get <idx>        dump profile",
		"p nw <name> <n>    create n-phase draft, make active",
		"p on               start controller",
		"p off              stop controller",
		"e inf              store info",
		"e fmt              reformat store",
		"e d <off>          dump 64 bytes at offset",
		"rst                soft reset",
	}
}

func (d *Dispatcher) input(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, argError(ArgsCount, "i <pin>")
	}
	pin, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, argError(ArgOutOfRange, args[0])
	}
	if d.digital == nil {
		return nil, argError(ArgInvalidOpt, "no digital input source configured")
	}
	v, err := d.digital.ReadPin(pin)
	if err != nil {
		return nil, argError(ArgOutOfRange, err.Error())
	}
	level := 0
	if v {
		level = 1
	}
	return []string{fmt.Sprintf("in[%d]=%d;", pin, level)}, nil
}

func (d *Dispatcher) profileCmd(ctx context.Context, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, argError(ArgsCount, "p <cur|ls|sel|get|nw|on|off>")
	}
	switch args[0] {
	case "cur":
		return d.profileCur()
	case "ls":
		return d.profileLs()
	case "sel":
		return d.profileSel(ctx, args[1:])
	case "get":
		return d.profileGet(args[1:])
	case "nw":
		return d.profileNew(ctx, args[1:])
	case "on":
		return d.profileOn()
	case "off":
		return d.profileOff()
	default:
		return nil, argError(ArgInvalidOpt, args[0])
	}
}

func (d *Dispatcher) profileCur() ([]string, error) {
	return []string{strconv.Itoa(d.ctrl.ActiveIndex())}, nil
}

func (d *Dispatcher) profileLs() ([]string, error) {
	n, err := d.cat.Count()
	if err != nil {
		return nil, argError(NoMemory, err.Error())
	}
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		h, err := d.cat.LoadHeader(i)
		if err != nil {
			return nil, argError(NoMemory, err.Error())
		}
		names = append(names, h.Name)
	}
	return names, nil
}

func (d *Dispatcher) profileSel(ctx context.Context, args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, argError(ArgsCount, "p sel <idx>")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, argError(ArgOutOfRange, args[0])
	}
	p, err := d.cat.LoadProfile(idx)
	if err != nil {
		return nil, argError(ArgOutOfRange, err.Error())
	}
	if err := d.ctrl.SetPhases(p); err != nil {
		return nil, argError(ArgInvalidOpt, err.Error())
	}
	d.ctrl.SetActiveIndex(idx)
	d.bus.Publish(models.EventProfile, events.Profile(idx), idx)
	return []string{"ok", events.Profile(idx)}, nil
}

func (d *Dispatcher) profileGet(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, argError(ArgsCount, "p get <idx>")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, argError(ArgOutOfRange, args[0])
	}
	p, err := d.cat.LoadProfile(idx)
	if err != nil {
		return nil, argError(ArgOutOfRange, err.Error())
	}
	out := []string{fmt.Sprintf("profile[idx=%d,nam=%q,phases=%d]", idx, p.Name, len(p.Phases))}
	for i, ph := range p.Phases {
		out = append(out, fmt.Sprintf("  %d: %s", i, events.Phase(ph, true)))
	}
	return out, nil
}

func (d *Dispatcher) profileNew(ctx context.Context, args []string) ([]string, error) {
	if len(args) != 2 {
		return nil, argError(ArgsCount, "p nw <name> <n>")
	}
	if d.ctrl.Running() {
		return nil, argError(ArgInvalidOpt, "controller busy")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > models.MaxPhases {
		return nil, argError(ArgOutOfRange, args[1])
	}
	p := models.Profile{Name: args[0], Phases: make([]models.Phase, n)}
	for i := range p.Phases {
		p.Phases[i].Name = fmt.Sprintf("P%d", i+1)
	}
	if err := profile.Validate(p); err != nil {
		return nil, argError(ArgInvalidOpt, err.Error())
	}
	if err := d.cat.Append(ctx, p); err != nil {
		if err == store.ErrCatalogFull {
			return nil, argError(NoMemory, err.Error())
		}
		return nil, argError(ArgInvalidOpt, err.Error())
	}
	idx, err := d.cat.Count()
	if err != nil {
		return nil, argError(NoMemory, err.Error())
	}
	idx--
	if err := d.ctrl.SetPhases(p); err != nil {
		return nil, argError(ArgInvalidOpt, err.Error())
	}
	d.ctrl.SetActiveIndex(idx)
	d.bus.Publish(models.EventProfile, events.Profile(idx), idx)
	return []string{"ok", events.Profile(idx)}, nil
}

func (d *Dispatcher) profileOn() ([]string, error) {
	if _, ok := d.ctrl.Loaded(); !ok {
		return nil, argError(ArgInvalidOpt, "no active profile")
	}
	d.ctrl.Start()
	return []string{"ok"}, nil
}

func (d *Dispatcher) profileOff() ([]string, error) {
	d.ctrl.Stop()
	return []string{"ok"}, nil
}

func (d *Dispatcher) storeCmd(ctx context.Context, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, argError(ArgsCount, "e <inf|fmt|d>")
	}
	switch args[0] {
	case "inf":
		return d.storeInfo()
	case "fmt":
		return d.storeFormat(ctx)
	case "d":
		return d.storeDump(args[1:])
	default:
		return nil, argError(ArgInvalidOpt, args[0])
	}
}

func (d *Dispatcher) storeInfo() ([]string, error) {
	sigOk := 0
	if d.cat.ValidateSignature() {
		sigOk = 1
	}
	free, err := d.cat.FindFreeOffset()
	if err != nil {
		return nil, argError(NoMemory, err.Error())
	}
	return []string{fmt.Sprintf("eeprom[sigOk=%d,len=%d,freestart=%d]", sigOk, d.cat.Size(), free)}, nil
}

func (d *Dispatcher) storeFormat(ctx context.Context) ([]string, error) {
	if d.ctrl.Running() {
		return nil, argError(ArgInvalidOpt, "controller busy")
	}
	if err := d.cat.Format(ctx); err != nil {
		return nil, argError(NoMemory, err.Error())
	}
	for _, p := range profile.Defaults() {
		if err := d.cat.Append(ctx, p); err != nil {
			return nil, argError(NoMemory, err.Error())
		}
	}
	return []string{"ok"}, nil
}

func (d *Dispatcher) storeDump(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, argError(ArgsCount, "e d <off>")
	}
	off, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, argError(ArgOutOfRange, args[0])
	}
	b, err := d.cat.Dump(off, 64)
	if err != nil {
		return nil, argError(ArgOutOfRange, err.Error())
	}
	return []string{hexLine(b)}, nil
}

func hexLine(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}
