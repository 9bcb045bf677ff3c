package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ovencontroller/internal/models"
)

// Sink receives published events. Implemented by telemetry.Publisher
// (forwards to MQTT); the websocket handler in server subscribes to the Bus
// directly instead.
type Sink interface {
	Emit(models.Event)
}

// Bus is a minimal pub-sub fan-out, adapted from the teacher's websocket
// handler polling loop (internal/handlers/websockets.go) into a push model:
// the control loop here is the single producer of events, so subscribers
// are pushed to directly instead of polling repository state on a ticker.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan models.Event
	next int
}

// NewBus constructs an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan models.Event)}
}

// Subscribe registers a new receiver with the given buffer size, returning
// the channel to read from and an unsubscribe function.
func (b *Bus) Subscribe(buffer int) (<-chan models.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan models.Event, buffer)
	b.subs[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if existing, ok := b.subs[id]; ok {
			close(existing)
			delete(b.subs, id)
		}
	}
}

// Publish builds an Event from typ/line/metadata, stamps it, and fans it
// out to every subscriber. Slow subscribers drop the event rather than
// blocking the control loop (the control loop never suspends, per the
// single-threaded cooperative tick model).
func (b *Bus) Publish(typ, line string, metadata any) models.Event {
	ev := models.Event{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Type:       typ,
		Line:       line,
		Metadata:   metadata,
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}
