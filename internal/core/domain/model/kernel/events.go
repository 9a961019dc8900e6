package kernel

import (
	"sync"
	"time"
)

// Event is a lifecycle fact recorded by an aggregate and dispatched to
// listeners once the unit of work that produced it has committed.
type Event interface {
	EventID() UUID
	Name() string
	OccurredAt() time.Time
}

// EventHeader carries the fields every Event shares. Embed it in concrete
// event types.
type EventHeader struct {
	id         UUID
	name       string
	occurredAt time.Time
}

func NewEventHeader(name string, occurredAt time.Time) EventHeader {
	return EventHeader{id: NewUUID(), name: name, occurredAt: occurredAt}
}

func (h EventHeader) EventID() UUID {
	return h.id
}

func (h EventHeader) Name() string {
	return h.name
}

func (h EventHeader) OccurredAt() time.Time {
	return h.occurredAt
}

// EventRecorder accumulates events on an aggregate until they are pulled.
// The zero value is ready to use.
type EventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *EventRecorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// PullEvents returns the recorded events in order and clears the recorder,
// so an aggregate tracked twice in one unit of work does not emit twice.
func (r *EventRecorder) PullEvents() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.events
	r.events = nil
	return events
}

// EventSource is implemented by every aggregate that records events.
type EventSource interface {
	PullEvents() []Event
}
