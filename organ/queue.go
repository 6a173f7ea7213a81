package organ

import "sync/atomic"

// EventKind discriminates note events.
type EventKind uint8

const (
	// EventNoteOn starts (or re-triggers) a key. Strength 0 acts as a
	// note-off, matching MIDI running-status practice.
	EventNoteOn EventKind = iota
	// EventNoteOff releases a key.
	EventNoteOff
)

// Event is one structured note event handed from the input thread to the
// render thread. Key is a MIDI key number 0..127, Strength is in [0,1].
type Event struct {
	Kind     EventKind
	Key      uint8
	Strength float32
}

// EventQueue is a bounded single-producer/single-consumer ring carrying
// events from the input-acquisition thread into the render thread. Push
// and Pop are non-blocking and allocation-free; when the ring is full the
// newest event is dropped, so the producer can never stall the render
// side. Exactly one goroutine may push and exactly one may pop.
type EventQueue struct {
	buf  []Event
	mask uint32
	head atomic.Uint32 // next slot to pop, advanced by the consumer
	tail atomic.Uint32 // next slot to push, advanced by the producer
}

// NewEventQueue creates a queue holding at least capacity events. The
// backing ring is rounded up to a power of two and never grows.
func NewEventQueue(capacity int) *EventQueue {
	n := uint32(1)
	for int(n) < capacity {
		n <<= 1
	}
	return &EventQueue{
		buf:  make([]Event, n),
		mask: n - 1,
	}
}

// Push enqueues an event, returning false if the ring was full and the
// event was dropped. Producer side only.
func (q *EventQueue) Push(ev Event) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() > q.mask {
		return false
	}
	q.buf[tail&q.mask] = ev
	q.tail.Store(tail + 1)
	return true
}

// Pop dequeues the oldest event, returning false if the ring was empty.
// Consumer side only.
func (q *EventQueue) Pop() (Event, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return Event{}, false
	}
	ev := q.buf[head&q.mask]
	q.head.Store(head + 1)
	return ev, true
}

// Len reports how many events are currently queued.
func (q *EventQueue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}
