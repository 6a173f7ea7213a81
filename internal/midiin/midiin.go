// Package midiin binds a virtual MIDI input port to an engine event queue.
// It owns the input-acquisition side of the hand-off: raw bytes arrive on
// the driver's listener goroutine, get parsed into note events, and are
// pushed best-effort into the queue. A full queue drops the event rather
// than ever blocking towards the render thread.
package midiin

import (
	"fmt"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/rtmididrv"

	"github.com/cwbudde/algo-organ/organ"
)

// Port is an open MIDI input feeding one event queue.
type Port struct {
	drv  *rtmididrv.Driver
	in   midi.In
	once sync.Once
}

// Open creates a virtual input port with the given name and wires incoming
// note messages into q. When the platform cannot create virtual ports, the
// first matching hardware input is opened instead.
func Open(name string, q *organ.EventQueue) (*Port, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("midi driver: %w", err)
	}
	in, err := drv.OpenVirtualIn(name)
	if err != nil {
		in, err = findInput(drv, name)
		if err != nil {
			_ = drv.Close()
			return nil, err
		}
		if err := in.Open(); err != nil {
			_ = drv.Close()
			return nil, fmt.Errorf("open midi input %q: %w", in.String(), err)
		}
	}

	if err := in.SetListener(func(raw []byte, _ int64) {
		if ev, ok := parseNoteMessage(raw); ok {
			q.Push(ev)
		}
	}); err != nil {
		_ = in.Close()
		_ = drv.Close()
		return nil, fmt.Errorf("midi listener: %w", err)
	}
	return &Port{drv: drv, in: in}, nil
}

// Close stops listening and releases the port and driver.
func (p *Port) Close() error {
	var err error
	p.once.Do(func() {
		_ = p.in.Close()
		err = p.drv.Close()
	})
	return err
}

func findInput(drv *rtmididrv.Driver, name string) (midi.In, error) {
	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("list midi inputs: %w", err)
	}
	for _, p := range ins {
		if strings.Contains(p.String(), name) {
			return p, nil
		}
	}
	if len(ins) > 0 {
		return ins[0], nil
	}
	return nil, fmt.Errorf("no midi input available")
}

// parseNoteMessage converts a raw channel message into a note event.
// Velocity-0 note-ons are note-offs per MIDI convention; everything that
// is not a note message is dropped here so the engine never sees it.
func parseNoteMessage(raw []byte) (organ.Event, bool) {
	if len(raw) < 3 || raw[0] >= 0xF0 {
		return organ.Event{}, false
	}
	key := raw[1] & 0x7F
	vel := raw[2] & 0x7F
	switch raw[0] >> 4 {
	case 0x8:
		return organ.Event{Kind: organ.EventNoteOff, Key: key}, true
	case 0x9:
		if vel == 0 {
			return organ.Event{Kind: organ.EventNoteOff, Key: key}, true
		}
		return organ.Event{
			Kind:     organ.EventNoteOn,
			Key:      key,
			Strength: float32(vel) / 127.0,
		}, true
	}
	return organ.Event{}, false
}
