package organ

import "github.com/cwbudde/algo-organ/dsp"

// NumKeys is the size of the fixed valve rank.
const NumKeys = 128

// defaultQueueCapacity sizes the event ring generously enough that drops
// under normal playing are exceedingly rare.
const defaultQueueCapacity = 128

// Engine is the pneumatic valve-organ synthesizer. One engine owns a fixed
// rank of 128 valves (one per MIDI key), the shared plenum, and the
// active-key index. All engine state is mutated by the render thread only;
// the sole cross-thread channel is the event queue.
type Engine struct {
	sampleRate int
	params     *Params
	dt         float32
	alpha      float32 // chassis one-pole coefficient, constant per engine

	plenum Plenum
	voices [NumKeys]Voice

	// active indexes the voices currently contributing to output, in
	// note-on arrival order. Capacity is reserved up front; membership is
	// tracked in inActive so insertion stays O(1) and idempotent.
	active   []int
	inActive [NumKeys]bool

	events *EventQueue
}

// NewEngine creates an engine rendering at the given sample rate. A nil
// params uses the defaults.
func NewEngine(sampleRate int, params *Params) *Engine {
	if params == nil {
		params = NewDefaultParams()
	}
	dt := 1.0 / float32(sampleRate)
	e := &Engine{
		sampleRate: sampleRate,
		params:     params,
		dt:         dt,
		alpha:      dsp.OnePoleAlpha(params.ChassisCutoff, dt),
		active:     make([]int, 0, NumKeys),
		events:     NewEventQueue(defaultQueueCapacity),
	}
	for key := range e.voices {
		e.voices[key].freq = keyToFreq(key)
	}
	return e
}

// SampleRate returns the render rate in Hz.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// Events returns the inbound event queue. The producer half belongs to the
// input-acquisition thread; the engine drains the consumer half at the
// start of every RenderBuffer call.
func (e *Engine) Events() *EventQueue {
	return e.events
}

// Voice exposes the persistent state for one key.
func (e *Engine) Voice(key int) *Voice {
	return &e.voices[key]
}

// Pressure returns the current plenum pressure.
func (e *Engine) Pressure() float32 {
	return e.plenum.Pressure()
}

// ActiveKeys appends the currently active key indices to dst and returns
// it. Order is note-on arrival order.
func (e *Engine) ActiveKeys(dst []int) []int {
	return append(dst, e.active...)
}

// HandleEvent applies one note event to the valve rank. A note-on with
// positive strength drives the valve open and registers the key in the
// active set; re-triggering an already-active key only refreshes its
// attack. A note-off (or zero-strength note-on) releases the drive and
// leaves removal to the per-buffer compaction once the valve has closed.
func (e *Engine) HandleEvent(ev Event) {
	if ev.Key >= NumKeys {
		return
	}
	switch ev.Kind {
	case EventNoteOn:
		if ev.Strength <= 0 {
			e.voices[ev.Key].opening = false
			return
		}
		v := &e.voices[ev.Key]
		v.opening = true
		v.attack = clamp01(ev.Strength)
		if !e.inActive[ev.Key] {
			e.inActive[ev.Key] = true
			e.active = append(e.active, int(ev.Key))
		}
	case EventNoteOff:
		e.voices[ev.Key].opening = false
	}
}

// RenderBuffer drains the event queue, then fills buf with interleaved
// frames for the given channel count. The same mono signal is broadcast to
// every channel. Called from the audio driver's render thread; performs no
// allocation, locking, or blocking.
func (e *Engine) RenderBuffer(buf []float32, channels int) {
	for {
		ev, ok := e.events.Pop()
		if !ok {
			break
		}
		e.HandleEvent(ev)
	}

	frames := len(buf) / channels
	for f := 0; f < frames; f++ {
		// Plenum first, fed by the aperture sum from the previous tick.
		var totalAperture float32
		for _, key := range e.active {
			totalAperture += e.voices[key].aperture
		}
		e.plenum.step(e.params, totalAperture, e.dt)
		pressure := e.plenum.Pressure()
		sag := sagFactor(e.params, pressure)

		var mix float32
		for _, key := range e.active {
			v := &e.voices[key]
			v.updateAperture(pressure, e.params.SpringReturn, e.dt)
			if v.aperture <= apertureFloor {
				// Closed valve: silent this frame, removed at compaction.
				continue
			}
			v.phase += v.freq * sag * e.dt
			if v.phase >= 1.0 {
				v.phase -= 1.0
			}
			raw := pulseWave(v.phase, e.params.PulseDuty)
			v.filterState = dsp.FlushDenormals(dsp.OnePole(v.filterState, e.alpha, raw))
			mix += v.filterState * v.aperture * pressure
		}

		out := dsp.SoftClip(mix)
		base := f * channels
		for c := 0; c < channels; c++ {
			buf[base+c] = out
		}
	}

	e.compactActive()
}

// compactActive filters the active index in place, keeping keys whose
// valve is still driven or audibly open. This is the sole removal point
// for active-set membership and runs once per buffer.
func (e *Engine) compactActive() {
	keep := e.active[:0]
	for _, key := range e.active {
		v := &e.voices[key]
		if v.opening || v.aperture > apertureFloor {
			keep = append(keep, key)
			continue
		}
		e.inActive[key] = false
	}
	e.active = keep
}
