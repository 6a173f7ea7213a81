package organ

import "testing"

func TestNoteOnProducesSound(t *testing.T) {
	e := NewEngine(48000, nil)
	e.HandleEvent(noteOn(69, 0.8))

	samples := renderMono(e, 4800) // 0.1s
	nonZero := false
	for _, s := range samples {
		if s != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatalf("expected audible output 0.1s after note-on")
	}
	if ap := e.Voice(69).Aperture(); ap <= 0 {
		t.Fatalf("expected valve 69 to be open after note-on, aperture=%v", ap)
	}
	if keys := e.ActiveKeys(nil); !containsKey(keys, 69) {
		t.Fatalf("expected key 69 in active set, got %v", keys)
	}
}

func TestNoteOnIsIdempotentInActiveSet(t *testing.T) {
	e := NewEngine(48000, nil)
	e.HandleEvent(noteOn(69, 0.8))
	e.HandleEvent(noteOn(69, 0.6))

	keys := e.ActiveKeys(nil)
	if len(keys) != 1 || keys[0] != 69 {
		t.Fatalf("expected single active entry for key 69, got %v", keys)
	}
	if at := e.Voice(69).attack; at != 0.6 {
		t.Fatalf("expected re-trigger to refresh attack, got %v", at)
	}
}

func TestNoteOffDecaysAndRemovesKey(t *testing.T) {
	e := NewEngine(48000, nil)
	e.HandleEvent(noteOn(69, 0.8))
	renderMono(e, 4800)

	e.HandleEvent(noteOff(69))
	removed := false
	for i := 0; i < 100; i++ {
		renderMono(e, 512)
		if !containsKey(e.ActiveKeys(nil), 69) {
			removed = true
			break
		}
	}
	if !removed {
		t.Fatalf("expected key 69 to leave the active set after release")
	}
	if ap := e.Voice(69).Aperture(); ap > apertureFloor {
		t.Fatalf("expected valve to be closed after removal, aperture=%v", ap)
	}
	// A fully released engine is exactly silent.
	for i, s := range renderMono(e, 1024) {
		if s != 0 {
			t.Fatalf("expected silence after release, sample %d = %v", i, s)
		}
	}
}

func TestZeroStrengthNoteOnActsAsNoteOff(t *testing.T) {
	e := NewEngine(48000, nil)
	e.HandleEvent(noteOn(60, 0.8))
	renderMono(e, 4800)

	e.HandleEvent(noteOn(60, 0.0))
	if e.Voice(60).opening {
		t.Fatalf("expected zero-strength note-on to release the valve drive")
	}
	// It must not insert or remove active membership by itself.
	if !containsKey(e.ActiveKeys(nil), 60) {
		t.Fatalf("expected lazy removal: key should remain active until decayed")
	}
}

func TestTwoVoicesSuperpose(t *testing.T) {
	solo1 := NewEngine(48000, nil)
	solo1.HandleEvent(noteOn(60, 0.7))
	rms1 := monoRMS(renderMono(solo1, 9600)[4800:])

	solo2 := NewEngine(48000, nil)
	solo2.HandleEvent(noteOn(67, 0.7))
	rms2 := monoRMS(renderMono(solo2, 9600)[4800:])

	duet := NewEngine(48000, nil)
	duet.HandleEvent(noteOn(60, 0.7))
	duet.HandleEvent(noteOn(67, 0.7))
	rmsDuet := monoRMS(renderMono(duet, 9600)[4800:])

	floor := rms1
	if rms2 > floor {
		floor = rms2
	}
	// Shared-plenum droop and soft clipping shave a little off the sum, but
	// the mix must not be quieter than the louder voice alone.
	if rmsDuet < 0.8*floor {
		t.Fatalf("expected superposition: duet=%v solo1=%v solo2=%v", rmsDuet, rms1, rms2)
	}
}

func TestOutputStaysWithinSoftClipBounds(t *testing.T) {
	e := NewEngine(48000, nil)
	for key := 48; key < 72; key += 2 {
		e.HandleEvent(noteOn(key, 1.0))
	}
	for i, s := range renderMono(e, 9600) {
		if !isFinite(s) {
			t.Fatalf("non-finite sample at %d: %v", i, s)
		}
		if s <= -1.0 || s >= 1.0 {
			t.Fatalf("sample %d escaped the soft clip bounds: %v", i, s)
		}
	}
}

func TestRenderBufferBroadcastsToAllChannels(t *testing.T) {
	e := NewEngine(48000, nil)
	e.HandleEvent(noteOn(69, 0.9))

	const frames = 256
	const channels = 2
	buf := make([]float32, frames*channels)
	// Warm up past the plenum spin-up so the buffer is non-trivial.
	renderMono(e, 4800)
	e.RenderBuffer(buf, channels)

	for f := 0; f < frames; f++ {
		if buf[f*channels] != buf[f*channels+1] {
			t.Fatalf("channel mismatch at frame %d: %v vs %v",
				f, buf[f*channels], buf[f*channels+1])
		}
	}
}

func TestRenderBufferDrainsEventQueue(t *testing.T) {
	e := NewEngine(48000, nil)
	if !e.Events().Push(noteOn(64, 0.8)) {
		t.Fatalf("push into empty queue failed")
	}
	if !e.Events().Push(noteOff(64)) {
		t.Fatalf("second push failed")
	}
	if !e.Events().Push(noteOn(65, 0.8)) {
		t.Fatalf("third push failed")
	}

	buf := make([]float32, 128)
	e.RenderBuffer(buf, 1)

	if e.Events().Len() != 0 {
		t.Fatalf("expected queue drained before rendering, %d left", e.Events().Len())
	}
	if e.Voice(64).opening {
		t.Fatalf("expected note-off applied in arrival order")
	}
	if !e.Voice(65).opening {
		t.Fatalf("expected note-on for key 65 applied")
	}
}

func TestUnknownEventKindIgnored(t *testing.T) {
	e := NewEngine(48000, nil)
	e.HandleEvent(Event{Kind: EventKind(42), Key: 69, Strength: 1.0})
	if keys := e.ActiveKeys(nil); len(keys) != 0 {
		t.Fatalf("expected unknown event kind to be ignored, active=%v", keys)
	}
}
