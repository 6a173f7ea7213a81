package organ

import "math"

// renderMono renders the given number of frames in engine-sized blocks and
// returns the mono samples.
func renderMono(e *Engine, frames int) []float32 {
	const blockSize = 128
	out := make([]float32, 0, frames)
	block := make([]float32, blockSize)
	for rendered := 0; rendered < frames; {
		n := blockSize
		if rendered+n > frames {
			n = frames - rendered
		}
		e.RenderBuffer(block[:n], 1)
		out = append(out, block[:n]...)
		rendered += n
	}
	return out
}

func monoRMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func noteOn(key int, strength float32) Event {
	return Event{Kind: EventNoteOn, Key: uint8(key), Strength: strength}
}

func noteOff(key int) Event {
	return Event{Kind: EventNoteOff, Key: uint8(key)}
}

func containsKey(keys []int, key int) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
