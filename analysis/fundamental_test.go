package analysis

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate int, seconds float64) []float32 {
	n := int(float64(sampleRate) * seconds)
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2.0 * math.Pi * freq * float64(i) / float64(sampleRate)))
	}
	return out
}

func TestEstimateFundamentalOnSine(t *testing.T) {
	for _, freq := range []float64{110, 220, 440, 880} {
		got := EstimateFundamental(sine(freq, 48000, 1.0), 48000)
		if math.Abs(got-freq) > 0.02*freq {
			t.Fatalf("fundamental for %v Hz sine estimated as %v", freq, got)
		}
	}
}

func TestEstimateFundamentalOnPulseTrain(t *testing.T) {
	const sampleRate = 48000
	const freq = 220.0
	n := sampleRate
	samples := make([]float32, n)
	for i := range samples {
		phase := math.Mod(freq*float64(i)/sampleRate, 1.0)
		if phase <= 0.3 {
			samples[i] = 1.0
		} else {
			samples[i] = -1.0
		}
	}
	got := EstimateFundamental(samples, sampleRate)
	if math.Abs(got-freq) > 0.02*freq {
		t.Fatalf("fundamental for %v Hz pulse estimated as %v", freq, got)
	}
}

func TestEstimateFundamentalRejectsSilenceAndShortInput(t *testing.T) {
	if got := EstimateFundamental(make([]float32, 48000), 48000); got != 0 {
		t.Fatalf("expected 0 for silence, got %v", got)
	}
	if got := EstimateFundamental(make([]float32, 10), 48000); got != 0 {
		t.Fatalf("expected 0 for short input, got %v", got)
	}
}
