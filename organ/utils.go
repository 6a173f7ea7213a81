package organ

import "math"

// keyToFreq converts a MIDI key number to its equal-tempered frequency in
// Hz. Computed once per voice at construction, so there is no need for a
// fast approximation here; math.Pow keeps octaves of A4 exact.
func keyToFreq(key int) float32 {
	const a4Freq = 440.0
	const a4Key = 69
	return float32(a4Freq * math.Pow(2.0, float64(key-a4Key)/12.0))
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func isFinite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}
