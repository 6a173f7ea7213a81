package analysis

import (
	algofft "github.com/cwbudde/algo-fft"
)

// EstimateFundamental estimates the fundamental frequency of a mono signal
// in Hz via its autocorrelation peak. The autocorrelation is computed as an
// FFT convolution of the signal with its own reversal. Returns 0 when no
// periodicity is found in the 20 Hz .. 2 kHz search band.
func EstimateFundamental(samples []float32, sampleRate int) float64 {
	n := len(samples)
	if n < 64 || sampleRate <= 0 {
		return 0
	}
	// Skip the attack transient and bound the analysis window.
	start := n / 10
	if n-start > 4*sampleRate {
		n = start + 4*sampleRate
	}
	seg := samples[start:n]
	m := len(seg)

	rev := make([]float32, m)
	for i, s := range seg {
		rev[m-1-i] = s
	}
	corr := make([]float32, 2*m-1)
	if err := algofft.ConvolveReal(corr, seg, rev); err != nil {
		return 0
	}
	// corr[m-1+k] is the autocorrelation at lag k.
	auto := corr[m-1:]

	minLag := sampleRate / 2000
	if minLag < 2 {
		minLag = 2
	}
	maxLag := sampleRate / 20
	if maxLag > len(auto)-1 {
		maxLag = len(auto) - 1
	}
	if minLag >= maxLag {
		return 0
	}

	bestLag := 0
	best := float32(0)
	for lag := minLag; lag <= maxLag; lag++ {
		if auto[lag] > best {
			best = auto[lag]
			bestLag = lag
		}
	}
	if bestLag == 0 || best <= 0 {
		return 0
	}

	// Parabolic refinement around the peak for sub-sample lag accuracy.
	lag := float64(bestLag)
	if bestLag > minLag && bestLag < maxLag {
		y0 := float64(auto[bestLag-1])
		y1 := float64(auto[bestLag])
		y2 := float64(auto[bestLag+1])
		den := y0 - 2*y1 + y2
		if den != 0 {
			lag += 0.5 * (y0 - y2) / den
		}
	}
	return float64(sampleRate) / lag
}
