package dsp

import (
	"math"

	"github.com/cwbudde/algo-approx"
)

// OnePoleAlpha computes the smoothing coefficient of a one-pole low-pass
// for the given cutoff frequency and sample interval: w*dt / (1 + w*dt)
// with w = 2*pi*cutoff. The coefficient only depends on cutoff and dt, so
// callers with a fixed cutoff can compute it once.
func OnePoleAlpha(cutoff float32, dt float32) float32 {
	wdt := 2.0 * math.Pi * float64(cutoff) * float64(dt)
	return float32(wdt / (1.0 + wdt))
}

// OnePole advances a one-pole low-pass by one sample. The returned value
// is both the filter output and the new history.
func OnePole(history float32, alpha float32, input float32) float32 {
	return history + alpha*(input-history)
}

// SoftClip maps any input smoothly into (-1, 1) with a tanh curve,
// evaluated through approx.FastExp to keep the per-sample cost down.
// Inputs beyond +/-8 are clamped first: the curve is already flat to
// float32 precision there, and the clamp keeps the exponential in range.
func SoftClip(x float32) float32 {
	neg := x < 0
	if neg {
		x = -x
	}
	if x < 1e-4 {
		// Linear region: tanh(x) = x to float32 precision, and silence
		// must stay exactly zero.
		if neg {
			return -x
		}
		return x
	}
	if x > 8 {
		x = 8
	}
	e := approx.FastExp(2.0 * x)
	y := (e - 1.0) / (e + 1.0)
	if neg {
		return -y
	}
	return y
}

// FlushDenormals converts denormal numbers to zero to avoid performance issues
func FlushDenormals(x float32) float32 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0.0
	}
	return x
}
