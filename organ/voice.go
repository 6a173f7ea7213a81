package organ

const (
	// Valve travel time bounds in seconds. A full-strength attack opens the
	// valve in fastOpenTime, a zero-strength attack in slowOpenTime.
	slowOpenTime = 0.08
	fastOpenTime = 0.01

	// backPressureDrag slows the spring return under ambient pressure.
	backPressureDrag = 0.875

	// apertureFloor is the openness below which a voice is inaudible and
	// eligible for removal from the active set.
	apertureFloor = 0.0001
)

// Voice is the persistent state for one key of the valve rank. All 128
// voices are embedded in the engine and live for its whole lifetime; only
// active-set membership changes at runtime.
type Voice struct {
	freq        float32 // natural frequency, fixed at construction
	phase       float32 // oscillator phase in [0,1)
	filterState float32 // chassis one-pole history
	aperture    float32 // valve openness in [0,1]
	attack      float32 // strength captured from the triggering note-on
	opening     bool    // key held, valve driven open
}

// Freq returns the voice's natural frequency in Hz.
func (v *Voice) Freq() float32 {
	return v.freq
}

// Aperture returns the current valve openness in [0,1].
func (v *Voice) Aperture() float32 {
	return v.aperture
}

// updateAperture advances the valve position by one sample interval.
// Driven valves open at a rate interpolated by attack strength between the
// slow and fast travel times. Undriven valves close under the return
// spring, slowed by ambient back-pressure. The result is clamped to [0,1]
// so pathological dt values cannot push the valve out of range.
func (v *Voice) updateAperture(pressure float32, spring float32, dt float32) {
	if v.opening {
		openTime := slowOpenTime - v.attack*(slowOpenTime-fastOpenTime)
		v.aperture += dt / openTime
	} else {
		v.aperture -= dt * spring / (1.0 + backPressureDrag*pressure)
	}
	if v.aperture < 0 {
		v.aperture = 0
	} else if v.aperture > 1 {
		v.aperture = 1
	}
}

// pulseWave is the raw valve oscillator: a naive two-level pulse, high for
// the duty fraction of the period and at the low rail otherwise.
func pulseWave(phase float32, duty float32) float32 {
	if phase <= duty {
		return 1.0
	}
	return -1.0
}
