package organ

// Plenum is the shared air reservoir feeding every valve. Its pressure is
// stepped exactly once per sample, before any per-voice work in that
// sample, using the aperture sum from the previous tick.
type Plenum struct {
	pressure float32
}

// Pressure returns the current plenum pressure.
func (p *Plenum) Pressure() float32 {
	return p.pressure
}

// step integrates the pressure dynamics over one sample interval: a pump
// refilling proportionally to the pressure deficit, opposed by outflow
// through all open valves. Pressure never goes below zero.
func (p *Plenum) step(params *Params, totalAperture float32, dt float32) {
	refill := params.RefillSpeed * (params.TargetPressure - p.pressure)
	outflow := params.ValveFlow * totalAperture * p.pressure
	p.pressure += dt * (refill - outflow)
	if p.pressure < 0 {
		p.pressure = 0
	}
}

// sagFactor is the pitch multiplier induced by the current pressure
// deficit. It is uniform across voices, so the engine computes it once per
// sample.
func sagFactor(params *Params, pressure float32) float32 {
	return 1.0 - params.PitchSagDepth*(params.TargetPressure-pressure)
}
