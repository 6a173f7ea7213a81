package organ

// Params holds the pneumatic model configuration for one engine instance.
// All fields are read-only once the engine is constructed.
type Params struct {
	// TargetPressure is the static plenum pressure the pump refills towards.
	TargetPressure float32
	// RefillSpeed scales how fast the pump closes the pressure deficit.
	RefillSpeed float32
	// ValveFlow scales outflow through open valves (aperture times pressure).
	ValveFlow float32
	// PulseDuty is the fraction of the oscillator period held at the low rail.
	PulseDuty float32
	// PitchSagDepth scales how far pitch drops under a pressure deficit.
	PitchSagDepth float32
	// TuningAligner is reserved and not consulted by the signal path.
	TuningAligner float32
	// ChassisCutoff is the per-voice chassis low-pass cutoff in Hz.
	ChassisCutoff float32
	// SpringReturn is the base closing rate of an undriven valve.
	SpringReturn float32
}

// NewDefaultParams creates default parameters.
func NewDefaultParams() *Params {
	return &Params{
		TargetPressure: 1.0,
		RefillSpeed:    10.0,
		ValveFlow:      0.6,
		PulseDuty:      0.3,
		PitchSagDepth:  0.06,
		TuningAligner:  1.0,
		ChassisCutoff:  1500.0,
		SpringReturn:   25.0,
	}
}
