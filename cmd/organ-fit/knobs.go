package main

import (
	"math"

	"github.com/cwbudde/algo-organ/organ"
)

// knobDef describes one tunable parameter: its bounds and how a value is
// applied to the engine params.
type knobDef struct {
	Name  string
	Min   float64
	Max   float64
	Apply func(p *organ.Params, v float64)
}

// candidate holds one knob vector in natural (unnormalized) units.
type candidate struct {
	Vals []float64
}

func knobDefs() []knobDef {
	return []knobDef{
		{"target-pressure", 0.5, 2.0, func(p *organ.Params, v float64) { p.TargetPressure = float32(v) }},
		{"refill-speed", 1.0, 40.0, func(p *organ.Params, v float64) { p.RefillSpeed = float32(v) }},
		{"valve-flow", 0.05, 2.0, func(p *organ.Params, v float64) { p.ValveFlow = float32(v) }},
		{"pulse-duty", 0.05, 0.95, func(p *organ.Params, v float64) { p.PulseDuty = float32(v) }},
		{"sag-depth", 0.0, 0.25, func(p *organ.Params, v float64) { p.PitchSagDepth = float32(v) }},
		{"cutoff", 200.0, 8000.0, func(p *organ.Params, v float64) { p.ChassisCutoff = float32(v) }},
		{"spring-return", 2.0, 80.0, func(p *organ.Params, v float64) { p.SpringReturn = float32(v) }},
	}
}

// fromNormalized maps a mayfly position in [0,1]^n to a candidate in
// natural units.
func fromNormalized(pos []float64, defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i, d := range defs {
		x := clamp(pos[i], 0, 1)
		vals[i] = d.Min + x*(d.Max-d.Min)
	}
	return candidate{Vals: vals}
}

// applyCandidate produces engine params for a candidate, starting from the
// defaults.
func applyCandidate(defs []knobDef, c candidate) *organ.Params {
	params := organ.NewDefaultParams()
	for i, d := range defs {
		d.Apply(params, clamp(c.Vals[i], d.Min, d.Max))
	}
	return params
}

func defaultCandidate(defs []knobDef) candidate {
	base := organ.NewDefaultParams()
	read := map[string]float64{
		"target-pressure": float64(base.TargetPressure),
		"refill-speed":    float64(base.RefillSpeed),
		"valve-flow":      float64(base.ValveFlow),
		"pulse-duty":      float64(base.PulseDuty),
		"sag-depth":       float64(base.PitchSagDepth),
		"cutoff":          float64(base.ChassisCutoff),
		"spring-return":   float64(base.SpringReturn),
	}
	vals := make([]float64, len(defs))
	for i, d := range defs {
		vals[i] = clamp(read[d.Name], d.Min, d.Max)
	}
	return candidate{Vals: vals}
}

func knobMap(defs []knobDef, c candidate) map[string]float64 {
	out := make(map[string]float64, len(defs))
	for i, d := range defs {
		out[d.Name] = c.Vals[i]
	}
	return out
}

func clamp(v float64, lo float64, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
