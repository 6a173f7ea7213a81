package main

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/cwbudde/algo-organ/analysis"
	"github.com/cwbudde/algo-organ/organ"
	"github.com/cwbudde/mayfly"
)

type optimizationConfig struct {
	reference     []float64
	sampleRate    int
	key           int
	strength      float64
	duration      float64
	releaseAfter  float64
	maxIterations int
	population    int
	variant       string
	seed          int64
	reportEvery   int
}

type optimizationResult struct {
	best        candidate
	bestMetrics analysis.Metrics
	evals       int
}

func runOptimization(cfg *optimizationConfig, defs []knobDef) (*optimizationResult, error) {
	mayflyConfig, err := newMayflyConfig(cfg.variant, cfg.population, len(defs), cfg.maxIterations)
	if err != nil {
		return nil, err
	}
	mayflyConfig.Rand = rand.New(rand.NewSource(cfg.seed))

	start := defaultCandidate(defs)
	state := struct {
		mu          sync.Mutex
		best        candidate
		bestMetrics analysis.Metrics
		evals       int
	}{
		best:        start,
		bestMetrics: evaluateCandidate(cfg, defs, start),
	}
	fmt.Printf("Start score=%.4f similarity=%.2f%%\n",
		state.bestMetrics.Score, state.bestMetrics.Similarity*100.0)

	mayflyConfig.ObjectiveFunc = func(pos []float64) float64 {
		cand := fromNormalized(pos, defs)
		metrics := evaluateCandidate(cfg, defs, cand)

		state.mu.Lock()
		state.evals++
		evals := state.evals
		improved := metrics.Score < state.bestMetrics.Score
		if improved {
			state.best = cand
			state.bestMetrics = metrics
		}
		bestScore := state.bestMetrics.Score
		state.mu.Unlock()

		if improved {
			fmt.Printf("Improved eval=%d score=%.4f sim=%.2f%%\n",
				evals, metrics.Score, metrics.Similarity*100.0)
		} else if cfg.reportEvery > 0 && evals%cfg.reportEvery == 0 {
			fmt.Printf("Progress eval=%d best=%.4f\n", evals, bestScore)
		}
		return metrics.Score
	}

	if _, err := runMayfly(mayflyConfig); err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return &optimizationResult{
		best:        state.best,
		bestMetrics: state.bestMetrics,
		evals:       state.evals,
	}, nil
}

// evaluateCandidate renders the candidate parameters and scores the result
// against the reference recording.
func evaluateCandidate(cfg *optimizationConfig, defs []knobDef, cand candidate) analysis.Metrics {
	mono := renderCandidate(applyCandidate(defs, cand), cfg)
	return analysis.Compare(cfg.reference, mono, cfg.sampleRate)
}

func renderCandidate(params *organ.Params, cfg *optimizationConfig) []float64 {
	engine := organ.NewEngine(cfg.sampleRate, params)
	engine.HandleEvent(organ.Event{
		Kind:     organ.EventNoteOn,
		Key:      uint8(cfg.key),
		Strength: float32(cfg.strength),
	})

	totalFrames := int(float64(cfg.sampleRate) * cfg.duration)
	releaseAtFrame := int(float64(cfg.sampleRate) * cfg.releaseAfter)
	const blockSize = 128
	block := make([]float32, blockSize)
	mono := make([]float64, 0, totalFrames)
	released := false

	for rendered := 0; rendered < totalFrames; {
		frames := blockSize
		if rendered+frames > totalFrames {
			frames = totalFrames - rendered
		}
		if !released && rendered >= releaseAtFrame {
			engine.HandleEvent(organ.Event{Kind: organ.EventNoteOff, Key: uint8(cfg.key)})
			released = true
		}
		engine.RenderBuffer(block[:frames], 1)
		for _, s := range block[:frames] {
			mono = append(mono, float64(s))
		}
		rendered += frames
	}
	return mono
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	cfg.NM = maxInt(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}
