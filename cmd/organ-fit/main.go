package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-organ/analysis"
	"github.com/cwbudde/algo-organ/internal/wavio"
)

type fitReport struct {
	Reference  string             `json:"reference"`
	SampleRate int                `json:"sample_rate"`
	Key        int                `json:"key"`
	Evals      int                `json:"evals"`
	Variant    string             `json:"variant"`
	Knobs      map[string]float64 `json:"knobs"`
	Metrics    analysis.Metrics   `json:"metrics"`
}

func main() {
	reference := flag.String("reference", "", "Reference WAV recording to fit against (required)")
	key := flag.Int("key", 69, "MIDI key number of the reference note")
	strength := flag.Float64("strength", 0.8, "Note-on strength (0..1)")
	duration := flag.Float64("duration", 3.0, "Candidate render duration in seconds")
	releaseAfter := flag.Float64("release-after", 1.5, "Send note-off after this many seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Evaluation sample rate in Hz")
	iterations := flag.Int("iterations", 40, "Mayfly iterations")
	population := flag.Int("population", 10, "Mayfly population size")
	variant := flag.String("variant", "ma", "Mayfly variant: ma, desma, olce, eobbma, gsasma, mpma, aoblmoa")
	seed := flag.Int64("seed", 1, "Random seed")
	reportEvery := flag.Int("report-every", 50, "Progress report cadence in evaluations (0 = silent)")
	output := flag.String("output", "fit-report.json", "Output JSON report path")
	flag.Parse()

	if *reference == "" {
		fmt.Fprintln(os.Stderr, "Error: -reference is required")
		flag.Usage()
		os.Exit(2)
	}

	refSamples, refRate, err := wavio.ReadMono(*reference)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading reference %q: %v\n", *reference, err)
		os.Exit(1)
	}
	refSamples, err = wavio.ResampleIfNeeded(refSamples, refRate, *sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resampling reference: %v\n", err)
		os.Exit(1)
	}

	defs := knobDefs()
	cfg := &optimizationConfig{
		reference:     refSamples,
		sampleRate:    *sampleRate,
		key:           *key,
		strength:      *strength,
		duration:      *duration,
		releaseAfter:  *releaseAfter,
		maxIterations: *iterations,
		population:    *population,
		variant:       *variant,
		seed:          *seed,
		reportEvery:   *reportEvery,
	}

	fmt.Printf("Fitting %d knobs against %s (%d frames at %d Hz)...\n",
		len(defs), *reference, len(refSamples), *sampleRate)

	result, err := runOptimization(cfg, defs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Optimization failed: %v\n", err)
		os.Exit(1)
	}

	report := fitReport{
		Reference:  *reference,
		SampleRate: *sampleRate,
		Key:        *key,
		Evals:      result.evals,
		Variant:    *variant,
		Knobs:      knobMap(defs, result.best),
		Metrics:    result.bestMetrics,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %d evals, best score=%.4f similarity=%.2f%% -> %s\n",
		result.evals, result.bestMetrics.Score, result.bestMetrics.Similarity*100.0, *output)
	for name, v := range report.Knobs {
		fmt.Printf("  %-16s %.4g\n", name, v)
	}
}

func maxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}
