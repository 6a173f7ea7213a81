package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-organ/internal/wavio"
	"github.com/cwbudde/algo-organ/organ"
)

func main() {
	key := flag.Int("key", 69, "MIDI key number (69 = A4 = 440 Hz)")
	strength := flag.Float64("strength", 0.8, "Note-on strength (0..1)")
	duration := flag.Float64("duration", 2.0, "Render duration in seconds")
	releaseAfter := flag.Float64("release-after", 1.0, "Send note-off after this many seconds")
	decayDBFS := flag.Float64("decay-dbfs", math.Inf(1), "Auto-stop when block RMS falls below this dBFS (e.g. -90). Disabled by default")
	maxDuration := flag.Float64("max-duration", 20.0, "Maximum render duration in seconds in auto-decay mode")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	cutoff := flag.Float64("cutoff", 1500.0, "Chassis filter cutoff in Hz")
	pulseDuty := flag.Float64("pulse-duty", 0.3, "Pulse oscillator duty cycle (0..1)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	params := organ.NewDefaultParams()
	params.ChassisCutoff = float32(*cutoff)
	params.PulseDuty = float32(*pulseDuty)

	engine := organ.NewEngine(*sampleRate, params)
	engine.HandleEvent(organ.Event{
		Kind:     organ.EventNoteOn,
		Key:      uint8(*key),
		Strength: float32(*strength),
	})

	autoStop := !math.IsInf(*decayDBFS, 1)
	maxFrames := int(float64(*sampleRate) * (*duration))
	if autoStop {
		maxFrames = int(float64(*sampleRate) * (*maxDuration))
	}
	if maxFrames < 1 {
		maxFrames = 1
	}
	releaseAtFrame := int(float64(*sampleRate) * (*releaseAfter))
	threshold := math.Pow(10.0, *decayDBFS/20.0)

	const blockSize = 128
	block := make([]float32, blockSize)
	samples := make([]float32, 0, maxFrames)
	released := false
	rendered := 0

	for rendered < maxFrames {
		frames := blockSize
		if rendered+frames > maxFrames {
			frames = maxFrames - rendered
		}
		if !released && rendered >= releaseAtFrame {
			engine.HandleEvent(organ.Event{Kind: organ.EventNoteOff, Key: uint8(*key)})
			released = true
		}
		engine.RenderBuffer(block[:frames], 1)
		samples = append(samples, block[:frames]...)
		rendered += frames

		if autoStop && released && blockRMS(block[:frames]) < threshold {
			break
		}
	}

	if err := wavio.WriteMono(*output, samples, *sampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d frames, %.3fs at %d Hz)\n",
		*output, rendered, float64(rendered)/float64(*sampleRate), *sampleRate)
}

func blockRMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
