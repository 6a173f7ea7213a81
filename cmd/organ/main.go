package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-organ/internal/audioout"
	"github.com/cwbudde/algo-organ/internal/midiin"
	"github.com/cwbudde/algo-organ/organ"
)

func main() {
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	channels := flag.Int("channels", 2, "Output channel count (mono signal broadcast to all)")
	portName := flag.String("port-name", "algo-organ", "Name of the virtual MIDI input port")
	targetPressure := flag.Float64("target-pressure", 1.0, "Static plenum pressure the pump refills towards")
	refillSpeed := flag.Float64("refill-speed", 10.0, "Plenum refill speed")
	valveFlow := flag.Float64("valve-flow", 0.6, "Valve flow coefficient")
	pulseDuty := flag.Float64("pulse-duty", 0.3, "Pulse oscillator duty cycle (0..1)")
	sagDepth := flag.Float64("sag-depth", 0.06, "Pitch sag depth per unit pressure deficit")
	cutoff := flag.Float64("cutoff", 1500.0, "Chassis filter cutoff in Hz")
	springReturn := flag.Float64("spring-return", 25.0, "Valve spring-return speed")
	flag.Parse()

	params := organ.NewDefaultParams()
	params.TargetPressure = float32(*targetPressure)
	params.RefillSpeed = float32(*refillSpeed)
	params.ValveFlow = float32(*valveFlow)
	params.PulseDuty = float32(*pulseDuty)
	params.PitchSagDepth = float32(*sagDepth)
	params.ChassisCutoff = float32(*cutoff)
	params.SpringReturn = float32(*springReturn)

	engine := organ.NewEngine(*sampleRate, params)

	port, err := midiin.Open(*portName, engine.Events())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening MIDI input: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	sink, err := audioout.NewSink(*sampleRate, *channels, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio output: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()
	sink.Start()

	fmt.Printf("algo-organ listening on MIDI port %q at %d Hz, %d channel(s). Ctrl-C to quit.\n",
		*portName, *sampleRate, *channels)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("\nShutting down.")
}
