// Package audioout drives a Renderer from the system audio device using
// oto v3. The device pulls interleaved float32 frames through an io.Reader
// on its own render goroutine; the sink converts them to the little-endian
// byte stream oto expects without allocating per call.
package audioout

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Renderer produces interleaved frames on demand. RenderBuffer must be
// safe to call repeatedly from a single render goroutine.
type Renderer interface {
	RenderBuffer(buf []float32, channels int)
}

// Sink owns the audio context and the player pulling from a Renderer.
type Sink struct {
	ctx      *oto.Context
	player   *oto.Player
	renderer Renderer
	channels int
	frames   []float32
}

// NewSink opens the default output device at the given rate and channel
// count. Device acquisition failures are fatal for the caller: no
// rendering can happen without a stream.
func NewSink(sampleRate int, channels int, renderer Renderer) (*Sink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   10 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	<-ready

	s := &Sink{
		ctx:      ctx,
		renderer: renderer,
		channels: channels,
		frames:   make([]float32, 4096),
	}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

// Start begins pulling audio from the renderer.
func (s *Sink) Start() {
	s.player.Play()
}

// Close stops playback and releases the device player.
func (s *Sink) Close() error {
	return s.player.Close()
}

// Read fills p with rendered audio. Called by oto on the render goroutine.
func (s *Sink) Read(p []byte) (int, error) {
	samples := len(p) / 4
	// Only whole frames; oto buffer sizes are frame-aligned in practice.
	samples -= samples % s.channels
	if samples == 0 {
		return 0, nil
	}
	if len(s.frames) < samples {
		s.frames = make([]float32, samples)
	}
	buf := s.frames[:samples]
	s.renderer.RenderBuffer(buf, s.channels)
	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return samples * 4, nil
}
