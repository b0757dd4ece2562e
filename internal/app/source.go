// ABOUTME: Builds the sample source and destination a run is configured with
// ABOUTME: Generators, decoded files and network streams; devices and files
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Resonate-Protocol/sampleflow/internal/config"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/decode"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/encode"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/generate"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/output"
	"github.com/Resonate-Protocol/sampleflow/pkg/stream"
)

// Generators lists the built-in generator source names
var Generators = []string{"tone", "chord", "sweep", "silence"}

// Input is an opened producer together with its format
type Input struct {
	audio.Reader
	Format audio.Format
	// Length is the expected sample count, or -1 if unknown
	Length int64

	closer    io.Closer
	closeOnce sync.Once
	closeErr  error
}

// Close releases the producer. It is safe to call more than once and
// concurrently with a blocked ReadSample, which it unblocks.
func (in *Input) Close() error {
	in.closeOnce.Do(func() {
		if in.closer != nil {
			in.closeErr = in.closer.Close()
		}
	})
	return in.closeErr
}

// WithGenerator returns cfg with its source replaced by the generator name.
// Only generator names are accepted, so callers may pass untrusted input.
func WithGenerator(cfg config.Config, name string) (config.Config, error) {
	if !slices.Contains(Generators, name) {
		return cfg, fmt.Errorf("unknown generator %q (available: %v)", name, Generators)
	}
	cfg.Source = name
	return cfg, nil
}

// OpenSource builds the configured producer. Generators are bounded by the
// configured duration; files and streams play to their end.
func OpenSource(ctx context.Context, cfg config.Config) (*Input, error) {
	if src := NewGenerator(cfg); src != nil {
		format := audio.Format{SampleRate: cfg.SampleRate, Channels: cfg.Channels}
		n := generate.Samples(cfg.Duration, cfg.SampleRate, cfg.Channels)
		return &Input{Reader: generate.Take(src, n), Format: format, Length: int64(n)}, nil
	}

	if strings.HasPrefix(cfg.Source, "ws://") || strings.HasPrefix(cfg.Source, "wss://") {
		r, err := stream.Dial(ctx, cfg.Source)
		if err != nil {
			return nil, err
		}
		return &Input{Reader: r, Format: r.Format(), Length: -1, closer: r}, nil
	}

	s, err := decode.Open(cfg.Source)
	if err != nil {
		return nil, err
	}
	length := int64(-1)
	if l, ok := s.(interface{ Length() int64 }); ok {
		length = l.Length()
	}
	return &Input{Reader: s, Format: s.Format(), Length: length, closer: s}, nil
}

// NewGenerator returns the infinite generator named by cfg.Source, or nil if
// the source is not a generator
func NewGenerator(cfg config.Config) audio.Source {
	rate, ch := cfg.SampleRate, cfg.Channels
	switch cfg.Source {
	case "tone":
		return generate.NewTone(cfg.Frequency, cfg.Amplitude, rate, ch)
	case "chord":
		// Major triad on the configured root
		freqs := []float64{cfg.Frequency, cfg.Frequency * 1.259921, cfg.Frequency * 1.498307}
		return generate.NewChord(freqs, cfg.Amplitude, rate, ch)
	case "sweep":
		return generate.NewSweep(cfg.Frequency/2, cfg.Frequency*2, cfg.Duration.Seconds(), cfg.Amplitude, rate, ch)
	case "silence":
		return generate.Constant(0)
	}
	return nil
}

// Sink is an opened destination
type Sink struct {
	audio.Destination
	drain func() error
	close func() error
}

// Drain waits until the destination rendered everything it accepted
func (s *Sink) Drain() error {
	if s.drain == nil {
		return nil
	}
	return s.drain()
}

// Close releases the destination
func (s *Sink) Close() error {
	return s.close()
}

// OpenSink builds the configured destination for samples in format. Paths
// ending in .wav, .pcm or .raw are written as files, anything else names an
// output device.
func OpenSink(cfg config.Config, format audio.Format) (*Sink, error) {
	switch strings.ToLower(filepath.Ext(cfg.Output)) {
	case ".wav", ".pcm", ".raw":
		format.BitDepth = cfg.BitDepth
		enc, err := encode.Create(cfg.Output, format)
		if err != nil {
			return nil, err
		}
		return &Sink{Destination: enc, close: enc.Close}, nil
	}

	out, err := output.New(cfg.Output)
	if err != nil {
		return nil, err
	}
	if err := out.Open(format); err != nil {
		return nil, err
	}
	if v, ok := out.(interface{ SetVolume(int) }); ok {
		v.SetVolume(cfg.Volume)
	}
	return &Sink{Destination: out, drain: out.Drain, close: out.Close}, nil
}
