//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"errors"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

var errNoPortAudio = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio struct {
	volume
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() *PortAudio {
	return &PortAudio{volume: volume{volume: 100}}
}

// Open reports that PortAudio is unavailable
func (p *PortAudio) Open(audio.Format) error {
	return errNoPortAudio
}

// Play rejects every sample
func (p *PortAudio) Play(audio.Sample) error {
	return audio.NewPlaybackError(errNoPortAudio.Error())
}

// Drain is a no-op
func (p *PortAudio) Drain() error { return nil }

// Close is a no-op since Open never succeeds
func (p *PortAudio) Close() error { return nil }
