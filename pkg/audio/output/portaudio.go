//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output using PortAudio's blocking stream API
package output

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/sampleflow/internal/log"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// portAudioFrames is the stream's frames per buffer
const portAudioFrames = 512

// PortAudio output implementation
type PortAudio struct {
	volume
	stream *portaudio.Stream
	buffer []float32
	filled int
	log    *logrus.Entry
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() *PortAudio {
	return &PortAudio{
		volume: volume{volume: 100},
		log:    log.WithComponent("portaudio"),
	}
}

// Open initializes PortAudio and starts the default output stream
func (p *PortAudio) Open(format audio.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.buffer = make([]float32, portAudioFrames*format.Channels)
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), portAudioFrames, &p.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	p.log.WithField("format", format.String()).Info("Audio output initialized")
	return nil
}

// Play fills the stream buffer and writes it when full
func (p *PortAudio) Play(s audio.Sample) error {
	if p.stream == nil {
		return errNotInitialized()
	}

	p.buffer[p.filled] = float32(p.apply(s))
	p.filled++
	if p.filled == len(p.buffer) {
		p.filled = 0
		if err := p.stream.Write(); err != nil {
			return audio.Playbackf("portaudio write failed: %v", err)
		}
	}
	return nil
}

// Drain pads the partial buffer with silence and writes it
func (p *PortAudio) Drain() error {
	if p.stream == nil || p.filled == 0 {
		return nil
	}
	for i := p.filled; i < len(p.buffer); i++ {
		p.buffer[i] = 0
	}
	p.filled = 0
	if err := p.stream.Write(); err != nil {
		return fmt.Errorf("portaudio write failed: %w", err)
	}
	return nil
}

// Close stops the stream and terminates PortAudio. Open is the only place
// that initializes PortAudio, so an unopened output has nothing to release.
func (p *PortAudio) Close() error {
	if p.stream == nil {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return err
	}
	if err := p.stream.Close(); err != nil {
		return err
	}
	p.stream = nil
	p.filled = 0
	return portaudio.Terminate()
}
