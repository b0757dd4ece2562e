// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import (
	"fmt"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// Output represents an audio output device
type Output interface {
	// Play accepts one interleaved sample for playback
	audio.Destination

	// Open initializes the output device
	Open(format audio.Format) error

	// Drain blocks until every accepted sample has been played
	Drain() error

	// Close releases output resources
	Close() error
}

// Names lists the backends New understands
var Names = []string{"oto", "portaudio", "null"}

// New returns the output backend with the given name
func New(name string) (Output, error) {
	switch name {
	case "oto", "":
		return NewOto(), nil
	case "portaudio":
		return NewPortAudio(), nil
	case "null":
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unknown output %q (available: %v)", name, Names)
	}
}

// errNotInitialized is returned by Play before Open succeeded
func errNotInitialized() *audio.PlaybackError {
	return audio.NewPlaybackError("output not initialized")
}
