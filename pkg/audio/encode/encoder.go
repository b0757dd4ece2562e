// ABOUTME: Encoder sink interface and file creator
// ABOUTME: Picks an encoder from the file extension
package encode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// Sink is a Destination holding buffered output until Close
type Sink interface {
	audio.Destination

	// Close flushes pending samples and releases the underlying writer
	Close() error
}

// Create opens path for writing and returns an encoder chosen by extension.
// The codec field of format is filled in by the encoder.
func Create(path string, format audio.Format) (Sink, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".pcm", ".raw":
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: .wav, .pcm, .raw)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	var s Sink
	format.Codec = "pcm"
	if ext == ".wav" {
		s, err = NewWAV(f, format)
	} else {
		s, err = NewPCM(f, format)
	}
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	return s, nil
}

func closerOf(w interface{}) io.Closer {
	if c, ok := w.(io.Closer); ok {
		return c
	}
	return io.NopCloser(nil)
}
