// ABOUTME: Decoder stream interface and file opener
// ABOUTME: Picks a decoder from the file extension
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// Stream is a decoded, finite sample producer
type Stream interface {
	audio.Reader

	// Format describes the decoded samples
	Format() audio.Format

	// Close releases decoder resources and the underlying input if it is closable
	Close() error
}

// ErrUnsupportedBitDepth is returned for PCM layouts the decoders cannot read.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// Open decodes the file at path, choosing the decoder by extension
func Open(path string) (Stream, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .flac)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}

	var s Stream
	switch ext {
	case ".wav":
		s, err = NewWAV(f)
	case ".mp3":
		s, err = NewMP3(f)
	case ".flac":
		s, err = NewFLAC(f)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// closerOf returns r as an io.Closer, or a no-op closer
func closerOf(r interface{}) io.Closer {
	if c, ok := r.(io.Closer); ok {
		return c
	}
	return io.NopCloser(nil)
}
