// ABOUTME: WAV audio encoder
// ABOUTME: Writes integer PCM WAV files through go-audio/wav
package encode

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

const wavChunkSize = 4096

// WAVWriter encodes a WAV file
type WAVWriter struct {
	encoder  *wav.Encoder
	closer   io.Closer
	bitDepth int
	buf      *goaudio.IntBuffer
}

// NewWAV creates a WAV writer over w
func NewWAV(w io.WriteSeeker, format audio.Format) (*WAVWriter, error) {
	if format.BitDepth != 16 && format.BitDepth != 24 && format.BitDepth != 32 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", format.BitDepth)
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &WAVWriter{
		encoder:  wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, 1),
		closer:   closerOf(w),
		bitDepth: format.BitDepth,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: format.Channels,
				SampleRate:  format.SampleRate,
			},
			Data:           make([]int, 0, wavChunkSize*format.Channels),
			SourceBitDepth: format.BitDepth,
		},
	}, nil
}

// Play buffers one sample, writing a chunk to the encoder when full
func (e *WAVWriter) Play(s audio.Sample) error {
	e.buf.Data = append(e.buf.Data, audio.SampleToInt(s, e.bitDepth))
	if len(e.buf.Data) == cap(e.buf.Data) {
		if err := e.flush(); err != nil {
			return audio.Playbackf("wav write failed: %v", err)
		}
	}
	return nil
}

func (e *WAVWriter) flush() error {
	if len(e.buf.Data) == 0 {
		return nil
	}
	err := e.encoder.Write(e.buf)
	e.buf.Data = e.buf.Data[:0]
	return err
}

// Close writes pending samples, finalizes the header and closes the writer
func (e *WAVWriter) Close() error {
	if err := e.flush(); err != nil {
		e.closer.Close()
		return fmt.Errorf("wav write failed: %w", err)
	}
	if err := e.encoder.Close(); err != nil {
		e.closer.Close()
		return fmt.Errorf("wav finalize failed: %w", err)
	}
	return e.closer.Close()
}
