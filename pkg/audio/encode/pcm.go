// ABOUTME: PCM audio encoder
// ABOUTME: Encodes samples to little-endian 16-bit or 24-bit PCM bytes
package encode

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// PCMWriter encodes PCM audio
type PCMWriter struct {
	w        *bufio.Writer
	closer   io.Closer
	bitDepth int
	buf      [3]byte
}

// NewPCM creates a PCM writer over w
func NewPCM(w io.Writer, format audio.Format) (*PCMWriter, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	return &PCMWriter{
		w:        bufio.NewWriterSize(w, 8192),
		closer:   closerOf(w),
		bitDepth: format.BitDepth,
	}, nil
}

// Play encodes one sample
func (e *PCMWriter) Play(s audio.Sample) error {
	var b []byte
	if e.bitDepth == 24 {
		e.buf = audio.SampleTo24Bit(int32(audio.SampleToInt(s, 24)))
		b = e.buf[:]
	} else {
		binary.LittleEndian.PutUint16(e.buf[:2], uint16(audio.SampleToInt16(s)))
		b = e.buf[:2]
	}

	if _, err := e.w.Write(b); err != nil {
		return audio.Playbackf("pcm write failed: %v", err)
	}
	return nil
}

// Close flushes buffered bytes and closes the writer
func (e *PCMWriter) Close() error {
	if err := e.w.Flush(); err != nil {
		e.closer.Close()
		return fmt.Errorf("pcm flush failed: %w", err)
	}
	return e.closer.Close()
}
