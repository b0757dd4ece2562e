// ABOUTME: PCM audio decoder
// ABOUTME: Decodes little-endian 16-bit and 24-bit PCM bytes to samples
package decode

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// PCMReader decodes raw PCM
type PCMReader struct {
	r      *bufio.Reader
	closer io.Closer
	format audio.Format
	buf    [3]byte
}

// NewPCM creates a PCM reader over r
func NewPCM(r io.Reader, format audio.Format) (*PCMReader, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}
	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("%w: %d (supported: 16, 24)", ErrUnsupportedBitDepth, format.BitDepth)
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &PCMReader{
		r:      bufio.NewReaderSize(r, 8192),
		closer: closerOf(r),
		format: format,
	}, nil
}

// ReadSample decodes the next sample
func (d *PCMReader) ReadSample() (audio.Sample, error) {
	width := d.format.BitDepth / 8
	if _, err := io.ReadFull(d.r, d.buf[:width]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("truncated %d-bit sample: %w", d.format.BitDepth, err)
		}
		return 0, err
	}

	if width == 3 {
		return audio.SampleFromInt(int(audio.SampleFrom24Bit(d.buf)), 24), nil
	}
	return audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(d.buf[:2]))), nil
}

func (d *PCMReader) Format() audio.Format { return d.format }

// Close releases resources
func (d *PCMReader) Close() error {
	return d.closer.Close()
}
