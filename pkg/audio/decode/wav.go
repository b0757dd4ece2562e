// ABOUTME: WAV audio decoder
// ABOUTME: Reads integer PCM WAV files through go-audio/wav
package decode

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

const wavChunkSize = 4096

// WAVReader decodes a WAV file
type WAVReader struct {
	decoder *wav.Decoder
	closer  io.Closer
	format  audio.Format
	buf     *goaudio.IntBuffer
	n       int // valid samples in buf
	pos     int
}

// NewWAV creates a WAV reader. Only integer PCM at 16, 24 or 32 bits is supported.
func NewWAV(r io.ReadSeeker) (*WAVReader, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}
	if decoder.WavAudioFormat != 1 {
		return nil, fmt.Errorf("unsupported WAV encoding: %d (only integer PCM)", decoder.WavAudioFormat)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return nil, fmt.Errorf("%w: %d (supported: 16, 24, 32)", ErrUnsupportedBitDepth, bitDepth)
	}

	goFormat := decoder.Format()
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: int(decoder.SampleRate),
		Channels:   goFormat.NumChannels,
		BitDepth:   bitDepth,
	}

	return &WAVReader{
		decoder: decoder,
		closer:  closerOf(r),
		format:  format,
		buf: &goaudio.IntBuffer{
			Format:         goFormat,
			Data:           make([]int, wavChunkSize*format.Channels),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// ReadSample decodes the next sample
func (d *WAVReader) ReadSample() (audio.Sample, error) {
	if d.pos == d.n {
		n, err := d.decoder.PCMBuffer(d.buf)
		if err != nil {
			return 0, fmt.Errorf("wav decode error: %w", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		d.n, d.pos = n, 0
	}

	s := audio.SampleFromInt(d.buf.Data[d.pos], d.format.BitDepth)
	d.pos++
	return s, nil
}

func (d *WAVReader) Format() audio.Format { return d.format }

// Close releases resources
func (d *WAVReader) Close() error {
	return d.closer.Close()
}
