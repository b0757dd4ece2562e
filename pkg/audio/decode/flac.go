// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC frames through mewkiz/flac and interleaves channels
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// FLACReader decodes FLAC audio
type FLACReader struct {
	stream *flac.Stream
	format audio.Format
	buf    []audio.Sample
	pos    int
	closer io.Closer
}

// NewFLAC creates a FLAC reader over r
func NewFLAC(r io.Reader) (*FLACReader, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	return &FLACReader{
		stream: stream,
		format: audio.Format{
			Codec:      "flac",
			SampleRate: int(info.SampleRate),
			Channels:   int(info.NChannels),
			BitDepth:   int(info.BitsPerSample),
		},
		closer: closerOf(r),
	}, nil
}

// ReadSample decodes the next sample, parsing a new frame when needed
func (d *FLACReader) ReadSample() (audio.Sample, error) {
	for d.pos == len(d.buf) {
		frame, err := d.stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("flac decode error: %w", err)
		}
		channels := make([][]int32, len(frame.Subframes))
		for i, sub := range frame.Subframes {
			channels[i] = sub.Samples
		}
		d.buf = interleave(d.buf[:0], channels, int(frame.BlockSize), d.format.BitDepth)
		d.pos = 0
	}

	s := d.buf[d.pos]
	d.pos++
	return s, nil
}

// interleave flattens per-channel blocks into frame order
func interleave(dst []audio.Sample, channels [][]int32, blockSize, bitDepth int) []audio.Sample {
	for i := 0; i < blockSize; i++ {
		for _, ch := range channels {
			dst = append(dst, audio.SampleFromInt(int(ch[i]), bitDepth))
		}
	}
	return dst
}

func (d *FLACReader) Format() audio.Format { return d.format }

// Close releases the decoder and the underlying input. flac.New buffers its
// input, so the stream itself cannot reach the original closer.
func (d *FLACReader) Close() error {
	err := d.stream.Close()
	if cerr := d.closer.Close(); err == nil {
		err = cerr
	}
	return err
}
