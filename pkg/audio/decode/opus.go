// ABOUTME: Opus audio decoder
// ABOUTME: Decodes a sequence of Opus packets to float samples
package decode

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// maxOpusFrame is the largest Opus frame (120ms at 48kHz) per channel
const maxOpusFrame = 5760

// PacketReader yields encoded packets, returning io.EOF after the last one
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// OpusReader decodes Opus packets
type OpusReader struct {
	decoder *opus.Decoder
	packets PacketReader
	format  audio.Format
	pcm     []float32
	n       int
	pos     int
}

// NewOpus creates an Opus reader pulling packets from packets
func NewOpus(format audio.Format, packets PacketReader) (*OpusReader, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus decoder: %s", format.Codec)
	}

	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &OpusReader{
		decoder: dec,
		packets: packets,
		format:  format,
		pcm:     make([]float32, maxOpusFrame*format.Channels),
	}, nil
}

// ReadSample decodes the next sample, pulling a packet when needed
func (d *OpusReader) ReadSample() (audio.Sample, error) {
	for d.pos == d.n {
		packet, err := d.packets.ReadPacket()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("opus packet read failed: %w", err)
		}

		frames, err := d.decoder.DecodeFloat32(packet, d.pcm)
		if err != nil {
			return 0, fmt.Errorf("opus decode failed: %w", err)
		}
		d.n, d.pos = frames*d.format.Channels, 0
	}

	s := audio.Sample(d.pcm[d.pos])
	d.pos++
	return s, nil
}

func (d *OpusReader) Format() audio.Format { return d.format }

// Close releases decoder resources
func (d *OpusReader) Close() error {
	return nil
}
