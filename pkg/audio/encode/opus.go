// ABOUTME: Opus audio encoder
// ABOUTME: Collects samples into 20ms frames and emits Opus packets
package encode

import (
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// maxOpusPacket is the largest packet the encoder may produce
const maxOpusPacket = 4000

// PacketWriter receives encoded packets
type PacketWriter interface {
	WritePacket(packet []byte) error
}

// OpusWriter encodes Opus audio
type OpusWriter struct {
	encoder  *opus.Encoder
	packets  PacketWriter
	channels int
	frame    []float32
	data     []byte
}

// NewOpus creates an Opus writer sending packets to packets
func NewOpus(format audio.Format, packets PacketWriter) (*OpusWriter, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus encoder: %s", format.Codec)
	}

	encoder, err := opus.NewEncoder(format.SampleRate, format.Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	// Opus frame size depends on sample rate
	frameSize := format.SampleRate / 50 // 20ms frame

	return &OpusWriter{
		encoder:  encoder,
		packets:  packets,
		channels: format.Channels,
		frame:    make([]float32, 0, frameSize*format.Channels),
		data:     make([]byte, maxOpusPacket),
	}, nil
}

// Play buffers one sample and emits a packet when a frame is complete
func (e *OpusWriter) Play(s audio.Sample) error {
	e.frame = append(e.frame, float32(s))
	if len(e.frame) == cap(e.frame) {
		if err := e.emit(); err != nil {
			return audio.Playbackf("%v", err)
		}
	}
	return nil
}

func (e *OpusWriter) emit() error {
	n, err := e.encoder.EncodeFloat32(e.frame, e.data)
	e.frame = e.frame[:0]
	if err != nil {
		return fmt.Errorf("opus encode error: %w", err)
	}

	packet := make([]byte, n)
	copy(packet, e.data[:n])
	if err := e.packets.WritePacket(packet); err != nil {
		return fmt.Errorf("opus packet write failed: %w", err)
	}
	return nil
}

// Close pads the last partial frame with silence and emits it
func (e *OpusWriter) Close() error {
	if len(e.frame) == 0 {
		return nil
	}
	for len(e.frame) < cap(e.frame) {
		e.frame = append(e.frame, 0)
	}
	return e.emit()
}

// PacketBuffer is an in-memory packet queue usable as both a PacketWriter and
// a packet source for decode.NewOpus
type PacketBuffer struct {
	Packets [][]byte
	next    int
}

func (b *PacketBuffer) WritePacket(packet []byte) error {
	b.Packets = append(b.Packets, packet)
	return nil
}

// ReadPacket returns queued packets in order, then io.EOF
func (b *PacketBuffer) ReadPacket() ([]byte, error) {
	if b.next == len(b.Packets) {
		return nil, io.EOF
	}
	p := b.Packets[b.next]
	b.next++
	return p, nil
}
