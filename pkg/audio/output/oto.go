// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams float32 samples to the device with software volume control
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/sampleflow/internal/log"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// otoChunkFrames is how many frames are collected before a pipe write
const otoChunkFrames = 512

// Oto output implementation using oto library
type Oto struct {
	volume
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	format     audio.Format
	pending    []byte
	ready      bool
	log        *logrus.Entry
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{
		volume: volume{volume: 100},
		log:    log.WithComponent("oto"),
	}
}

// Open initializes the output device
func (o *Oto) Open(format audio.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}

	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.format.SampleRate == format.SampleRate && o.format.Channels == format.Channels {
		o.log.Debug("Audio output already initialized with same format, reusing context")
		if err := o.otoCtx.Resume(); err != nil {
			return fmt.Errorf("failed to resume oto context: %w", err)
		}
		return o.startPlayer()
	}

	// oto allows one context per process, so a format change cannot be honored
	if o.otoCtx != nil {
		return fmt.Errorf("format change %s -> %s not supported by oto", o.format, format)
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.format = format
	o.pending = make([]byte, 0, otoChunkFrames*format.Channels*4)

	if err := o.startPlayer(); err != nil {
		return err
	}

	o.log.WithFields(logrus.Fields{
		"sample_rate": format.SampleRate,
		"channels":    format.Channels,
	}).Info("Audio output initialized")

	return nil
}

// startPlayer creates a persistent player fed from a fresh pipe
func (o *Oto) startPlayer() error {
	if o.player != nil {
		return nil
	}
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true
	return nil
}

// Play queues one sample. Samples reach the device in chunks; a Play call
// blocks while a chunk is being handed to the player.
func (o *Oto) Play(s audio.Sample) error {
	if !o.ready {
		return errNotInitialized()
	}

	o.pending = binary.LittleEndian.AppendUint32(o.pending, math.Float32bits(float32(o.apply(s))))
	if len(o.pending) == cap(o.pending) {
		if err := o.flush(); err != nil {
			return audio.Playbackf("pipe write failed: %v", err)
		}
	}
	return nil
}

func (o *Oto) flush() error {
	if len(o.pending) == 0 {
		return nil
	}
	_, err := o.pipeWriter.Write(o.pending)
	o.pending = o.pending[:0]
	return err
}

// Drain flushes pending samples and blocks until the player has consumed
// everything. The output stays usable afterwards.
func (o *Oto) Drain() error {
	if !o.ready {
		return nil
	}
	if err := o.flush(); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	// Closing the writer lets the player hit EOF once its buffer is empty
	o.pipeWriter.Close()
	for o.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	err := o.player.Close()
	o.pipeReader.Close()
	o.player = nil
	o.ready = false
	if err != nil {
		return fmt.Errorf("player close failed: %w", err)
	}
	return o.startPlayer()
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			o.log.WithError(err).Warn("oto suspend failed")
		}
	}
	o.ready = false
	return nil
}
