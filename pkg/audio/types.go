// ABOUTME: Audio type definitions
// ABOUTME: Defines the sample roles, endpoint formats and sample conversions
package audio

import (
	"fmt"
	"math"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Sample is one scalar amplitude, nominally in [-1, 1].
type Sample float32

// Source yields the next sample. It has no way to fail; a source that runs
// dry must block or return a value of its own choosing.
type Source interface {
	Sample() Sample
}

// Reader is a producer that can run out or fail. ReadSample returns io.EOF
// once no more samples are available.
type Reader interface {
	ReadSample() (Sample, error)
}

// Destination consumes samples. A nil error means the sample was accepted,
// not necessarily that it was heard. Rejections are *PlaybackError.
type Destination interface {
	Play(s Sample) error
}

// PlaybackError is returned when a Destination rejects a sample.
type PlaybackError struct {
	Msg string
}

// NewPlaybackError returns a PlaybackError carrying msg verbatim.
func NewPlaybackError(msg string) *PlaybackError {
	return &PlaybackError{Msg: msg}
}

// Playbackf formats a PlaybackError message.
func Playbackf(format string, args ...interface{}) *PlaybackError {
	return &PlaybackError{Msg: fmt.Sprintf(format, args...)}
}

func (e *PlaybackError) Error() string {
	return e.Msg
}

// Format describes the sample layout of an endpoint (device, file, stream)
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Validate checks that the format can describe a sample stream
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", f.Channels)
	}
	return nil
}

func (f Format) String() string {
	if f.BitDepth > 0 {
		return fmt.Sprintf("%dHz/%dch/%dbit", f.SampleRate, f.Channels, f.BitDepth)
	}
	return fmt.Sprintf("%dHz/%dch", f.SampleRate, f.Channels)
}

// Clamp limits a sample to [-1, 1]
func Clamp(s Sample) Sample {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

// SampleToInt converts a sample to a signed integer of the given bit depth,
// clipping out-of-range values.
func SampleToInt(s Sample, bitDepth int) int {
	scale := float64(int64(1) << (bitDepth - 1))
	v := math.Round(float64(Clamp(s)) * scale)
	if v > scale-1 {
		v = scale - 1
	}
	return int(v)
}

// SampleFromInt converts a signed integer of the given bit depth to a sample
func SampleFromInt(v int, bitDepth int) Sample {
	scale := float64(int64(1) << (bitDepth - 1))
	return Sample(float64(v) / scale)
}

// SampleToInt16 converts a sample to 16-bit PCM
func SampleToInt16(s Sample) int16 {
	return int16(SampleToInt(s, 16))
}

// SampleFromInt16 converts 16-bit PCM to a sample
func SampleFromInt16(v int16) Sample {
	return SampleFromInt(int(v), 16)
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}
