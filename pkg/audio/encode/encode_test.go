// ABOUTME: Round-trip tests for WAV and Opus encoders
// ABOUTME: Encodes generated signals and decodes them back with package decode
package encode_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/audiotest"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/decode"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/encode"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/generate"
)

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.wav")
	format := audio.Format{SampleRate: 8000, Channels: 1, BitDepth: 16}

	sink, err := encode.Create(path, format)
	require.NoError(t, err)

	// 5000 samples spans more than one internal chunk
	n, err := audio.CopyAll(sink, generate.Take(generate.NewRamp(-1, 1.0/4096), 5000))
	require.NoError(t, err)
	require.EqualValues(t, 5000, n)
	require.NoError(t, sink.Close())

	src, err := decode.Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 8000, src.Format().SampleRate)
	assert.Equal(t, 1, src.Format().Channels)

	rec := &audiotest.Recorder{}
	got, err := audio.CopyAll(rec, src)
	require.NoError(t, err)
	require.EqualValues(t, 5000, got)

	ramp := generate.NewRamp(-1, 1.0/4096)
	for i, s := range rec.Samples {
		assert.InDelta(t, float64(audio.Clamp(ramp.Sample())), float64(s), 1.0/32768, "sample %d", i)
	}
}

func TestWAVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	sink, err := encode.Create(path, audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 24})
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	src, err := decode.Open(path)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.ReadSample()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCreateUnsupported(t *testing.T) {
	_, err := encode.Create(filepath.Join(t.TempDir(), "out.mp3"), audio.Format{SampleRate: 48000, Channels: 1, BitDepth: 16})
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestCreateInvalidBitDepth(t *testing.T) {
	_, err := encode.Create(filepath.Join(t.TempDir(), "out.pcm"), audio.Format{SampleRate: 48000, Channels: 1, BitDepth: 12})
	assert.ErrorContains(t, err, "unsupported bit depth")
}

func TestNewOpus(t *testing.T) {
	tests := []struct {
		name        string
		format      audio.Format
		errContains string
	}{
		{"48kHz stereo", audio.Format{Codec: "opus", SampleRate: 48000, Channels: 2}, ""},
		{"48kHz mono", audio.Format{Codec: "opus", SampleRate: 48000, Channels: 1}, ""},
		{"invalid codec", audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2}, "invalid codec"},
		{"unsupported rate", audio.Format{Codec: "opus", SampleRate: 44100, Channels: 2}, "failed to create opus encoder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encode.NewOpus(tt.format, &encode.PacketBuffer{})
			if tt.errContains == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errContains)
			}
		})
	}
}

func TestOpusRoundTrip(t *testing.T) {
	format := audio.Format{Codec: "opus", SampleRate: 48000, Channels: 2}
	packets := &encode.PacketBuffer{}

	enc, err := encode.NewOpus(format, packets)
	require.NoError(t, err)

	// 2.5 frames of 20ms stereo: the last frame is padded on Close
	const total = 960 * 2 * 5 / 2
	_, err = audio.CopyAll(enc, generate.Take(generate.NewTone(440, 0.5, 48000, 2), total))
	require.NoError(t, err)
	assert.Len(t, packets.Packets, 2)

	require.NoError(t, enc.Close())
	require.Len(t, packets.Packets, 3)
	for _, p := range packets.Packets {
		assert.NotEmpty(t, p)
	}

	dec, err := decode.NewOpus(format, packets)
	require.NoError(t, err)

	rec := &audiotest.Recorder{}
	n, err := audio.CopyAll(rec, dec)
	require.NoError(t, err)
	assert.EqualValues(t, 3*960*2, n)
}

func TestOpusCloseWithoutSamples(t *testing.T) {
	packets := &encode.PacketBuffer{}
	enc, err := encode.NewOpus(audio.Format{Codec: "opus", SampleRate: 48000, Channels: 1}, packets)
	require.NoError(t, err)

	require.NoError(t, enc.Close())
	assert.Empty(t, packets.Packets)
}
