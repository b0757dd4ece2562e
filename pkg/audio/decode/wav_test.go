// ABOUTME: Tests for WAV decoder and file opener
// ABOUTME: Builds WAV fixtures with go-audio/wav in a temp dir
package decode

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

func writeWAV(t *testing.T, path string, sampleRate, bitDepth, channels int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestWAVDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeWAV(t, path, 44100, 16, 2, []int{0, 16384, -16384, -32768})

	f, err := os.Open(path)
	require.NoError(t, err)

	d, err := NewWAV(f)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, audio.Format{Codec: "pcm", SampleRate: 44100, Channels: 2, BitDepth: 16}, d.Format())

	var got []audio.Sample
	for {
		s, err := d.ReadSample()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, s)
	}
	assert.Equal(t, []audio.Sample{0, 0.5, -0.5, -1}, got)
}

func TestWAVDecode24Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono24.wav")
	writeWAV(t, path, 48000, 24, 1, []int{1 << 22, -(1 << 22)})

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 24, s.Format().BitDepth)

	first, err := s.ReadSample()
	require.NoError(t, err)
	assert.Equal(t, audio.Sample(0.5), first)

	second, err := s.ReadSample()
	require.NoError(t, err)
	assert.Equal(t, audio.Sample(-0.5), second)
}

func TestWAVInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not riff"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestOpenUnsupportedExtension(t *testing.T) {
	_, err := Open("song.ogg")
	assert.ErrorContains(t, err, "unsupported audio format")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.flac"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
