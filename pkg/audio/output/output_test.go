// ABOUTME: Audio output interface tests
// ABOUTME: Verifies backends, the null device and software volume
package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/generate"
)

func TestBackendsImplementOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ Output = (*PortAudio)(nil)
	var _ Output = (*Null)(nil)
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		out, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, out)
	}

	out, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Oto{}, out)

	_, err = New("alsa")
	assert.ErrorContains(t, err, "unknown output")
}

func TestPlayBeforeOpen(t *testing.T) {
	for _, out := range []Output{NewOto(), NewNull()} {
		err := out.Play(0.1)
		var pe *audio.PlaybackError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "output not initialized", pe.Msg)
	}
}

func TestCloseWithoutOpen(t *testing.T) {
	// PortAudio must not be terminated without a matching initialize
	assert.NoError(t, NewPortAudio().Close())
	assert.NoError(t, NewNull().Close())
}

func TestOtoOpenRejectsInvalidFormat(t *testing.T) {
	assert.Error(t, NewOto().Open(audio.Format{SampleRate: 48000}))
}

func TestNullCountsSamples(t *testing.T) {
	out := NewNull()
	require.NoError(t, out.Open(audio.Format{SampleRate: 48000, Channels: 2}))

	n, err := audio.Copy(out, generate.NewTone(440, 0.2, 48000, 2), 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, n)
	assert.EqualValues(t, 1000, out.Played())
	assert.NoError(t, out.Drain())

	require.NoError(t, out.Close())
	assert.Error(t, out.Play(0))
}

func TestNullZeroSamples(t *testing.T) {
	out := NewNull()
	require.NoError(t, out.Open(audio.Format{SampleRate: 8000, Channels: 1}))

	n, err := audio.Copy(out, generate.Constant(0), 0)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, out.Played())
}

func TestVolume(t *testing.T) {
	tests := []struct {
		name   string
		volume int
		muted  bool
		input  audio.Sample
		want   audio.Sample
	}{
		{"full", 100, false, 0.5, 0.5},
		{"half", 50, false, 0.5, 0.25},
		{"muted", 100, true, 0.5, 0},
		{"clamped above", 150, false, 0.5, 0.5},
		{"clamped below", -10, false, 0.5, 0},
		{"clip input", 100, false, 1.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &volume{volume: 100}
			v.SetVolume(tt.volume)
			v.SetMuted(tt.muted)
			assert.Equal(t, tt.want, v.apply(tt.input))
		})
	}
}

func TestGetVolumeMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, getVolumeMultiplier(100, false))
	assert.Equal(t, 0.0, getVolumeMultiplier(100, true))
	assert.Equal(t, 0.3, getVolumeMultiplier(30, false))
}
