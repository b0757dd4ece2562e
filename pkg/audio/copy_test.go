package audio_test

import (
	"errors"
	"io"
	"testing"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter emits its value, then increments it by one
type counter struct {
	val audio.Sample
}

func (c *counter) Sample() audio.Sample {
	s := c.val
	c.val++
	return s
}

func TestSourceDestinationRoundTrip(t *testing.T) {
	src := &counter{}
	dest := &audiotest.Recorder{}

	for i := 0; i < 10; i++ {
		require.NoError(t, dest.Play(src.Sample()))
	}

	require.Len(t, dest.Samples, 10)
	want := audio.Sample(0)
	for _, got := range dest.Samples {
		assert.Equal(t, want, got)
		want++
	}
}

func TestPlaybackErrorOnEveryCall(t *testing.T) {
	src := &counter{}
	dest := audiotest.NewRejecter("boom")

	for i := 0; i < 10; i++ {
		err := dest.Play(src.Sample())
		var pe *audio.PlaybackError
		require.True(t, errors.As(err, &pe), "expected playback error")
		assert.Equal(t, "boom", pe.Msg)
	}
	assert.Equal(t, 10, dest.Calls)
}

func TestCopy(t *testing.T) {
	src := &counter{val: 5}
	dest := &audiotest.Recorder{}

	n, err := audio.Copy(dest, src, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []audio.Sample{5, 6, 7, 8}, dest.Samples)
}

func TestCopyZero(t *testing.T) {
	src := &counter{}
	dest := &audiotest.Recorder{}

	n, err := audio.Copy(dest, src, 0)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, dest.Samples)
	assert.Equal(t, audio.Sample(0), src.val, "source must not be pulled")
}

func TestCopyStopsAtFirstError(t *testing.T) {
	src := &counter{}
	dest := &audiotest.Flaky{Failures: 1, Msg: "busy"}

	n, err := audio.Copy(dest, src, 10)
	assert.Zero(t, n)
	assert.EqualError(t, err, "busy")
	assert.Equal(t, 1, dest.Calls())
	assert.Equal(t, audio.Sample(1), src.val)
}

func TestCopyAll(t *testing.T) {
	samples := []audio.Sample{0.1, -0.2, 0.3}
	i := 0
	r := audio.ReaderFunc(func() (audio.Sample, error) {
		if i == len(samples) {
			return 0, io.EOF
		}
		s := samples[i]
		i++
		return s, nil
	})
	dest := &audiotest.Recorder{}

	n, err := audio.CopyAll(dest, r)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, samples, dest.Samples)
}

func TestCopyAllEmpty(t *testing.T) {
	r := audio.ReaderFunc(func() (audio.Sample, error) { return 0, io.EOF })
	dest := &audiotest.Recorder{}

	n, err := audio.CopyAll(dest, r)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, dest.Samples)
}

func TestCopyAllReaderError(t *testing.T) {
	wantErr := errors.New("truncated")
	r := audio.ReaderFunc(func() (audio.Sample, error) { return 0, wantErr })

	_, err := audio.CopyAll(&audiotest.Recorder{}, r)
	assert.ErrorIs(t, err, wantErr)
}

func TestSourceReader(t *testing.T) {
	r := audio.SourceReader(&counter{val: 3})
	for want := audio.Sample(3); want < 6; want++ {
		got, err := r.ReadSample()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFallback(t *testing.T) {
	left := 2
	r := audio.ReaderFunc(func() (audio.Sample, error) {
		if left == 0 {
			return 0, io.EOF
		}
		left--
		return 0.5, nil
	})
	src := audio.Fallback(r, -1)

	assert.Equal(t, audio.Sample(0.5), src.Sample())
	assert.Equal(t, audio.Sample(0.5), src.Sample())
	assert.NoError(t, src.Err())
	assert.Equal(t, audio.Sample(-1), src.Sample())
	assert.Equal(t, audio.Sample(-1), src.Sample())
	assert.ErrorIs(t, src.Err(), io.EOF)
}

func TestFuncAdapters(t *testing.T) {
	var got []audio.Sample
	dst := audio.DestinationFunc(func(s audio.Sample) error {
		got = append(got, s)
		return nil
	})
	src := audio.SourceFunc(func() audio.Sample { return 0.25 })

	n, err := audio.Copy(dst, src, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []audio.Sample{0.25, 0.25, 0.25}, got)
}
