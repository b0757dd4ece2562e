// ABOUTME: Tests for signal generators
// ABOUTME: Checks sequence order, channel interleaving, amplitude bounds and Take
package generate

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRampThroughDestination(t *testing.T) {
	rec := &audiotest.Recorder{}
	n, err := audio.Copy(rec, NewRamp(0, 1), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, []audio.Sample{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, rec.Samples)
}

func TestRampStep(t *testing.T) {
	r := NewRamp(1, -0.5)
	assert.Equal(t, audio.Sample(1), r.Sample())
	assert.Equal(t, audio.Sample(0.5), r.Sample())
	assert.Equal(t, audio.Sample(0), r.Sample())
}

func TestRampRejectingDestination(t *testing.T) {
	src := NewRamp(0, 1)
	dst := audiotest.NewRejecter("boom")
	for i := 0; i < 10; i++ {
		err := dst.Play(src.Sample())
		require.Error(t, err)
		assert.Equal(t, "boom", err.Error())
	}
}

func TestConstant(t *testing.T) {
	c := Constant(0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, audio.Sample(0), c.Sample())
	}
}

func TestToneStartsAtZeroAndStaysInAmplitude(t *testing.T) {
	tone := NewTone(440, 0.2, 48000, 1)
	assert.Equal(t, audio.Sample(0), tone.Sample())

	for i := 0; i < 48000; i++ {
		s := tone.Sample()
		assert.LessOrEqual(t, math.Abs(float64(s)), 0.2+1e-6)
	}
}

func TestTonePeak(t *testing.T) {
	// At 12kHz with a 48kHz rate, frame 1 lands on the sine's peak
	tone := NewTone(12000, 0.5, 48000, 1)
	tone.Sample()
	assert.InDelta(t, 0.5, float64(tone.Sample()), 1e-6)
}

func TestToneDuplicatesChannels(t *testing.T) {
	tone := NewTone(1000, 1, 8000, 2)
	for i := 0; i < 16; i++ {
		left := tone.Sample()
		right := tone.Sample()
		assert.Equal(t, left, right, "frame %d", i)
	}
}

func TestChordAveragesWithinAmplitude(t *testing.T) {
	chord := NewChord([]float64{440, 554.37, 659.25}, 0.8, 48000, 1)
	for i := 0; i < 4800; i++ {
		assert.LessOrEqual(t, math.Abs(float64(chord.Sample())), 0.8+1e-6)
	}

	empty := NewChord(nil, 1, 48000, 1)
	assert.Equal(t, audio.Sample(0), empty.Sample())
}

func TestSweepLoops(t *testing.T) {
	// Period of 10 frames at 10Hz sample rate: frame 10 restarts at t=0
	sweep := NewSweep(1, 4, 1, 1, 10, 1)
	first := make([]audio.Sample, 10)
	for i := range first {
		first[i] = sweep.Sample()
	}
	for i := range first {
		assert.InDelta(t, float64(first[i]), float64(sweep.Sample()), 1e-5, "frame %d", i)
	}
}

func TestTake(t *testing.T) {
	r := Take(NewRamp(0, 1), 3)
	rec := &audiotest.Recorder{}

	n, err := audio.CopyAll(rec, r)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, []audio.Sample{0, 1, 2}, rec.Samples)

	_, err = r.ReadSample()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTakeZero(t *testing.T) {
	ramp := NewRamp(0, 1)
	_, err := Take(ramp, 0).ReadSample()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, audio.Sample(0), ramp.Value, "source must not be pulled")
}

func TestSamples(t *testing.T) {
	assert.Equal(t, 24000, Samples(250*time.Millisecond, 48000, 2))
	assert.Equal(t, 44100, Samples(time.Second, 44100, 1))
	assert.Equal(t, 0, Samples(0, 48000, 2))
	assert.Equal(t, 0, Samples(-time.Second, 48000, 2))
}
