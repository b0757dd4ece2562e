// ABOUTME: Sine wave generators
// ABOUTME: Single tone, averaged chord and looping linear sweep
package generate

import (
	"math"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// frames tracks the interleaved position of a multi-channel generator
type frames struct {
	sampleRate int
	channels   int
	index      uint64 // current frame
	channel    int    // next channel within the frame
	value      float64
}

func newFrames(sampleRate, channels int) frames {
	if channels < 1 {
		channels = 1
	}
	return frames{sampleRate: sampleRate, channels: channels}
}

// next returns the value for the current frame, computing it with gen on the
// first channel and repeating it for the others.
func (f *frames) next(gen func(t float64) float64) audio.Sample {
	if f.channel == 0 {
		t := float64(f.index) / float64(f.sampleRate)
		f.value = gen(t)
	}
	f.channel++
	if f.channel == f.channels {
		f.channel = 0
		f.index++
	}
	return audio.Sample(f.value)
}

// Tone generates a sine wave
type Tone struct {
	Frequency float64
	Amplitude float64
	frames
}

// NewTone creates a sine generator at frequency Hz scaled by amplitude
func NewTone(frequency, amplitude float64, sampleRate, channels int) *Tone {
	return &Tone{
		Frequency: frequency,
		Amplitude: amplitude,
		frames:    newFrames(sampleRate, channels),
	}
}

func (s *Tone) Sample() audio.Sample {
	return s.next(func(t float64) float64 {
		return s.Amplitude * math.Sin(2*math.Pi*s.Frequency*t)
	})
}

// Chord mixes several sine waves with equal weight
type Chord struct {
	Frequencies []float64
	Amplitude   float64
	frames
}

// NewChord creates a generator averaging sines at the given frequencies
func NewChord(frequencies []float64, amplitude float64, sampleRate, channels int) *Chord {
	return &Chord{
		Frequencies: frequencies,
		Amplitude:   amplitude,
		frames:      newFrames(sampleRate, channels),
	}
}

func (s *Chord) Sample() audio.Sample {
	return s.next(func(t float64) float64 {
		if len(s.Frequencies) == 0 {
			return 0
		}
		var mixed float64
		for _, freq := range s.Frequencies {
			mixed += math.Sin(2 * math.Pi * freq * t)
		}
		return s.Amplitude * mixed / float64(len(s.Frequencies))
	})
}

// Sweep generates a linear chirp from StartFreq to EndFreq, restarting every
// Period seconds
type Sweep struct {
	StartFreq float64
	EndFreq   float64
	Period    float64
	Amplitude float64
	frames
}

// NewSweep creates a looping frequency sweep
func NewSweep(startFreq, endFreq, period, amplitude float64, sampleRate, channels int) *Sweep {
	return &Sweep{
		StartFreq: startFreq,
		EndFreq:   endFreq,
		Period:    period,
		Amplitude: amplitude,
		frames:    newFrames(sampleRate, channels),
	}
}

func (s *Sweep) Sample() audio.Sample {
	return s.next(func(t float64) float64 {
		if s.Period > 0 {
			t = math.Mod(t, s.Period)
		}
		// Phase of a linear chirp: 2π(f0·t + k·t²/2)
		var k float64
		if s.Period > 0 {
			k = (s.EndFreq - s.StartFreq) / s.Period
		}
		phase := 2 * math.Pi * (s.StartFreq*t + k*t*t/2)
		return s.Amplitude * math.Sin(phase)
	})
}
