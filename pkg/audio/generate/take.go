// ABOUTME: Bounds an infinite Source to a fixed number of samples
// ABOUTME: Converts durations to interleaved sample counts
package generate

import (
	"io"
	"time"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// Limited reads at most N samples from a Source
type Limited struct {
	Source audio.Source
	N      int // remaining samples
}

// Take returns a Reader yielding n samples from src, then io.EOF
func Take(src audio.Source, n int) *Limited {
	return &Limited{Source: src, N: n}
}

func (l *Limited) ReadSample() (audio.Sample, error) {
	if l.N <= 0 {
		return 0, io.EOF
	}
	l.N--
	return l.Source.Sample(), nil
}

// Samples returns the interleaved sample count covering d
func Samples(d time.Duration, sampleRate, channels int) int {
	if d <= 0 {
		return 0
	}
	frames := int(d.Seconds() * float64(sampleRate))
	return frames * channels
}
