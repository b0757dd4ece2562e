// ABOUTME: Test doubles for the sample roles
// ABOUTME: Recorder accepts everything; Rejecter refuses everything
// Package audiotest provides Destination implementations for tests.
package audiotest

import "github.com/Resonate-Protocol/sampleflow/pkg/audio"

// Recorder accepts every sample and keeps it.
type Recorder struct {
	Samples []audio.Sample
}

func (r *Recorder) Play(s audio.Sample) error {
	r.Samples = append(r.Samples, s)
	return nil
}

// Rejecter rejects every sample with the same message.
type Rejecter struct {
	Msg   string
	Calls int
}

// NewRejecter returns a Rejecter that fails with msg
func NewRejecter(msg string) *Rejecter {
	return &Rejecter{Msg: msg}
}

func (r *Rejecter) Play(audio.Sample) error {
	r.Calls++
	return audio.NewPlaybackError(r.Msg)
}

// Flaky rejects the first Failures calls, then accepts and records samples.
type Flaky struct {
	Recorder
	Failures int
	Msg      string
	calls    int
}

func (f *Flaky) Play(s audio.Sample) error {
	f.calls++
	if f.calls <= f.Failures {
		return audio.NewPlaybackError(f.Msg)
	}
	return f.Recorder.Play(s)
}

// Calls returns how many times Play was invoked.
func (f *Flaky) Calls() int {
	return f.calls
}
