// ABOUTME: Null output that discards samples
// ABOUTME: Used for headless runs and tests
package output

import (
	"sync/atomic"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// Null accepts samples and drops them, counting how many it saw
type Null struct {
	format audio.Format
	ready  atomic.Bool
	played atomic.Int64
}

// NewNull creates a new Null output
func NewNull() *Null {
	return &Null{}
}

// Open records the format
func (n *Null) Open(format audio.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}
	n.format = format
	n.ready.Store(true)
	return nil
}

// Play counts the sample
func (n *Null) Play(audio.Sample) error {
	if !n.ready.Load() {
		return errNotInitialized()
	}
	n.played.Add(1)
	return nil
}

// Drain returns immediately
func (n *Null) Drain() error { return nil }

// Close marks the output closed
func (n *Null) Close() error {
	n.ready.Store(false)
	return nil
}

// Played returns the number of samples accepted
func (n *Null) Played() int64 {
	return n.played.Load()
}

// Format returns the format given to Open
func (n *Null) Format() audio.Format {
	return n.format
}
