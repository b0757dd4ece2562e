// ABOUTME: Arithmetic and constant generators
// ABOUTME: Ramp emits then steps; Constant repeats a single value
package generate

import "github.com/Resonate-Protocol/sampleflow/pkg/audio"

// Ramp emits its current value, then adds Step
type Ramp struct {
	Value audio.Sample
	Step  audio.Sample
}

// NewRamp creates a ramp starting at start
func NewRamp(start, step audio.Sample) *Ramp {
	return &Ramp{Value: start, Step: step}
}

func (r *Ramp) Sample() audio.Sample {
	s := r.Value
	r.Value += r.Step
	return s
}

// Constant emits the same value forever. Constant(0) is silence.
type Constant audio.Sample

func (c Constant) Sample() audio.Sample {
	return audio.Sample(c)
}
