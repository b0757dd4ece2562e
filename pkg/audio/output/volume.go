// ABOUTME: Software volume and mute shared by output backends
// ABOUTME: Scales samples by a 0-100 volume with clipping protection
package output

import (
	"sync"

	"github.com/Resonate-Protocol/sampleflow/internal/log"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// volume holds software volume state
type volume struct {
	mu     sync.RWMutex
	volume int
	muted  bool
}

// SetVolume sets the volume (0-100)
func (v *volume) SetVolume(vol int) {
	if vol < 0 {
		vol = 0
	}
	if vol > 100 {
		vol = 100
	}
	v.mu.Lock()
	v.volume = vol
	v.mu.Unlock()
	log.WithComponent("output").Debugf("Volume set to %d", vol)
}

// SetMuted sets mute state
func (v *volume) SetMuted(muted bool) {
	v.mu.Lock()
	v.muted = muted
	v.mu.Unlock()
	log.WithComponent("output").Debugf("Muted: %v", muted)
}

// GetVolume returns current volume
func (v *volume) GetVolume() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.volume
}

// IsMuted returns mute state
func (v *volume) IsMuted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.muted
}

// apply scales a sample by the current volume and clamps it
func (v *volume) apply(s audio.Sample) audio.Sample {
	v.mu.RLock()
	multiplier := getVolumeMultiplier(v.volume, v.muted)
	v.mu.RUnlock()
	return audio.Clamp(s * audio.Sample(multiplier))
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
