package audio

import (
	"math/rand"
)

// Ditherer adds low-amplitude uniform noise to decoded samples so that
// quantization artifacts do not show up as spectral lines. Samples carry
// raw integer amplitude, so a scale of 1.0 spans one quantization step.
type Ditherer struct {
	scale float64
	rng   *rand.Rand
}

// NewDitherer creates a ditherer with the given noise scale and seed
func NewDitherer(scale float64, seed int64) *Ditherer {
	return &Ditherer{
		scale: scale,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Apply adds noise in [-scale, +scale] to frame in place and returns it
func (d *Ditherer) Apply(frame []float64) []float64 {
	for i := range frame {
		frame[i] += (d.rng.Float64()*2 - 1) * d.scale
	}
	return frame
}

// Scale returns the configured noise scale
func (d *Ditherer) Scale() float64 {
	return d.scale
}
