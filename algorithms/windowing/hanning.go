package windowing

import (
	"fmt"
	"math"
)

// Hanning is a periodic Hanning window of fixed length with its kernel
// precomputed once. Apply writes into an internally owned buffer that is
// overwritten on every call, so callers must not retain the result across
// calls.
type Hanning struct {
	length       int
	coefficients []float64
	out          []float64
}

// NewHanning creates a Hanning window of the given length
func NewHanning(length int) (*Hanning, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window length must be positive: %d", length)
	}

	h := &Hanning{
		length:       length,
		coefficients: make([]float64, length),
		out:          make([]float64, length),
	}
	for i := 0; i < length; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(length)))
	}
	return h, nil
}

// Apply multiplies frame by the window kernel. The returned slice is
// borrowed and valid only until the next call.
func (h *Hanning) Apply(frame []float64) ([]float64, error) {
	if len(frame) != h.length {
		return nil, fmt.Errorf("frame length (%d) doesn't match window length (%d)", len(frame), h.length)
	}

	for i, w := range h.coefficients {
		h.out[i] = frame[i] * w
	}
	return h.out, nil
}

// Length returns the window length
func (h *Hanning) Length() int {
	return h.length
}

// Coefficients returns a copy of the window kernel
func (h *Hanning) Coefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}
