package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpectralEntropy computes the normalized Shannon entropy of the power
// distribution over a contiguous bin range, inclusive of both endpoints.
// A uniform band yields 1.0; a single-bin concentration yields 0.0.
//
// A band with zero total energy (all silence) produces NaN. This is left
// unguarded deliberately: the degenerate case is the caller's to handle,
// and clamping here would silently change downstream semantics.
type SpectralEntropy struct {
	startBin int
	endBin   int
	probs    []float64
}

// NewSpectralEntropy creates an entropy reducer over [startBin, endBin]
func NewSpectralEntropy(startBin, endBin int) (*SpectralEntropy, error) {
	if startBin < 0 {
		return nil, fmt.Errorf("start bin must be non-negative: %d", startBin)
	}
	if endBin < startBin {
		return nil, fmt.Errorf("end bin (%d) cannot precede start bin (%d)", endBin, startBin)
	}

	return &SpectralEntropy{
		startBin: startBin,
		endBin:   endBin,
		probs:    make([]float64, endBin-startBin+1),
	}, nil
}

// Compute returns the band entropy normalized to [0, 1]
func (se *SpectralEntropy) Compute(power []float64) float64 {
	band := power[se.startBin : se.endBin+1]
	total := floats.Sum(band)

	// total == 0 turns the scale into Inf and the probabilities into NaN,
	// which propagates through the entropy sum
	floats.ScaleTo(se.probs, 1/total, band)

	return stat.Entropy(se.probs) / math.Log(float64(len(se.probs)))
}

// Bounds returns the inclusive bin range
func (se *SpectralEntropy) Bounds() (int, int) {
	return se.startBin, se.endBin
}
