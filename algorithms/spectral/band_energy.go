package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// BandEnergy sums power over a contiguous bin range, inclusive of both
// endpoints
type BandEnergy struct {
	startBin int
	endBin   int
}

// NewBandEnergy creates a band energy reducer over [startBin, endBin]
func NewBandEnergy(startBin, endBin int) (*BandEnergy, error) {
	if startBin < 0 {
		return nil, fmt.Errorf("start bin must be non-negative: %d", startBin)
	}
	if endBin < startBin {
		return nil, fmt.Errorf("end bin (%d) cannot precede start bin (%d)", endBin, startBin)
	}

	return &BandEnergy{startBin: startBin, endBin: endBin}, nil
}

// Compute returns the inclusive sum of power[startBin..endBin]
func (be *BandEnergy) Compute(power []float64) float64 {
	return floats.Sum(power[be.startBin : be.endBin+1])
}

// Bounds returns the inclusive bin range
func (be *BandEnergy) Bounds() (int, int) {
	return be.startBin, be.endBin
}
