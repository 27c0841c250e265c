package spectral

import (
	"fmt"
)

// PackedIndex maps power-spectrum bin k to the slots holding its real and
// imaginary components in a packed RealFFT output. The layout blocks four
// bins at a time (four real slots followed by their four imaginary slots),
// so the mapping is i = k + (k &^ 3), j = i + 4 rather than a contiguous
// re/im pairing. Bin 0 is special: slot 0 holds DC and slot 4 holds
// Nyquist, both purely real.
//
// Every consumer of the packed spectrum must go through this function;
// the arithmetic is tied to the transform's permutation scheme and is not
// interchangeable with a natural complex-pair layout.
func PackedIndex(k int) (int, int) {
	i := k + (k &^ 3)
	return i, i + 4
}

// PowerSpectrum derives magnitude-squared power bins from a packed FFT
// spectrum. The output buffer is internally owned and overwritten on each
// call.
type PowerSpectrum struct {
	numBins int
	out     []float64
}

// NewPowerSpectrum creates a power spectrum stage for packed spectra of
// fftSize points
func NewPowerSpectrum(fftSize int) (*PowerSpectrum, error) {
	if fftSize < 8 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two >= 8: %d", fftSize)
	}

	return &PowerSpectrum{
		numBins: fftSize / 2,
		out:     make([]float64, fftSize/2),
	}, nil
}

// Compute returns fftSize/2 power bins for the packed spectrum. The
// returned slice is borrowed and valid only until the next call.
func (ps *PowerSpectrum) Compute(packed []float64) []float64 {
	for k := 0; k < ps.numBins; k++ {
		i, j := PackedIndex(k)
		ps.out[k] = packed[i]*packed[i] + packed[j]*packed[j]
	}
	return ps.out
}

// NumBins returns the number of power bins produced per frame
func (ps *PowerSpectrum) NumBins() int {
	return ps.numBins
}
