package spectral

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-features/logging"
)

// RealFFT is an in-place, fixed-size real-input FFT. A length-N real
// transform is computed as a length-N/2 complex FFT over packed
// (even, odd) sample pairs followed by an O(N) recombination pass, using
// cos/sin factors and a bit-reversal/zero-pad permutation table that are
// built once at construction and read-only afterwards.
//
// The transform is forward and unnormalized: no 1/N factor is applied, so
// callers must not assume unitary magnitude scale. Output uses the packed
// blocked layout described by PackedIndex.
type RealFFT struct {
	fftSize    int
	windowSize int
	halfSize   int
	log2Size   int

	cosTab []float64
	sinTab []float64
	// perm[p] is the bit-reversed destination of sample pair p, or -1
	// where sample position 2p lies beyond windowSize (implicit zero-pad)
	perm []int16

	work []float64
	out  []float64

	logger logging.Logger
}

// NewRealFFT creates a transform of fftSize points over windowSize input
// samples. fftSize must be a power of two >= 8 and >= windowSize.
func NewRealFFT(fftSize, windowSize int) (*RealFFT, error) {
	if fftSize < 8 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two >= 8: %d", fftSize)
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive: %d", windowSize)
	}
	if windowSize > fftSize {
		return nil, fmt.Errorf("window size (%d) cannot exceed fft size (%d)", windowSize, fftSize)
	}
	if fftSize/2 > math.MaxInt16 {
		return nil, fmt.Errorf("fft size too large for permutation table: %d", fftSize)
	}

	f := &RealFFT{
		fftSize:    fftSize,
		windowSize: windowSize,
		halfSize:   fftSize / 2,
		cosTab:     make([]float64, fftSize),
		sinTab:     make([]float64, fftSize),
		perm:       make([]int16, fftSize/2),
		work:       make([]float64, fftSize),
		out:        make([]float64, fftSize),
		logger: logging.WithFields(logging.Fields{
			"component":   "real_fft",
			"fft_size":    fftSize,
			"window_size": windowSize,
		}),
	}

	for f.fftSize>>f.log2Size != 1 {
		f.log2Size++
	}

	for t := 0; t < fftSize; t++ {
		angle := 2 * math.Pi * float64(t) / float64(fftSize)
		f.cosTab[t] = math.Cos(angle)
		f.sinTab[t] = math.Sin(angle)
	}

	revBits := f.log2Size - 1
	for p := 0; p < f.halfSize; p++ {
		if 2*p >= windowSize {
			f.perm[p] = -1
			continue
		}
		rev := 0
		for b := 0; b < revBits; b++ {
			rev = rev<<1 | (p >> b & 1)
		}
		f.perm[p] = int16(rev)
	}

	return f, nil
}

// Transform computes the packed half-spectrum of input. The input must
// hold exactly windowSize samples. The returned slice is internally owned
// and overwritten by the next call.
func (f *RealFFT) Transform(input []float64) []float64 {
	f.scatter(input)
	f.butterflies()
	f.recombine()
	return f.out
}

// scatter distributes the input samples into bit-reversed re/im pairs for
// the half-size complex transform, zero-filling positions past windowSize
func (f *RealFFT) scatter(input []float64) {
	for i := range f.work {
		f.work[i] = 0
	}
	for p, rev := range f.perm {
		if rev < 0 {
			continue
		}
		f.work[2*rev] = input[2*p]
		if 2*p+1 < f.windowSize {
			f.work[2*rev+1] = input[2*p+1]
		}
	}
}

// butterflies runs the iterative complex FFT over the half-size sequence.
// The length-2 and length-4 passes need no twiddle multiplies and are
// handled directly; larger blocks index the precomputed root table.
func (f *RealFFT) butterflies() {
	w := f.work
	half := f.halfSize

	for s := 0; s < half; s += 2 {
		a, b := 2*s, 2*s+2
		tr, ti := w[b], w[b+1]
		w[b], w[b+1] = w[a]-tr, w[a+1]-ti
		w[a], w[a+1] = w[a]+tr, w[a+1]+ti
	}

	if half >= 4 {
		for s := 0; s < half; s += 4 {
			a, b := 2*s, 2*s+4
			tr, ti := w[b], w[b+1]
			w[b], w[b+1] = w[a]-tr, w[a+1]-ti
			w[a], w[a+1] = w[a]+tr, w[a+1]+ti

			// m=1 uses W = -i, so the twiddle multiply is a swap/negate
			a, b = 2*s+2, 2*s+6
			tr, ti = w[b+1], -w[b]
			w[b], w[b+1] = w[a]-tr, w[a+1]-ti
			w[a], w[a+1] = w[a]+tr, w[a+1]+ti
		}
	}

	for blockSize := 8; blockSize <= half; blockSize <<= 1 {
		stride := f.fftSize / blockSize
		for s := 0; s < half; s += blockSize {
			idx := 0
			for m := 0; m < blockSize/2; m++ {
				wr, wi := f.cosTab[idx], -f.sinTab[idx]
				idx += stride

				a, b := 2*(s+m), 2*(s+m+blockSize/2)
				tr := w[b]*wr - w[b+1]*wi
				ti := w[b]*wi + w[b+1]*wr
				w[b], w[b+1] = w[a]-tr, w[a+1]-ti
				w[a], w[a+1] = w[a]+tr, w[a+1]+ti
			}
		}
	}
}

// recombine unpacks the half-size complex transform into the true real
// spectrum via X[k] = E[k] + W^k*O[k], writing packed output. DC and
// Nyquist land in the bin-0 slot pair; the remaining bins are
// produced in symmetric pairs working inward from both ends.
func (f *RealFFT) recombine() {
	w := f.work
	half := f.halfSize

	i, j := PackedIndex(0)
	f.out[i] = w[0] + w[1]
	f.out[j] = w[0] - w[1]

	for k := 1; k <= half/2; k++ {
		kc := half - k
		ar, ai := w[2*k], w[2*k+1]
		br, bi := w[2*kc], w[2*kc+1]

		er, ei := (ar+br)/2, (ai-bi)/2
		or, oi := (ai+bi)/2, (br-ar)/2

		wr, wi := f.cosTab[k], -f.sinTab[k]
		i, j = PackedIndex(k)
		f.out[i] = er + wr*or - wi*oi
		f.out[j] = ei + wr*oi + wi*or

		er, ei = (ar+br)/2, (bi-ai)/2
		or, oi = (ai+bi)/2, (ar-br)/2

		wr, wi = f.cosTab[kc], -f.sinTab[kc]
		i, j = PackedIndex(kc)
		f.out[i] = er + wr*or - wi*oi
		f.out[j] = ei + wr*oi + wi*or
	}
}

// Size returns the transform length in points
func (f *RealFFT) Size() int {
	return f.fftSize
}

// WindowSize returns the number of input samples consumed per transform
func (f *RealFFT) WindowSize() int {
	return f.windowSize
}

// NextPowerOfTwo returns the smallest power of two >= n
func NextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
