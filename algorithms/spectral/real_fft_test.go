package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

// packedPower derives the power spectrum from a packed transform result
func packedPower(t *testing.T, packed []float64) []float64 {
	t.Helper()
	ps, err := NewPowerSpectrum(len(packed))
	if err != nil {
		t.Fatalf("NewPowerSpectrum: %v", err)
	}
	return ps.Compute(packed)
}

// referencePower computes the expected power bins via go-dsp, folding the
// Nyquist component into bin 0 the way the packed layout does
func referencePower(input []float64, fftSize int) []float64 {
	padded := make([]float64, fftSize)
	copy(padded, input)
	spectrum := fft.FFTReal(padded)

	power := make([]float64, fftSize/2)
	dc := cmplx.Abs(spectrum[0])
	nyquist := cmplx.Abs(spectrum[fftSize/2])
	power[0] = dc*dc + nyquist*nyquist
	for k := 1; k < fftSize/2; k++ {
		mag := cmplx.Abs(spectrum[k])
		power[k] = mag * mag
	}
	return power
}

func TestRealFFT_DCConcentration(t *testing.T) {
	const fftSize = 512
	f, err := NewRealFFT(fftSize, fftSize)
	if err != nil {
		t.Fatalf("NewRealFFT: %v", err)
	}

	input := make([]float64, fftSize)
	for i := range input {
		input[i] = 3.5
	}

	power := packedPower(t, f.Transform(input))

	// Unnormalized forward transform: DC magnitude is N * value
	wantDC := float64(fftSize) * 3.5 * float64(fftSize) * 3.5
	if math.Abs(power[0]-wantDC) > 1e-6*wantDC {
		t.Errorf("DC power: got %v, want %v", power[0], wantDC)
	}
	for k := 1; k < len(power); k++ {
		if power[k] > 1e-9*wantDC {
			t.Errorf("bin %d holds non-DC energy: %v", k, power[k])
		}
	}
}

func TestRealFFT_SinePeakBin(t *testing.T) {
	const fftSize = 512
	f, err := NewRealFFT(fftSize, fftSize)
	if err != nil {
		t.Fatalf("NewRealFFT: %v", err)
	}

	const bin = 32
	input := make([]float64, fftSize)
	for i := range input {
		input[i] = math.Sin(2 * math.Pi * bin * float64(i) / fftSize)
	}

	power := packedPower(t, f.Transform(input))

	// A full-period sine concentrates |X| = N/2 at its bin
	want := float64(fftSize/2) * float64(fftSize/2)
	if math.Abs(power[bin]-want) > 1e-6*want {
		t.Errorf("power[%d]: got %v, want %v", bin, power[bin], want)
	}
	for k := range power {
		if k != bin && power[k] > 1e-9*want {
			t.Errorf("bin %d holds stray energy: %v", k, power[k])
		}
	}
}

func TestRealFFT_MatchesReference(t *testing.T) {
	const fftSize, windowSize = 512, 512
	f, err := NewRealFFT(fftSize, windowSize)
	if err != nil {
		t.Fatalf("NewRealFFT: %v", err)
	}

	// Deterministic broadband input
	input := make([]float64, windowSize)
	for i := range input {
		input[i] = math.Sin(0.37*float64(i)) + 0.5*math.Cos(1.91*float64(i)) + 0.25*math.Sin(5.3*float64(i)+1.0)
	}

	got := packedPower(t, f.Transform(input))
	want := referencePower(input, fftSize)

	maxWant := 0.0
	for _, w := range want {
		maxWant = math.Max(maxWant, w)
	}
	for k := range want {
		if math.Abs(got[k]-want[k]) > 1e-9*maxWant {
			t.Errorf("bin %d: got %v, want %v", k, got[k], want[k])
		}
	}
}

func TestRealFFT_ZeroPadding(t *testing.T) {
	const fftSize, windowSize = 512, 400
	f, err := NewRealFFT(fftSize, windowSize)
	if err != nil {
		t.Fatalf("NewRealFFT: %v", err)
	}

	input := make([]float64, windowSize)
	for i := range input {
		input[i] = math.Sin(0.13*float64(i)) * (1 + 0.01*float64(i%7))
	}

	got := packedPower(t, f.Transform(input))
	want := referencePower(input, fftSize)

	maxWant := 0.0
	for _, w := range want {
		maxWant = math.Max(maxWant, w)
	}
	for k := range want {
		if math.Abs(got[k]-want[k]) > 1e-9*maxWant {
			t.Errorf("bin %d: got %v, want %v", k, got[k], want[k])
		}
	}
}

func TestRealFFT_OddWindowSize(t *testing.T) {
	const fftSize, windowSize = 64, 33
	f, err := NewRealFFT(fftSize, windowSize)
	if err != nil {
		t.Fatalf("NewRealFFT: %v", err)
	}

	input := make([]float64, windowSize)
	for i := range input {
		input[i] = float64(i%5) - 2
	}

	got := packedPower(t, f.Transform(input))
	want := referencePower(input, fftSize)

	for k := range want {
		if math.Abs(got[k]-want[k]) > 1e-8*(1+want[k]) {
			t.Errorf("bin %d: got %v, want %v", k, got[k], want[k])
		}
	}
}

func TestRealFFT_OutputBufferReuse(t *testing.T) {
	f, err := NewRealFFT(64, 64)
	if err != nil {
		t.Fatalf("NewRealFFT: %v", err)
	}

	input := make([]float64, 64)
	first := f.Transform(input)
	second := f.Transform(input)
	if &first[0] != &second[0] {
		t.Error("expected transform output buffer to be reused across calls")
	}
}

func TestNewRealFFT_Invalid(t *testing.T) {
	if _, err := NewRealFFT(500, 400); err == nil {
		t.Error("expected error for non-power-of-two size")
	}
	if _, err := NewRealFFT(4, 4); err == nil {
		t.Error("expected error for size below 8")
	}
	if _, err := NewRealFFT(256, 400); err == nil {
		t.Error("expected error for window larger than fft size")
	}
	if _, err := NewRealFFT(256, 0); err == nil {
		t.Error("expected error for zero window size")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 400: 512, 512: 512, 513: 1024}
	for n, want := range cases {
		if got := NextPowerOfTwo(n); got != want {
			t.Errorf("NextPowerOfTwo(%d): got %d, want %d", n, got, want)
		}
	}
}
