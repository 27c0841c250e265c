package windowing

import (
	"math"
	"testing"
)

func TestHanning_Kernel(t *testing.T) {
	h, err := NewHanning(8)
	if err != nil {
		t.Fatalf("NewHanning: %v", err)
	}

	coeffs := h.Coefficients()
	if coeffs[0] != 0 {
		t.Errorf("kernel[0]: got %v, want 0", coeffs[0])
	}
	// Periodic form: kernel[N/2] is the peak at exactly 1
	if math.Abs(coeffs[4]-1.0) > 1e-15 {
		t.Errorf("kernel[4]: got %v, want 1", coeffs[4])
	}
	// Periodic symmetry: w[i] == w[N-i]
	for i := 1; i < 8; i++ {
		if math.Abs(coeffs[i]-coeffs[8-i]) > 1e-15 {
			t.Errorf("kernel asymmetric at %d: %v vs %v", i, coeffs[i], coeffs[8-i])
		}
	}
}

func TestHanning_Apply(t *testing.T) {
	h, err := NewHanning(4)
	if err != nil {
		t.Fatalf("NewHanning: %v", err)
	}

	out, err := h.Apply([]float64{2, 2, 2, 2})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// kernel for length 4 is [0, 0.5, 1, 0.5]
	want := []float64{0, 1, 2, 1}
	for i, w := range want {
		if math.Abs(out[i]-w) > 1e-15 {
			t.Errorf("out[%d]: got %v, want %v", i, out[i], w)
		}
	}
}

func TestHanning_LengthMismatch(t *testing.T) {
	h, err := NewHanning(16)
	if err != nil {
		t.Fatalf("NewHanning: %v", err)
	}
	if _, err := h.Apply(make([]float64, 15)); err == nil {
		t.Error("expected error for mismatched frame length")
	}
}

func TestHanning_OutputBufferReuse(t *testing.T) {
	h, err := NewHanning(4)
	if err != nil {
		t.Fatalf("NewHanning: %v", err)
	}

	first, _ := h.Apply([]float64{1, 1, 1, 1})
	second, _ := h.Apply([]float64{2, 2, 2, 2})
	if &first[0] != &second[0] {
		t.Error("expected output buffer to be reused across calls")
	}
}

func TestNewHanning_Invalid(t *testing.T) {
	if _, err := NewHanning(0); err == nil {
		t.Error("expected error for zero length")
	}
}
