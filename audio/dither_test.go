package audio

import (
	"testing"
)

func TestDitherer_Bounds(t *testing.T) {
	d := NewDitherer(1.0, 42)
	frame := make([]float64, 10000)
	d.Apply(frame)

	for i, s := range frame {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample %d out of dither bounds: %v", i, s)
		}
	}
}

func TestDitherer_Deterministic(t *testing.T) {
	a := NewDitherer(1.0, 7)
	b := NewDitherer(1.0, 7)

	frameA := make([]float64, 100)
	frameB := make([]float64, 100)
	a.Apply(frameA)
	b.Apply(frameB)

	for i := range frameA {
		if frameA[i] != frameB[i] {
			t.Fatalf("same seed diverged at sample %d: %v vs %v", i, frameA[i], frameB[i])
		}
	}
}

func TestDitherer_Additive(t *testing.T) {
	d := NewDitherer(0.5, 1)
	frame := []float64{100, -100, 0}
	d.Apply(frame)

	if frame[0] < 99.5 || frame[0] > 100.5 {
		t.Errorf("sample 0 drifted beyond scale: %v", frame[0])
	}
	if frame[1] < -100.5 || frame[1] > -99.5 {
		t.Errorf("sample 1 drifted beyond scale: %v", frame[1])
	}
}
