package audio

import (
	"testing"
	"time"
)

func TestNewWaveFormat_DerivedFields(t *testing.T) {
	cases := []struct {
		sampleRate    uint32
		bits, chans   uint16
		wantAlign     uint16
		wantAvgECount uint32
	}{
		{16000, 16, 1, 2, 32000},
		{44100, 16, 2, 4, 176400},
		{48000, 24, 2, 6, 288000},
		{8000, 8, 1, 1, 8000},
		{96000, 32, 4, 16, 1536000},
	}

	for _, c := range cases {
		format, err := NewWaveFormat(c.sampleRate, c.bits, c.chans)
		if err != nil {
			t.Fatalf("NewWaveFormat(%d, %d, %d) failed: %v", c.sampleRate, c.bits, c.chans, err)
		}
		if format.BlockAlign != c.wantAlign {
			t.Errorf("BlockAlign: got %d, want %d", format.BlockAlign, c.wantAlign)
		}
		if format.BlockAlign != c.chans*(c.bits/8) {
			t.Errorf("BlockAlign invariant violated: %d != %d*%d/8", format.BlockAlign, c.chans, c.bits)
		}
		if format.AvgBytesPerSec != c.wantAvgECount {
			t.Errorf("AvgBytesPerSec: got %d, want %d", format.AvgBytesPerSec, c.wantAvgECount)
		}
		if format.AvgBytesPerSec != uint32(format.BlockAlign)*c.sampleRate {
			t.Errorf("AvgBytesPerSec invariant violated")
		}
	}
}

func TestNewWaveFormat_Invalid(t *testing.T) {
	if _, err := NewWaveFormat(0, 16, 1); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := NewWaveFormat(16000, 16, 0); err == nil {
		t.Error("expected error for zero channels")
	}
	if _, err := NewWaveFormat(16000, 12, 1); err == nil {
		t.Error("expected error for non-byte-aligned bit depth")
	}
}

func TestCreate16kHz1Channel16BitPcm(t *testing.T) {
	format := Create16kHz1Channel16BitPcm()
	if format.SampleRate != 16000 || format.BitsPerSample != 16 || format.Channels != 1 {
		t.Errorf("unexpected format: %+v", format)
	}
	if format.BlockAlign != 2 || format.AvgBytesPerSec != 32000 {
		t.Errorf("derived fields wrong: %+v", format)
	}
}

func TestWaveFormat_DurationOf(t *testing.T) {
	format := Create16kHz1Channel16BitPcm()

	// 32000 bytes per second, so 3200 bytes is 100ms
	got := format.DurationOf(3200)
	if got != 100*time.Millisecond {
		t.Errorf("DurationOf(3200): got %v, want 100ms", got)
	}

	if n := format.BytesIn(100 * time.Millisecond); n != 3200 {
		t.Errorf("BytesIn(100ms): got %d, want 3200", n)
	}
}
