package audio

import (
	"fmt"
	"time"
)

// WaveFormat describes the PCM layout of a raw audio byte stream.
// BlockAlign and AvgBytesPerSec are derived from the other fields at
// construction time and are never set independently. A WaveFormat is
// immutable once built.
type WaveFormat struct {
	SampleRate     uint32 `json:"sample_rate"`
	BitsPerSample  uint16 `json:"bits_per_sample"`
	Channels       uint16 `json:"channels"`
	BlockAlign     uint16 `json:"block_align"`
	AvgBytesPerSec uint32 `json:"avg_bytes_per_sec"`
}

// NewWaveFormat creates a WaveFormat with derived fields computed
func NewWaveFormat(sampleRate uint32, bitsPerSample, channels uint16) (WaveFormat, error) {
	if sampleRate == 0 {
		return WaveFormat{}, fmt.Errorf("sample rate must be positive: %d", sampleRate)
	}
	if channels == 0 {
		return WaveFormat{}, fmt.Errorf("channel count must be positive: %d", channels)
	}
	if bitsPerSample == 0 || bitsPerSample%8 != 0 {
		return WaveFormat{}, fmt.Errorf("bits per sample must be a positive multiple of 8: %d", bitsPerSample)
	}

	blockAlign := channels * (bitsPerSample / 8)
	return WaveFormat{
		SampleRate:     sampleRate,
		BitsPerSample:  bitsPerSample,
		Channels:       channels,
		BlockAlign:     blockAlign,
		AvgBytesPerSec: uint32(blockAlign) * sampleRate,
	}, nil
}

// Create16kHz1Channel16BitPcm returns the format most speech pipelines run on
func Create16kHz1Channel16BitPcm() WaveFormat {
	format, _ := NewWaveFormat(16000, 16, 1)
	return format
}

// Create44kHz2Channel16BitPcm returns CD-quality stereo PCM
func Create44kHz2Channel16BitPcm() WaveFormat {
	format, _ := NewWaveFormat(44100, 16, 2)
	return format
}

// BytesPerSample returns the byte width of a single sample on one channel
func (w WaveFormat) BytesPerSample() int {
	return int(w.BitsPerSample) / 8
}

// DurationOf returns the time span covered by the given number of bytes
func (w WaveFormat) DurationOf(numBytes int) time.Duration {
	return time.Duration(float64(numBytes) / float64(w.AvgBytesPerSec) * float64(time.Second))
}

// BytesIn returns the number of whole bytes covered by the given duration
func (w WaveFormat) BytesIn(d time.Duration) int {
	return int(d.Seconds() * float64(w.AvgBytesPerSec))
}
