package audio

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-features/logging"
)

// ErrUnsupportedFormat is returned when the PCM bit depth has no decoder
var ErrUnsupportedFormat = errors.New("unsupported PCM format")

// SampleDecoder converts raw PCM bytes to float samples, taking only the
// first channel. Sample values keep their raw integer amplitude; a dither
// scale of 1.0 therefore corresponds to one quantization step.
//
// The decoder reuses one internally owned output buffer across calls, so
// the slice returned by Decode is only valid until the next call.
type SampleDecoder struct {
	format WaveFormat
	out    []float64
	logger logging.Logger
}

// NewSampleDecoder creates a decoder for the given format. Supported bit
// depths are 8 (unsigned), 16, 24 and 32 (signed little-endian).
func NewSampleDecoder(format WaveFormat) (*SampleDecoder, error) {
	switch format.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, format.BitsPerSample)
	}

	return &SampleDecoder{
		format: format,
		logger: logging.WithFields(logging.Fields{
			"component":       "sample_decoder",
			"bits_per_sample": format.BitsPerSample,
			"channels":        format.Channels,
		}),
	}, nil
}

// Decode converts buf into first-channel float samples. The returned slice
// is borrowed and overwritten by the next call.
func (d *SampleDecoder) Decode(buf []byte) []float64 {
	blockAlign := int(d.format.BlockAlign)
	numSamples := len(buf) / blockAlign

	if cap(d.out) < numSamples {
		d.out = make([]float64, numSamples)
	}
	d.out = d.out[:numSamples]

	switch d.format.BitsPerSample {
	case 8:
		for i := 0; i < numSamples; i++ {
			// 8-bit PCM is unsigned with a 0x80 midpoint
			d.out[i] = float64(int(buf[i*blockAlign]) - 0x80)
		}
	case 16:
		for i := 0; i < numSamples; i++ {
			o := i * blockAlign
			d.out[i] = float64(int16(uint16(buf[o]) | uint16(buf[o+1])<<8))
		}
	case 24:
		for i := 0; i < numSamples; i++ {
			o := i * blockAlign
			v := int32(uint32(buf[o]) | uint32(buf[o+1])<<8 | uint32(buf[o+2])<<16)
			// sign-extend from 24 to 32 bits
			v = v << 8 >> 8
			d.out[i] = float64(v)
		}
	case 32:
		for i := 0; i < numSamples; i++ {
			o := i * blockAlign
			d.out[i] = float64(int32(uint32(buf[o]) | uint32(buf[o+1])<<8 |
				uint32(buf[o+2])<<16 | uint32(buf[o+3])<<24))
		}
	}

	return d.out
}

// Format returns the wave format this decoder was built for
func (d *SampleDecoder) Format() WaveFormat {
	return d.format
}
