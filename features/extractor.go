package features

import (
	"fmt"
	"time"

	"github.com/RyanBlaney/sonido-features/algorithms/spectral"
	"github.com/RyanBlaney/sonido-features/algorithms/temporal"
	"github.com/RyanBlaney/sonido-features/algorithms/windowing"
	"github.com/RyanBlaney/sonido-features/audio"
	"github.com/RyanBlaney/sonido-features/logging"
)

// FrameFeatures holds the features extracted from one analysis frame. Only
// the fields whose features are enabled carry meaningful values. The FFT
// and PowerSpectrum slices are borrowed views into extractor-owned buffers
// and are valid until the next Push.
type FrameFeatures struct {
	Timestamp             time.Time `json:"timestamp"`
	LogEnergy             float64   `json:"log_energy,omitempty"`
	ZeroCrossingRate      float64   `json:"zero_crossing_rate,omitempty"`
	FFT                   []float64 `json:"fft,omitempty"`
	PowerSpectrum         []float64 `json:"power_spectrum,omitempty"`
	FrequencyDomainEnergy float64   `json:"frequency_domain_energy,omitempty"`
	LowFrequencyEnergy    float64   `json:"low_frequency_energy,omitempty"`
	HighFrequencyEnergy   float64   `json:"high_frequency_energy,omitempty"`
	SpectralEntropy       float64   `json:"spectral_entropy,omitempty"`
}

// Extractor wires the full pipeline for one stream: byte chunks are framed
// with overlap, decoded to first-channel floats, optionally dithered,
// windowed, and fanned out to the enabled time- and frequency-domain
// reducers. Frame size, FFT size and band bin boundaries are computed once
// at construction.
//
// The extractor is single-threaded: one Push at a time, to completion. All
// internal buffers are reused across calls, so returned frames and their
// slices must not be retained past the next Push.
type Extractor struct {
	config   *Config
	format   audio.WaveFormat
	enabled  map[feature]bool
	binWidth float64

	frameSize  int
	frameShift int
	fftSize    int

	accumulator *audio.FrameAccumulator
	decoder     *audio.SampleDecoder
	ditherer    *audio.Ditherer
	windower    *windowing.Hanning
	fft         *spectral.RealFFT
	power       *spectral.PowerSpectrum
	logEnergy   *temporal.LogEnergy
	zcr         *temporal.ZeroCrossingRate
	bandEnergy  *spectral.BandEnergy
	lowEnergy   *spectral.BandEnergy
	highEnergy  *spectral.BandEnergy
	entropy     *spectral.SpectralEntropy

	frames     []FrameFeatures
	fftArena   []float64
	powerArena []float64

	logger logging.Logger
}

// NewExtractor builds a pipeline for the given format and configuration.
// A nil config uses DefaultConfig. All configuration errors surface here,
// before any data flows.
func NewExtractor(format audio.WaveFormat, config *Config) (*Extractor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.FrameDurationSeconds <= 0 {
		return nil, fmt.Errorf("frame duration must be positive: %g", config.FrameDurationSeconds)
	}
	if config.FrameRateHz <= 0 {
		return nil, fmt.Errorf("frame rate must be positive: %g", config.FrameRateHz)
	}

	frameSize := int(config.FrameDurationSeconds*float64(format.SampleRate) + 0.5)
	frameShift := int(float64(format.SampleRate)/config.FrameRateHz + 0.5)
	fftSize := spectral.NextPowerOfTwo(frameSize)

	e := &Extractor{
		config:     config,
		format:     format,
		enabled:    config.enabledSet(),
		binWidth:   float64(format.SampleRate) / float64(fftSize),
		frameSize:  frameSize,
		frameShift: frameShift,
		fftSize:    fftSize,
		logger: logging.WithFields(logging.Fields{
			"component":   "feature_extractor",
			"sample_rate": format.SampleRate,
			"frame_size":  frameSize,
			"frame_shift": frameShift,
			"fft_size":    fftSize,
		}),
	}

	var err error
	blockAlign := int(format.BlockAlign)
	e.accumulator, err = audio.NewFrameAccumulator(frameSize*blockAlign, frameShift*blockAlign, float64(format.AvgBytesPerSec))
	if err != nil {
		return nil, fmt.Errorf("frame accumulator: %w", err)
	}
	e.decoder, err = audio.NewSampleDecoder(format)
	if err != nil {
		return nil, fmt.Errorf("sample decoder: %w", err)
	}
	e.windower, err = windowing.NewHanning(frameSize)
	if err != nil {
		return nil, fmt.Errorf("windower: %w", err)
	}
	if config.AddDither {
		e.ditherer = audio.NewDitherer(config.DitherScale, config.DitherSeed)
	}

	if e.enabled[featureLogEnergy] {
		e.logEnergy = temporal.NewLogEnergy()
	}
	if e.enabled[featureZeroCrossingRate] {
		e.zcr = temporal.NewZeroCrossingRate()
	}
	if e.enabled[featureFFT] {
		e.fft, err = spectral.NewRealFFT(fftSize, frameSize)
		if err != nil {
			return nil, fmt.Errorf("fft: %w", err)
		}
	}
	if e.enabled[featureFFTPower] {
		e.power, err = spectral.NewPowerSpectrum(fftSize)
		if err != nil {
			return nil, fmt.Errorf("power spectrum: %w", err)
		}
	}
	if e.enabled[featureFrequencyDomainEnergy] {
		e.bandEnergy, err = e.newBandEnergy(config.StartFrequency, config.EndFrequency)
		if err != nil {
			return nil, fmt.Errorf("frequency domain energy: %w", err)
		}
	}
	if e.enabled[featureLowFrequencyEnergy] {
		e.lowEnergy, err = e.newBandEnergy(config.StartFrequency, config.LowEndFrequency)
		if err != nil {
			return nil, fmt.Errorf("low frequency energy: %w", err)
		}
	}
	if e.enabled[featureHighFrequencyEnergy] {
		e.highEnergy, err = e.newBandEnergy(config.HighStartFrequency, config.EndFrequency)
		if err != nil {
			return nil, fmt.Errorf("high frequency energy: %w", err)
		}
	}
	if e.enabled[featureSpectralEntropy] {
		start, end, berr := e.bandBins(config.StartFrequency, config.StartFrequency+config.EntropyBandwidth)
		if berr != nil {
			return nil, fmt.Errorf("spectral entropy: %w", berr)
		}
		e.entropy, err = spectral.NewSpectralEntropy(start, end)
		if err != nil {
			return nil, fmt.Errorf("spectral entropy: %w", err)
		}
	}

	e.logger.Debug("Extractor constructed", logging.Fields{
		"enabled_features": len(e.enabled),
		"bin_width_hz":     e.binWidth,
	})

	return e, nil
}

// bandBins converts a frequency band to inclusive bin bounds. The start
// bound is floored and the end bound rounds half up; the asymmetry decides
// inclusivity at band edges and is intentional.
func (e *Extractor) bandBins(startFreq, endFreq float64) (int, int, error) {
	start := int(startFreq / e.binWidth)
	end := int(endFreq/e.binWidth + 0.5)
	if end >= e.fftSize/2 {
		return 0, 0, fmt.Errorf("band end %g Hz exceeds Nyquist range (bin %d of %d)", endFreq, end, e.fftSize/2)
	}
	return start, end, nil
}

func (e *Extractor) newBandEnergy(startFreq, endFreq float64) (*spectral.BandEnergy, error) {
	start, end, err := e.bandBins(startFreq, endFreq)
	if err != nil {
		return nil, err
	}
	return spectral.NewBandEnergy(start, end)
}

// Push consumes one timestamped chunk of raw audio bytes and returns the
// features of every analysis frame it completed, in order. The returned
// slice and its contents are reused by the next Push.
func (e *Extractor) Push(chunk []byte, originatingTime time.Time) ([]FrameFeatures, error) {
	e.frames = e.frames[:0]
	e.fftArena = e.fftArena[:0]
	e.powerArena = e.powerArena[:0]

	e.accumulator.Push(chunk, originatingTime, e.processFrame)
	return e.frames, nil
}

// processFrame runs one completed byte frame through decode, dither,
// window, and the enabled reducers
func (e *Extractor) processFrame(frame []byte, timestamp time.Time) {
	samples := e.decoder.Decode(frame)
	if e.ditherer != nil {
		e.ditherer.Apply(samples)
	}

	windowed, err := e.windower.Apply(samples)
	if err != nil {
		// Frame sizing is fixed at construction, so this cannot occur on a
		// healthy pipeline; drop the frame rather than kill the stream.
		e.logger.Error(err, "Dropping frame with unexpected length", logging.Fields{
			"frame_bytes": len(frame),
		})
		return
	}

	ff := FrameFeatures{Timestamp: timestamp}

	if e.logEnergy != nil {
		ff.LogEnergy = e.logEnergy.Compute(windowed)
	}
	if e.zcr != nil {
		ff.ZeroCrossingRate = e.zcr.Compute(windowed)
	}

	if e.fft != nil {
		packed := e.fft.Transform(windowed)
		ff.FFT = e.retain(&e.fftArena, packed)

		if e.power != nil {
			power := e.power.Compute(packed)
			ff.PowerSpectrum = e.retain(&e.powerArena, power)

			if e.bandEnergy != nil {
				ff.FrequencyDomainEnergy = e.bandEnergy.Compute(power)
			}
			if e.lowEnergy != nil {
				ff.LowFrequencyEnergy = e.lowEnergy.Compute(power)
			}
			if e.highEnergy != nil {
				ff.HighFrequencyEnergy = e.highEnergy.Compute(power)
			}
			if e.entropy != nil {
				ff.SpectralEntropy = e.entropy.Compute(power)
			}
		}
	}

	e.frames = append(e.frames, ff)
}

// retain copies data into a per-push arena so that stage buffers can be
// reused for the next frame while earlier frames of the same push keep
// their values. The arena itself is recycled across pushes.
func (e *Extractor) retain(arena *[]float64, data []float64) []float64 {
	start := len(*arena)
	*arena = append(*arena, data...)
	return (*arena)[start : start+len(data) : start+len(data)]
}

// FrameSize returns the analysis frame length in samples
func (e *Extractor) FrameSize() int {
	return e.frameSize
}

// FrameShift returns the advance between consecutive frames in samples
func (e *Extractor) FrameShift() int {
	return e.frameShift
}

// FFTSize returns the FFT length in points
func (e *Extractor) FFTSize() int {
	return e.fftSize
}

// BinWidth returns the width of one frequency bin in Hz
func (e *Extractor) BinWidth() float64 {
	return e.binWidth
}

// Format returns the input wave format
func (e *Extractor) Format() audio.WaveFormat {
	return e.format
}
