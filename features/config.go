package features

// Config holds the acoustic feature extraction options. Frame and FFT
// sizing, band bin boundaries, and the effective enabled-feature set are
// all derived once at Extractor construction.
type Config struct {
	// Framing
	FrameDurationSeconds float64 `json:"frame_duration_seconds"`
	FrameRateHz          float64 `json:"frame_rate_hz"`

	// Dither
	AddDither   bool    `json:"add_dither"`
	DitherScale float64 `json:"dither_scale"`
	DitherSeed  int64   `json:"dither_seed"`

	// Frequency bands (Hz)
	StartFrequency     float64 `json:"start_frequency"`
	EndFrequency       float64 `json:"end_frequency"`
	LowEndFrequency    float64 `json:"low_end_frequency"`
	HighStartFrequency float64 `json:"high_start_frequency"`
	EntropyBandwidth   float64 `json:"entropy_bandwidth"`

	// Feature selection. FFT and FFT power are forced on whenever a
	// downstream feature needs them, so they default to off.
	ComputeLogEnergy             bool `json:"compute_log_energy"`
	ComputeZeroCrossingRate      bool `json:"compute_zero_crossing_rate"`
	ComputeFFT                   bool `json:"compute_fft"`
	ComputeFFTPower              bool `json:"compute_fft_power"`
	ComputeFrequencyDomainEnergy bool `json:"compute_frequency_domain_energy"`
	ComputeLowFrequencyEnergy    bool `json:"compute_low_frequency_energy"`
	ComputeHighFrequencyEnergy   bool `json:"compute_high_frequency_energy"`
	ComputeSpectralEntropy       bool `json:"compute_spectral_entropy"`
}

// DefaultConfig returns the standard extraction configuration
func DefaultConfig() *Config {
	return &Config{
		FrameDurationSeconds:         0.025,
		FrameRateHz:                  100.0,
		AddDither:                    true,
		DitherScale:                  1.0,
		DitherSeed:                   1,
		StartFrequency:               250.0,
		EndFrequency:                 7000.0,
		LowEndFrequency:              3000.0,
		HighStartFrequency:           2500.0,
		EntropyBandwidth:             2500.0,
		ComputeLogEnergy:             true,
		ComputeZeroCrossingRate:      true,
		ComputeFFT:                   false,
		ComputeFFTPower:              false,
		ComputeFrequencyDomainEnergy: true,
		ComputeLowFrequencyEnergy:    true,
		ComputeHighFrequencyEnergy:   true,
		ComputeSpectralEntropy:       true,
	}
}

// feature names the stages that participate in dependency resolution
type feature string

const (
	featureLogEnergy             feature = "log_energy"
	featureZeroCrossingRate      feature = "zero_crossing_rate"
	featureFFT                   feature = "fft"
	featureFFTPower              feature = "fft_power"
	featureFrequencyDomainEnergy feature = "frequency_domain_energy"
	featureLowFrequencyEnergy    feature = "low_frequency_energy"
	featureHighFrequencyEnergy   feature = "high_frequency_energy"
	featureSpectralEntropy       feature = "spectral_entropy"
)

// featureRequires declares "X requires Y" edges. Enablement is resolved as
// a fixed-point closure over these rules rather than scattering implied
// flags through construction code.
var featureRequires = map[feature][]feature{
	featureFrequencyDomainEnergy: {featureFFTPower},
	featureLowFrequencyEnergy:    {featureFFTPower},
	featureHighFrequencyEnergy:   {featureFFTPower},
	featureSpectralEntropy:       {featureFFTPower},
	featureFFTPower:              {featureFFT},
}

// enabledSet seeds the set from the configured flags and expands it until
// no rule adds a new member
func (c *Config) enabledSet() map[feature]bool {
	enabled := make(map[feature]bool)
	seed := map[feature]bool{
		featureLogEnergy:             c.ComputeLogEnergy,
		featureZeroCrossingRate:      c.ComputeZeroCrossingRate,
		featureFFT:                   c.ComputeFFT,
		featureFFTPower:              c.ComputeFFTPower,
		featureFrequencyDomainEnergy: c.ComputeFrequencyDomainEnergy,
		featureLowFrequencyEnergy:    c.ComputeLowFrequencyEnergy,
		featureHighFrequencyEnergy:   c.ComputeHighFrequencyEnergy,
		featureSpectralEntropy:       c.ComputeSpectralEntropy,
	}
	for f, on := range seed {
		if on {
			enabled[f] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for f := range enabled {
			for _, dep := range featureRequires[f] {
				if !enabled[dep] {
					enabled[dep] = true
					changed = true
				}
			}
		}
	}

	return enabled
}
