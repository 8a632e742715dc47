// Package core holds acquisition settings and numeric helpers shared by the
// dsp packages.
package core

// DefaultSampleRate is the PPG acquisition rate assumed when none is given.
const DefaultSampleRate = 360.0

// ProcessorConfig describes how a signal was acquired.
type ProcessorConfig struct {
	SampleRate float64 // Hz
	Seed       int64   // seed for any stochastic component
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the PPG acquisition defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		Seed:       1,
	}
}

// WithSampleRate sets the sampling rate. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithSeed sets the seed for stochastic components.
func WithSeed(seed int64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Seed = seed
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
