package ppg

import (
	"math"

	"github.com/cwbudde/algo-ppg/dsp/core"
	"github.com/cwbudde/algo-ppg/dsp/filter/design/pass"
)

const (
	defaultLowCutoff   = 3.0
	defaultHighCutoff  = 0.8
	defaultFilterOrder = 4
	defaultProminence  = 0.3
	defaultWindowSecs  = 5
)

// Band is a frequency range in Hz.
type Band struct {
	Low, High float64
}

// DefaultRateBand covers 30 to 210 bpm.
var DefaultRateBand = Band{Low: 0.5, High: 3.5}

// Config holds every tunable of the analysis. The zero value is not usable;
// start from DefaultConfig or NewConfig.
type Config struct {
	core.ProcessorConfig

	LowCutoff   float64 // low-pass corner in Hz, removes noise
	HighCutoff  float64 // high-pass corner in Hz, removes baseline wander
	FilterOrder int     // Butterworth order of each filter

	WindowSize int // samples per analysis window
	WindowHop  int // samples moved per navigation step

	Prominence float64 // minimum peak prominence on the derivative
	RateBand   Band    // search band for the spectral heart rate
}

// Option mutates a Config.
type Option func(*Config)

// WithSampleRate sets fs. Window size and hop that were not set explicitly
// follow it (5 s and 1 s).
func WithSampleRate(fs float64) Option {
	return func(c *Config) {
		if fs > 0 {
			c.SampleRate = fs
		}
	}
}

// WithCutoffs sets the low-pass and high-pass corner frequencies.
func WithCutoffs(low, high float64) Option {
	return func(c *Config) {
		c.LowCutoff = low
		c.HighCutoff = high
	}
}

// WithFilterOrder sets the Butterworth order.
func WithFilterOrder(order int) Option {
	return func(c *Config) {
		c.FilterOrder = order
	}
}

// WithWindowSize sets the analysis window length in samples.
func WithWindowSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.WindowSize = n
		}
	}
}

// WithWindowHop sets the navigation step in samples.
func WithWindowHop(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.WindowHop = n
		}
	}
}

// WithProminence sets the peak prominence threshold.
func WithProminence(p float64) Option {
	return func(c *Config) {
		c.Prominence = p
	}
}

// WithRateBand sets the spectral heart-rate search band.
func WithRateBand(b Band) Option {
	return func(c *Config) {
		c.RateBand = b
	}
}

// NewConfig applies opts to the defaults.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		LowCutoff:       defaultLowCutoff,
		HighCutoff:      defaultHighCutoff,
		FilterOrder:     defaultFilterOrder,
		Prominence:      defaultProminence,
		RateBand:        DefaultRateBand,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.WindowSize == 0 {
		cfg.WindowSize = int(math.Round(defaultWindowSecs * cfg.SampleRate))
	}
	if cfg.WindowHop == 0 {
		cfg.WindowHop = int(math.Round(cfg.SampleRate))
	}
	return cfg
}

// DefaultConfig returns the defaults for a recording sampled at fs.
func DefaultConfig(fs float64) Config {
	return NewConfig(WithSampleRate(fs))
}

// Validate reports the first unusable setting, wrapped in
// ErrInvalidParameter.
func (c Config) Validate() error {
	fs := c.SampleRate
	switch {
	case !(fs > 0) || math.IsInf(fs, 0):
		return invalidParam("sample rate %v", fs)
	case !pass.ValidCutoff(c.LowCutoff, fs):
		return invalidParam("low-pass cutoff %v Hz at fs %v", c.LowCutoff, fs)
	case !pass.ValidCutoff(c.HighCutoff, fs):
		return invalidParam("high-pass cutoff %v Hz at fs %v", c.HighCutoff, fs)
	case c.FilterOrder < 1:
		return invalidParam("filter order %d", c.FilterOrder)
	case c.WindowSize < 1:
		return invalidParam("window size %d", c.WindowSize)
	case c.WindowHop < 1:
		return invalidParam("window hop %d", c.WindowHop)
	case !(c.Prominence >= 0) || math.IsInf(c.Prominence, 0):
		return invalidParam("prominence %v", c.Prominence)
	case !(c.RateBand.Low >= 0) || !(c.RateBand.High > c.RateBand.Low):
		return invalidParam("rate band [%v, %v] Hz", c.RateBand.Low, c.RateBand.High)
	}
	return nil
}
