// Package config loads the ppgview settings from an optional YAML file, a
// .env file and PPGVIEW_* environment variables, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ppg/dsp/core"
	"github.com/cwbudde/algo-ppg/internal/dataset"
	"github.com/cwbudde/algo-ppg/measure/ppg"
)

// Environment variables read by FromEnvironment.
const (
	EnvConfig     = "PPGVIEW_CONFIG"
	EnvSampleRate = "PPGVIEW_SAMPLE_RATE"
	EnvColumn     = "PPGVIEW_COLUMN"
	EnvLogLevel   = "PPGVIEW_LOG_LEVEL"
	EnvLogFile    = "PPGVIEW_LOG_FILE"
	EnvOutputDir  = "PPGVIEW_OUTPUT_DIR"
)

// ErrConfig is wrapped by every error of this package.
var ErrConfig = errors.New("config: invalid configuration")

// Config is the application configuration.
type Config struct {
	SampleRate float64       `yaml:"sample_rate"`
	Filter     FilterConfig  `yaml:"filter"`
	Window     WindowConfig  `yaml:"window"`
	Peaks      PeakConfig    `yaml:"peaks"`
	Dataset    DatasetConfig `yaml:"dataset"`
	Log        LogConfig     `yaml:"log"`
	Output     OutputConfig  `yaml:"output"`
}

type FilterConfig struct {
	LowCutoff  float64 `yaml:"low_cutoff"`
	HighCutoff float64 `yaml:"high_cutoff"`
	Order      int     `yaml:"order"`
}

// WindowConfig is given in seconds and converted with the sample rate.
type WindowConfig struct {
	Seconds    float64 `yaml:"seconds"`
	HopSeconds float64 `yaml:"hop_seconds"`
}

type PeakConfig struct {
	Prominence float64    `yaml:"prominence"`
	RateBand   BandConfig `yaml:"rate_band"`
}

// BandConfig is a frequency band in Hz.
type BandConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

type DatasetConfig struct {
	Column string `yaml:"column"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	// Rotation settings, used only with File.
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// OutputConfig selects the file renderers. An empty Dir disables both.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Plot  bool   `yaml:"plot"`
	Chart bool   `yaml:"chart"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SampleRate: core.DefaultSampleRate,
		Filter:     FilterConfig{LowCutoff: 3, HighCutoff: 0.8, Order: 4},
		Window:     WindowConfig{Seconds: 5, HopSeconds: 1},
		Peaks: PeakConfig{
			Prominence: 0.3,
			RateBand:   BandConfig{Low: ppg.DefaultRateBand.Low, High: ppg.DefaultRateBand.High},
		},
		Dataset: DatasetConfig{Column: dataset.DefaultColumn},
		Log:     LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 28},
		Output:  OutputConfig{Plot: true, Chart: true},
	}
}

// Parse reads YAML on top of the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cfg, nil
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromEnvironment loads envFile (a missing file is not an error), then the
// YAML file named by PPGVIEW_CONFIG, then applies the PPGVIEW_* overrides.
func FromEnvironment(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrConfig, envFile, err)
		}
	}

	cfg, err := Load(os.Getenv(EnvConfig))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSampleRate); ok {
		rate, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrConfig, EnvSampleRate, v, err)
		}
		c.SampleRate = rate
	}
	if v, ok := lookup(EnvColumn); ok && v != "" {
		c.Dataset.Column = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvOutputDir); ok {
		c.Output.Dir = v
	}
	return nil
}

// Analysis converts the settings into a validated analysis configuration.
func (c Config) Analysis() (ppg.Config, error) {
	size := int(math.Round(c.Window.Seconds * c.SampleRate))
	hop := int(math.Round(c.Window.HopSeconds * c.SampleRate))
	if size < 1 || hop < 1 {
		return ppg.Config{}, fmt.Errorf("%w: window %vs, hop %vs at %v Hz", ErrConfig,
			c.Window.Seconds, c.Window.HopSeconds, c.SampleRate)
	}

	cfg := ppg.NewConfig(
		ppg.WithSampleRate(c.SampleRate),
		ppg.WithCutoffs(c.Filter.LowCutoff, c.Filter.HighCutoff),
		ppg.WithFilterOrder(c.Filter.Order),
		ppg.WithWindowSize(size),
		ppg.WithWindowHop(hop),
		ppg.WithProminence(c.Peaks.Prominence),
		ppg.WithRateBand(ppg.Band{Low: c.Peaks.RateBand.Low, High: c.Peaks.RateBand.High}),
	)
	if err := cfg.Validate(); err != nil {
		return ppg.Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cfg, nil
}
