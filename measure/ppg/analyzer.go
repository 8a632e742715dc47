package ppg

import (
	"fmt"

	timestats "github.com/cwbudde/algo-ppg/stats/time"
)

// Result is everything computed for one window.
type Result struct {
	Window    Window
	Landmarks Landmarks
	Features  FeatureSet
	Peaks     []int // window-relative peak indices, same as Landmarks.Peaks

	RawStats timestats.Stats

	Spectrum    Spectrum // of the filtered segment, valid when SpectralErr is nil
	SpectralErr error
}

// Analyzer holds a conditioned recording. Filtering and differentiation run
// once in NewAnalyzer; Analyze then only slices and inspects windows.
type Analyzer struct {
	cfg Config

	raw      []float64
	filtered []float64
	deriv    []float64
	time     []float64
}

// NewAnalyzer validates cfg, filters raw and computes its derivative. The
// recording must hold at least one full window; raw is copied.
func NewAnalyzer(raw []float64, cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(raw) < cfg.WindowSize {
		return nil, fmt.Errorf("%w: recording has %d samples, window needs %d", ErrData, len(raw), cfg.WindowSize)
	}

	samples := append([]float64(nil), raw...)
	filtered, err := FilterWith(samples, cfg)
	if err != nil {
		return nil, err
	}

	t := Timebase(len(samples), cfg.SampleRate)
	deriv, err := Derivative(filtered, t)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		cfg:      cfg,
		raw:      samples,
		filtered: filtered,
		deriv:    deriv,
		time:     t,
	}, nil
}

// Config returns the configuration the analyzer was built with.
func (a *Analyzer) Config() Config { return a.cfg }

// Len returns the recording length in samples.
func (a *Analyzer) Len() int { return len(a.raw) }

// MaxLower returns the last valid window start.
func (a *Analyzer) MaxLower() int { return len(a.raw) - a.cfg.WindowSize }

// Raw returns the recording. Callers must not modify it.
func (a *Analyzer) Raw() []float64 { return a.raw }

// Filtered returns the conditioned recording. Callers must not modify it.
func (a *Analyzer) Filtered() []float64 { return a.filtered }

// Derivative returns the derivative of the conditioned recording. Callers
// must not modify it.
func (a *Analyzer) Derivative() []float64 { return a.deriv }

// Time returns the sample timestamps. Callers must not modify it.
func (a *Analyzer) Time() []float64 { return a.time }

// Analyze runs window extraction, landmark detection and feature
// calculation for the window starting at lower. On a landmark or feature
// error the partial result (window, peaks, statistics) is returned with it.
func (a *Analyzer) Analyze(lower int) (Result, error) {
	w, err := ExtractWindow(lower, a.cfg.WindowSize, a.raw, a.deriv, a.time)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Window:   w,
		RawStats: timestats.Calculate(w.Raw),
	}
	res.Spectrum, res.SpectralErr = AnalyzeSpectrum(a.filtered[w.Lower:w.Upper], a.cfg.SampleRate, a.cfg.RateBand)

	lm, err := DetectLandmarks(w, a.cfg.Prominence)
	res.Landmarks = lm
	res.Peaks = lm.Peaks
	if err != nil {
		return res, err
	}

	res.Features, err = ComputeFeatures(w, lm, a.cfg.SampleRate)
	return res, err
}
