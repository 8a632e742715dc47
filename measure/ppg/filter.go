package ppg

import (
	"math"

	"github.com/cwbudde/algo-ppg/dsp/core"
	"github.com/cwbudde/algo-ppg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ppg/dsp/filter/design/pass"
)

// Filter conditions a raw PPG recording: a zero-phase Butterworth low-pass
// at lowCutoff followed by a zero-phase Butterworth high-pass at highCutoff,
// both of the given order. The result has the same length as signal and is
// not shifted in time.
func Filter(signal []float64, lowCutoff, highCutoff, fs float64, order int) ([]float64, error) {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, invalidParam("sample rate %v", fs)
	}
	if !pass.ValidCutoff(lowCutoff, fs) {
		return nil, invalidParam("low-pass cutoff %v Hz must lie in (0, %v)", lowCutoff, fs/2)
	}
	if !pass.ValidCutoff(highCutoff, fs) {
		return nil, invalidParam("high-pass cutoff %v Hz must lie in (0, %v)", highCutoff, fs/2)
	}
	if order < 1 {
		return nil, invalidParam("filter order %d", order)
	}
	if !core.AllFinite(signal) {
		return nil, invalidParam("signal contains non-finite samples")
	}

	lp := pass.ButterworthLP(lowCutoff, order, fs)
	hp := pass.ButterworthHP(highCutoff, order, fs)

	return biquad.FiltFilt(hp, biquad.FiltFilt(lp, signal)), nil
}

// FilterWith runs Filter with the cutoffs, order and rate from cfg.
func FilterWith(signal []float64, cfg Config) ([]float64, error) {
	return Filter(signal, cfg.LowCutoff, cfg.HighCutoff, cfg.SampleRate, cfg.FilterOrder)
}

// FilterGain returns the linear gain FilterWith applies to a sinusoid at
// freqHz, or 0 when cfg describes no valid filter.
func FilterGain(freqHz float64, cfg Config) float64 {
	fs := cfg.SampleRate
	lp := pass.ButterworthLP(cfg.LowCutoff, cfg.FilterOrder, fs)
	hp := pass.ButterworthHP(cfg.HighCutoff, cfg.FilterOrder, fs)
	if lp == nil || hp == nil {
		return 0
	}
	return biquad.NewChain(lp).ZeroPhaseGain(freqHz, fs) * biquad.NewChain(hp).ZeroPhaseGain(freqHz, fs)
}
