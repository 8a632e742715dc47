package ppg

import (
	"github.com/cwbudde/algo-ppg/dsp/diff"
)

// Derivative returns d(signal)/d(time) with one output per sample: central
// differences inside, one-sided differences at both ends. An empty signal
// yields an empty result; a single sample has no derivative.
func Derivative(signal, time []float64) ([]float64, error) {
	if len(signal) == 0 && len(time) == 0 {
		return []float64{}, nil
	}

	d, err := diff.Gradient(signal, time)
	if err != nil {
		return nil, invalidParam("derivative: %v", err)
	}
	return d, nil
}

// Timebase returns the sample times t[i] = i/fs.
func Timebase(n int, fs float64) []float64 {
	t := make([]float64, max(n, 0))
	for i := range t {
		t[i] = float64(i) / fs
	}
	return t
}
