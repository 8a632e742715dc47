package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Timebase returns n sample times spaced 1/fs apart, starting at zero.
func Timebase(n int, fs float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / fs
	}
	return out
}

// AddGaussian adds amp*exp(-(i-center)²/(2σ²)) to x in place. center and
// sigma are in samples.
func AddGaussian(x []float64, center, sigma, amp float64) {
	if sigma <= 0 {
		return
	}
	for i := range x {
		d := (float64(i) - center) / sigma
		x[i] += amp * math.Exp(-0.5*d*d)
	}
}

// TwoPeakBeat returns a single pulse of n samples with a tall systolic bump
// at sys and a smaller diastolic bump at dia. Both bumps have width sigma
// samples; the trough between them is the deepest point between sys and dia.
func TwoPeakBeat(n, sys, dia int, sigma float64) []float64 {
	out := make([]float64, n)
	AddGaussian(out, float64(sys), sigma, 1.0)
	AddGaussian(out, float64(dia), sigma, 0.6)
	return out
}

// PulseTrain repeats TwoPeakBeat-shaped beats every period samples over n
// samples. The first beat starts at offset.
func PulseTrain(n, offset, period int, sigma float64) []float64 {
	out := make([]float64, n)
	if period <= 0 {
		return out
	}
	for start := offset; start < n; start += period {
		AddGaussian(out, float64(start), sigma, 1.0)
		AddGaussian(out, float64(start+period*2/5), sigma*1.4, 0.6)
	}
	return out
}
