package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ppg/dsp/window"
)

var (
	errShortSegment = errors.New("spectrum: segment needs at least 2 samples")
	errSampleRate   = errors.New("spectrum: sample rate must be > 0")
)

// Periodogram is a one-sided power spectral density estimate.
type Periodogram struct {
	Freqs      []float64 // bin centre frequencies in Hz, 0..fs/2
	Power      []float64 // density in units²/Hz
	Resolution float64   // bin spacing in Hz
	FFTSize    int
}

// Option configures Estimate.
type Option func(*config)

type config struct {
	window  window.Type
	minSize int
	detrend bool
}

// WithWindow selects the taper applied before the transform. Default Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) { c.window = t }
}

// WithMinFFTSize zero-pads the segment to at least n points. The transform
// size is always rounded up to a power of two.
func WithMinFFTSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minSize = n
		}
	}
}

// WithoutDetrend keeps the segment mean instead of removing it.
func WithoutDetrend() Option {
	return func(c *config) { c.detrend = false }
}

// Estimate computes the periodogram of x sampled at fs.
func Estimate(x []float64, fs float64, opts ...Option) (Periodogram, error) {
	if len(x) < 2 {
		return Periodogram{}, errShortSegment
	}
	if !(fs > 0) || math.IsInf(fs, 0) {
		return Periodogram{}, errSampleRate
	}

	cfg := config{window: window.TypeHann, detrend: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(x)
	size := nextPow2(max(n, cfg.minSize))

	seg := make([]float64, n)
	copy(seg, x)
	if cfg.detrend {
		mean := 0.0
		for _, v := range seg {
			mean += v
		}
		mean /= float64(n)
		for i := range seg {
			seg[i] -= mean
		}
	}

	coeffs := window.Generate(cfg.window, n)
	if err := window.ApplyCoefficientsInPlace(seg, coeffs); err != nil {
		return Periodogram{}, err
	}

	winEnergy := 0.0
	for _, w := range coeffs {
		winEnergy += w * w
	}
	if winEnergy == 0 {
		return Periodogram{}, fmt.Errorf("spectrum: %s window has zero energy for %d samples", cfg.window, n)
	}

	in := make([]complex128, size)
	for i, v := range seg {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Periodogram{}, fmt.Errorf("spectrum: fft plan of size %d: %w", size, err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Periodogram{}, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	half := size/2 + 1
	pow := Power(out[:half])

	// Density scaling, with the energy of the discarded negative half folded
	// into every bin except DC and Nyquist.
	scale := make([]float64, half)
	base := 1 / (fs * winEnergy)
	for k := range scale {
		scale[k] = 2 * base
	}
	scale[0] = base
	scale[half-1] = base
	vecmath.MulBlockInPlace(pow, scale)

	res := fs / float64(size)
	freqs := make([]float64, half)
	for k := range freqs {
		freqs[k] = float64(k) * res
	}

	return Periodogram{
		Freqs:      freqs,
		Power:      pow,
		Resolution: res,
		FFTSize:    size,
	}, nil
}

// PeakIn returns the frequency of the strongest bin within [lo, hi] Hz,
// refined by parabolic interpolation over its neighbours. ok is false when
// the band holds no bins or carries no power.
func (p Periodogram) PeakIn(lo, hi float64) (freq, power float64, ok bool) {
	best := -1
	for k, f := range p.Freqs {
		if f < lo || f > hi {
			continue
		}
		if best < 0 || p.Power[k] > p.Power[best] {
			best = k
		}
	}
	if best < 0 || p.Power[best] <= 0 {
		return 0, 0, false
	}

	freq = p.Freqs[best]
	power = p.Power[best]
	if best == 0 || best == len(p.Power)-1 {
		return freq, power, true
	}

	a, b, c := p.Power[best-1], p.Power[best], p.Power[best+1]
	den := a - 2*b + c
	if den == 0 {
		return freq, power, true
	}
	delta := 0.5 * (a - c) / den
	if delta < -0.5 || delta > 0.5 {
		return freq, power, true
	}

	return freq + delta*p.Resolution, b - 0.25*(a-c)*delta, true
}

// TotalPower integrates the density over [lo, hi] Hz.
func (p Periodogram) TotalPower(lo, hi float64) float64 {
	sum := 0.0
	for k, f := range p.Freqs {
		if f >= lo && f <= hi {
			sum += p.Power[k]
		}
	}
	return sum * p.Resolution
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
