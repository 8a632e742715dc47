// Package peaks locates local maxima in sampled signals and measures how
// far each one stands out from its surroundings.
package peaks

import "math"

// Peak is one detected local maximum.
type Peak struct {
	Index      int     // sample index of the maximum (plateau midpoint)
	Height     float64 // x[Index]
	Prominence float64 // Height minus the higher of the two bases
	LeftBase   int     // index of the minimum on the left side
	RightBase  int     // index of the minimum on the right side
}

// Option configures Find.
type Option func(*config)

type config struct {
	minProminence float64
}

// WithProminence keeps only peaks whose prominence is >= p.
func WithProminence(p float64) Option {
	return func(c *config) {
		if p >= 0 {
			c.minProminence = p
		}
	}
}

// Find returns the local maxima of x in ascending index order, filtered by
// the given options. The first and last samples are never peaks. A flat
// top of several equal samples counts once, at its midpoint (rounded down).
//
// Prominence follows the topographic definition: from the peak, walk left
// until a strictly higher sample or the signal edge and take the minimum
// passed; do the same on the right; the prominence is the peak height minus
// the larger of the two minima.
func Find(x []float64, opts ...Option) []Peak {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	idx := LocalMaxima(x)

	out := make([]Peak, 0, len(idx))
	for _, i := range idx {
		p := measure(x, i)
		if p.Prominence >= cfg.minProminence {
			out = append(out, p)
		}
	}

	return out
}

// Indices returns the sample indices of peaks.
func Indices(peaks []Peak) []int {
	out := make([]int, len(peaks))
	for i := range peaks {
		out[i] = peaks[i].Index
	}
	return out
}

// LocalMaxima returns the indices of all samples that are higher than their
// left neighbour and higher than the first differing sample on their right.
func LocalMaxima(x []float64) []int {
	n := len(x)
	var out []int

	iMax := n - 1
	for i := 1; i < iMax; i++ {
		if !(x[i-1] < x[i]) {
			continue
		}

		ahead := i + 1
		for ahead < iMax && x[ahead] == x[i] {
			ahead++
		}

		if x[ahead] < x[i] {
			out = append(out, (i+ahead-1)/2)
			i = ahead
		}
	}

	return out
}

func measure(x []float64, peak int) Peak {
	h := x[peak]

	leftMin, leftBase := h, peak
	for i := peak; i >= 0 && x[i] <= h; i-- {
		if x[i] < leftMin {
			leftMin, leftBase = x[i], i
		}
	}

	rightMin, rightBase := h, peak
	for i := peak; i < len(x) && x[i] <= h; i++ {
		if x[i] < rightMin {
			rightMin, rightBase = x[i], i
		}
	}

	return Peak{
		Index:      peak,
		Height:     h,
		Prominence: h - math.Max(leftMin, rightMin),
		LeftBase:   leftBase,
		RightBase:  rightBase,
	}
}
