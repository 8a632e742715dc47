// Package time computes time-domain summary statistics of sample windows.
package time

import "math"

// Stats holds time-domain statistics of a window of samples.
type Stats struct {
	Length        int
	Mean          float64
	Variance      float64 // population variance
	StdDev        float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Range         float64 // max - min
	Skewness      float64
	Kurtosis      float64 // excess kurtosis
	ZeroCrossings int     // sign changes, meaningful on band-passed data
}

// Calculate computes all statistics in a single pass using Welford's
// online algorithm for the higher-order moments. An empty signal yields
// the zero Stats.
func Calculate(signal []float64) Stats {
	var acc Accumulator
	for _, x := range signal {
		acc.add(x)
	}
	return acc.Result()
}

// Accumulator collects statistics sample by sample. The zero value is ready
// to use. Non-finite samples passed to Add are counted as skipped and do not
// contribute to any statistic.
type Accumulator struct {
	n       int
	skipped int

	mean float64
	m2   float64
	m3   float64
	m4   float64

	sumSq  float64
	maxVal float64
	maxPos int
	minVal float64
	minPos int

	zeroCrossings int
	last          float64

	// pos is the index of the next sample offered, including skipped ones.
	pos int
}

// Add offers samples to the accumulator.
func (a *Accumulator) Add(samples ...float64) {
	for _, x := range samples {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			a.skipped++
			a.pos++
			continue
		}
		a.add(x)
	}
}

func (a *Accumulator) add(x float64) {
	i := a.n
	a.n++
	ni := float64(a.n)

	delta := x - a.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(i)

	// M4 must be updated before M3, and M3 before M2.
	a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
	a.m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*a.m2
	a.m2 += term1
	a.mean += deltaN

	a.sumSq += x * x

	if i == 0 {
		a.maxVal, a.maxPos = x, a.pos
		a.minVal, a.minPos = x, a.pos
	} else {
		if x > a.maxVal {
			a.maxVal, a.maxPos = x, a.pos
		}
		if x < a.minVal {
			a.minVal, a.minPos = x, a.pos
		}
		if a.last*x < 0 {
			a.zeroCrossings++
		}
	}

	a.last = x
	a.pos++
}

// Count returns the number of finite samples accumulated.
func (a *Accumulator) Count() int { return a.n }

// Skipped returns the number of non-finite samples that were ignored.
func (a *Accumulator) Skipped() int { return a.skipped }

// Mean returns the running mean of the finite samples, or 0 if none.
func (a *Accumulator) Mean() float64 { return a.mean }

// Result computes the final statistics. Positions index into the full
// sequence offered to Add, skipped samples included.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{}
	}

	nf := float64(a.n)
	variance := a.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (a.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:        a.n,
		Mean:          a.mean,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		RMS:           math.Sqrt(a.sumSq / nf),
		Max:           a.maxVal,
		MaxPos:        a.maxPos,
		Min:           a.minVal,
		MinPos:        a.minPos,
		Range:         a.maxVal - a.minVal,
		Skewness:      skewness,
		Kurtosis:      kurtosis,
		ZeroCrossings: a.zeroCrossings,
	}
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Mean returns the mean of the signal using Kahan summation, or 0 for an
// empty signal.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}
