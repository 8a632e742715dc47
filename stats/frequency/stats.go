// Package frequency computes shape descriptors of a one-sided power
// spectrum, optionally restricted to a frequency band.
//
// Spectra are given as two parallel slices: ascending bin frequencies in Hz
// and the power (or power density) of each bin. Descriptors weight bins by
// power, not magnitude.
package frequency

import "math"

// Stats holds the descriptors of a spectrum band.
type Stats struct {
	Bins int // bins inside the band

	Power     float64 // power integrated over the band
	PeakFreq  float64 // frequency of the strongest bin (Hz)
	PeakPower float64

	Centroid  float64 // power-weighted mean frequency (Hz)
	Spread    float64 // power-weighted standard deviation around Centroid (Hz)
	Flatness  float64 // geometric over arithmetic mean of power, 0..1
	Rolloff   float64 // frequency below which 85% of the band power lies (Hz)
	Bandwidth float64 // half-power width around the peak (Hz)
}

// RolloffFraction is the cumulative power share used by Calculate.
const RolloffFraction = 0.85

// Calculate computes all descriptors for the bins with lo <= f <= hi. An
// empty band yields the zero Stats.
func Calculate(freqs, power []float64, lo, hi float64) Stats {
	f, p := Band(freqs, power, lo, hi)
	if len(f) == 0 {
		return Stats{}
	}

	s := Stats{Bins: len(f)}

	total := 0.0
	peak := 0
	for i, v := range p {
		total += v
		if v > p[peak] {
			peak = i
		}
	}
	s.Power = total * resolution(freqs)
	s.PeakFreq = f[peak]
	s.PeakPower = p[peak]

	s.Centroid = centroid(f, p, total)
	s.Spread = spread(f, p, s.Centroid, total)
	s.Flatness = Flatness(p)
	s.Rolloff = rolloff(f, p, RolloffFraction, total)
	s.Bandwidth = bandwidth(f, p, peak)

	return s
}

// Band returns the sub-slices of freqs and power covering [lo, hi].
// freqs must be ascending.
func Band(freqs, power []float64, lo, hi float64) ([]float64, []float64) {
	n := min(len(freqs), len(power))
	start := 0
	for start < n && freqs[start] < lo {
		start++
	}
	end := start
	for end < n && freqs[end] <= hi {
		end++
	}
	return freqs[start:end], power[start:end]
}

// Centroid returns the power-weighted mean frequency.
//
//	centroid = sum(f_i * P_i) / sum(P_i)
func Centroid(freqs, power []float64) float64 {
	total := 0.0
	for _, v := range power {
		total += v
	}
	return centroid(freqs, power, total)
}

func centroid(freqs, power []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range power {
		weighted += freqs[i] * v
	}
	return weighted / total
}

func spread(freqs, power []float64, cent, total float64) float64 {
	if total == 0 {
		return 0
	}
	sq := 0.0
	for i, v := range power {
		d := freqs[i] - cent
		sq += d * d * v
	}
	return math.Sqrt(sq / total)
}

// Flatness returns the spectral flatness (Wiener entropy) of power, 0 for a
// spectrum with any empty bin and 1 for white noise.
func Flatness(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, v := range power {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += mathLog(v)
	}

	n := float64(len(power))
	return mathExp(sumLog/n) / (sumLin / n)
}

// Rolloff returns the frequency below which fraction (0..1) of the power
// lies.
func Rolloff(freqs, power []float64, fraction float64) float64 {
	total := 0.0
	for _, v := range power {
		total += v
	}
	return rolloff(freqs, power, fraction, total)
}

func rolloff(freqs, power []float64, fraction, total float64) float64 {
	if len(power) == 0 || total == 0 {
		return 0
	}
	threshold := fraction * total
	cum := 0.0
	for i, v := range power {
		cum += v
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// Bandwidth returns the width between the half-power points around the
// strongest bin, interpolated linearly between bins.
func Bandwidth(freqs, power []float64) float64 {
	if len(power) == 0 {
		return 0
	}
	peak := 0
	for i, v := range power {
		if v > power[peak] {
			peak = i
		}
	}
	return bandwidth(freqs, power, peak)
}

func bandwidth(freqs, power []float64, peak int) float64 {
	n := len(power)
	if n < 2 || power[peak] <= 0 {
		return 0
	}
	threshold := power[peak] / 2

	lower := freqs[0]
	for i := peak; i >= 1; i-- {
		if power[i-1] <= threshold && power[i] > threshold {
			lower = interpFreq(freqs[i-1], freqs[i], power[i-1], power[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peak; i < n-1; i++ {
		if power[i+1] <= threshold && power[i] > threshold {
			upper = interpFreq(freqs[i], freqs[i+1], power[i], power[i+1], threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

// interpFreq finds where the line through (fLow, pLow) and (fHigh, pHigh)
// crosses threshold.
func interpFreq(fLow, fHigh, pLow, pHigh, threshold float64) float64 {
	den := pHigh - pLow
	if den == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - pLow) / den
	return fLow + t*(fHigh-fLow)
}

// resolution is the bin spacing, 0 for fewer than two bins.
func resolution(freqs []float64) float64 {
	if len(freqs) < 2 {
		return 0
	}
	return freqs[1] - freqs[0]
}
