package ppg

import (
	"fmt"

	"github.com/cwbudde/algo-ppg/dsp/spectrum"
	"github.com/cwbudde/algo-ppg/dsp/window"
	"github.com/cwbudde/algo-ppg/stats/frequency"
)

// spectralFFTSize zero-pads short windows for a finer rate grid: at 360 Hz
// one bin is about 2.6 bpm before interpolation.
const spectralFFTSize = 8192

// Spectrum summarises the heart-rate band of a segment.
type Spectrum struct {
	Rate    float64         // bpm of the strongest in-band component
	Band    frequency.Stats // descriptors over the rate band
	Quality float64         // share of the segment power inside the band, 0..1
}

// AnalyzeSpectrum estimates the periodogram of segment and describes the
// rate band. Rate is refined by parabolic interpolation around the
// strongest bin.
func AnalyzeSpectrum(segment []float64, fs float64, band Band) (Spectrum, error) {
	if !(band.High > band.Low) || band.Low < 0 {
		return Spectrum{}, invalidParam("rate band [%v, %v] Hz", band.Low, band.High)
	}

	p, err := spectrum.Estimate(segment, fs,
		spectrum.WithWindow(window.TypeHann),
		spectrum.WithMinFFTSize(spectralFFTSize),
	)
	if err != nil {
		return Spectrum{}, invalidParam("%v", err)
	}

	f, _, ok := p.PeakIn(band.Low, band.High)
	if !ok {
		return Spectrum{}, fmt.Errorf("%w: [%v, %v] Hz", ErrNoSpectralPeak, band.Low, band.High)
	}

	s := Spectrum{
		Rate: 60 * f,
		Band: frequency.Calculate(p.Freqs, p.Power, band.Low, band.High),
	}
	if total := p.TotalPower(0, fs/2); total > 0 {
		s.Quality = s.Band.Power / total
	}
	return s, nil
}

// SpectralRate estimates the heart rate of a segment in bpm from the
// strongest spectral component inside band. It is independent of peak
// detection and serves as a cross-check of FeatureSet.HeartRate.
func SpectralRate(segment []float64, fs float64, band Band) (float64, error) {
	s, err := AnalyzeSpectrum(segment, fs, band)
	return s.Rate, err
}
