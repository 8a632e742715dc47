package ppg

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ppg/dsp/peaks"
)

// LandmarkKind names a point of interest in a pulse.
type LandmarkKind int

const (
	SystolicPeak LandmarkKind = iota + 1
	DiastolicPeak
	DicroticNotch
)

func (k LandmarkKind) String() string {
	switch k {
	case SystolicPeak:
		return "systolic peak"
	case DiastolicPeak:
		return "diastolic peak"
	case DicroticNotch:
		return "dicrotic notch"
	default:
		return "unknown"
	}
}

// Landmark is a classified sample of a window.
type Landmark struct {
	Kind      LandmarkKind
	Index     int     // window-relative
	Time      float64 // seconds, from the window's time segment
	Amplitude float64 // derivative value at Index
}

// Landmarks is the outcome of landmark detection on one window. With fewer
// than two peaks only Peaks is set.
type Landmarks struct {
	Peaks []int // window-relative, ascending

	Systolic  Landmark
	Diastolic Landmark
	Notch     Landmark
}

// Complete reports whether systolic, diastolic and notch were classified.
func (l Landmarks) Complete() bool {
	return len(l.Peaks) >= 2 && l.Notch.Kind == DicroticNotch
}

// DetectLandmarks finds the peaks of the window's derivative whose
// prominence is at least prominence and classifies them with
// ClassifyLandmarks.
func DetectLandmarks(w Window, prominence float64) (Landmarks, error) {
	if !(prominence >= 0) || math.IsInf(prominence, 0) {
		return Landmarks{}, invalidParam("prominence %v", prominence)
	}

	found := peaks.Find(w.Derivative, peaks.WithProminence(prominence))
	return ClassifyLandmarks(w, peaks.Indices(found))
}

// ClassifyLandmarks assigns landmarks to an ascending list of peak indices.
// The first peak is the systolic peak and the last the diastolic peak; the
// dicrotic notch is the lowest derivative sample strictly between them, the
// earliest one on ties. Fewer than two peaks is not an error: the result is
// simply incomplete.
func ClassifyLandmarks(w Window, peakIdx []int) (Landmarks, error) {
	n := len(w.Derivative)
	if len(w.Time) != n {
		return Landmarks{}, invalidParam("window derivative and time lengths differ: %d, %d", n, len(w.Time))
	}
	for i, p := range peakIdx {
		if p < 0 || p >= n {
			return Landmarks{}, invalidParam("peak index %d outside window of %d samples", p, n)
		}
		if i > 0 && p <= peakIdx[i-1] {
			return Landmarks{}, invalidParam("peak indices not ascending at position %d", i)
		}
	}

	lm := Landmarks{Peaks: append([]int(nil), peakIdx...)}
	if len(peakIdx) < 2 {
		return lm, nil
	}

	sys, dia := peakIdx[0], peakIdx[len(peakIdx)-1]
	if dia-sys < 2 {
		return Landmarks{Peaks: lm.Peaks}, &NotchError{Systolic: sys, Diastolic: dia}
	}
	notch := sys + 1 + floats.MinIdx(w.Derivative[sys+1:dia])

	lm.Systolic = w.landmark(SystolicPeak, sys)
	lm.Diastolic = w.landmark(DiastolicPeak, dia)
	lm.Notch = w.landmark(DicroticNotch, notch)
	return lm, nil
}

func (w Window) landmark(kind LandmarkKind, idx int) Landmark {
	return Landmark{
		Kind:      kind,
		Index:     idx,
		Time:      w.Time[idx],
		Amplitude: w.Derivative[idx],
	}
}
