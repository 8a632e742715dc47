package ppg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Interval is a span of recording time in seconds.
type Interval struct {
	Start, End float64
}

// Duration returns End - Start.
func (i Interval) Duration() float64 { return i.End - i.Start }

// FeatureSet holds the pulse-wave metrics of one window. The zero value is
// the empty set, returned when fewer than two peaks were detected.
type FeatureSet struct {
	Systolic  Landmark
	Diastolic Landmark
	Notch     Landmark

	PWA       float64   // systolic minus diastolic amplitude, not clamped
	Intervals []float64 // seconds between consecutive peaks
	PPT       float64   // mean of Intervals
	PWD       float64   // diastolic time minus systolic time
	HeartRate float64   // 60 / PPT, bpm

	SystolicPhase  Interval // systolic peak to notch
	DiastolicPhase Interval // notch to diastolic peak
}

// Empty reports whether no features were computed.
func (f FeatureSet) Empty() bool {
	return len(f.Intervals) == 0
}

// ComputeFeatures derives the pulse-wave metrics from classified landmarks.
// Incomplete landmarks give the empty FeatureSet and no error. Equal peak
// positions make the pulse period zero, which fails with ErrDivisionByZero.
func ComputeFeatures(w Window, lm Landmarks, fs float64) (FeatureSet, error) {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return FeatureSet{}, invalidParam("sample rate %v", fs)
	}
	if !lm.Complete() {
		return FeatureSet{}, nil
	}

	intervals := make([]float64, len(lm.Peaks)-1)
	for i := range intervals {
		intervals[i] = float64(lm.Peaks[i+1]-lm.Peaks[i]) / fs
	}

	ppt := stat.Mean(intervals, nil)
	if ppt == 0 {
		return FeatureSet{}, divisionByZero(w, lm)
	}

	return FeatureSet{
		Systolic:  lm.Systolic,
		Diastolic: lm.Diastolic,
		Notch:     lm.Notch,

		PWA:       lm.Systolic.Amplitude - lm.Diastolic.Amplitude,
		Intervals: intervals,
		PPT:       ppt,
		PWD:       lm.Diastolic.Time - lm.Systolic.Time,
		HeartRate: 60 / ppt,

		SystolicPhase:  Interval{Start: lm.Systolic.Time, End: lm.Notch.Time},
		DiastolicPhase: Interval{Start: lm.Notch.Time, End: lm.Diastolic.Time},
	}, nil
}

func divisionByZero(w Window, lm Landmarks) error {
	return fmt.Errorf("%w: zero mean pulse period in window at %d, peaks %v", ErrDivisionByZero, w.Lower, lm.Peaks)
}
