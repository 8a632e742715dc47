// Package ppg extracts pulse-wave features from photoplethysmogram (PPG)
// recordings.
//
// The pipeline conditions the whole recording once and then analyses one
// fixed-length window at a time:
//
//   - [Filter]: zero-phase Butterworth low-pass (3 Hz) then high-pass (0.8 Hz)
//   - [Derivative]: central-difference derivative, the detection surface
//   - [ExtractWindow]: half-open slice [lower, lower+size) of raw, derivative and time
//   - [DetectLandmarks]: prominence-filtered peaks, systolic/diastolic/notch
//   - [ComputeFeatures]: PWA, PPT, PWD, heart rate and phase intervals
//
// Peaks are classified by position: the first peak of a window is taken as
// systolic and the last as diastolic, whatever their amplitudes. Windows
// with spurious leading or trailing peaks are therefore misclassified; raise
// the prominence threshold to suppress them.
//
// # Usage
//
//	cfg := ppg.DefaultConfig(360)
//	a, err := ppg.NewAnalyzer(samples, cfg)
//	if err != nil { ... }
//	res, err := a.Analyze(0)
//	fmt.Printf("HR = %.1f bpm\n", res.Features.HeartRate)
//
// All functions are pure; an [Analyzer] is immutable after construction
// and safe for concurrent use.
package ppg
