// Package spectrum estimates power spectra of short real-valued segments.
//
// [Estimate] windows and zero-pads a segment, runs it through the algo-fft
// backend and returns the one-sided power spectral density. The bin helpers
// ([Power], [Magnitude]) operate on complex bins from any FFT backend.
package spectrum
