package ppg

// Metric is one named value of a FeatureSet, ready for display.
type Metric struct {
	Name  string
	Value float64
	Unit  string
}

// Metrics lists the features in display order. The phase times are the
// systolic and diastolic peak times. The empty set yields nil.
func (f FeatureSet) Metrics() []Metric {
	if f.Empty() {
		return nil
	}
	return []Metric{
		{Name: "PWSP", Value: f.Systolic.Amplitude},
		{Name: "PWDP", Value: f.Diastolic.Amplitude},
		{Name: "PWA", Value: f.PWA},
		{Name: "Dicrotic Notch", Value: f.Notch.Amplitude},
		{Name: "PPT", Value: f.PPT, Unit: "s"},
		{Name: "PWD", Value: f.PWD, Unit: "s"},
		{Name: "Heart Rate", Value: f.HeartRate, Unit: "bpm"},
		{Name: "Systolic Phase Time", Value: f.Systolic.Time, Unit: "s"},
		{Name: "Diastolic Phase Time", Value: f.Diastolic.Time, Unit: "s"},
		{Name: "Systolic Phase Duration", Value: f.SystolicPhase.Duration(), Unit: "s"},
		{Name: "Diastolic Phase Duration", Value: f.DiastolicPhase.Duration(), Unit: "s"},
	}
}
