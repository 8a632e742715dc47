// Package signal synthesises deterministic test signals, including a
// two-wave photoplethysmogram model.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ppg/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// PulseShape parameterises one synthetic cardiac cycle. Times are fractions
// of the beat period.
type PulseShape struct {
	SystolicAt     float64 // centre of the systolic wave
	SystolicWidth  float64 // Gaussian σ of the systolic wave
	DiastolicAt    float64
	DiastolicWidth float64
	DiastolicRatio float64 // diastolic amplitude relative to systolic
}

// DefaultPulseShape resembles a finger PPG with a clear dicrotic notch.
func DefaultPulseShape() PulseShape {
	return PulseShape{
		SystolicAt:     0.25,
		SystolicWidth:  0.07,
		DiastolicAt:    0.6,
		DiastolicWidth: 0.1,
		DiastolicRatio: 0.5,
	}
}

// PPGParams controls the synthetic photoplethysmogram.
type PPGParams struct {
	HeartRate      float64 // beats per minute
	Amplitude      float64 // systolic wave height
	Offset         float64 // DC level
	WanderHz       float64 // baseline wander frequency; 0 disables
	WanderAmp      float64
	NoiseAmplitude float64 // uniform noise in [-a, a]
	Shape          PulseShape
}

// DefaultPPGParams returns a clean 72 bpm pulse on a DC offset.
func DefaultPPGParams() PPGParams {
	return PPGParams{
		HeartRate: 72,
		Amplitude: 1,
		Offset:    2,
		Shape:     DefaultPulseShape(),
	}
}

// PPG generates samples of a synthetic pulse wave. Each beat is the sum of a
// systolic and a diastolic Gaussian; beats overlap into their neighbours so
// the waveform is continuous.
func (g *Generator) PPG(p PPGParams, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("ppg samples must be > 0: %d", samples)
	}
	if !(g.cfg.SampleRate > 0) {
		return nil, fmt.Errorf("ppg sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if !(p.HeartRate > 0) {
		return nil, fmt.Errorf("ppg heart rate must be > 0: %f", p.HeartRate)
	}
	if p.NoiseAmplitude < 0 {
		return nil, fmt.Errorf("ppg noise amplitude must be >= 0: %f", p.NoiseAmplitude)
	}

	fs := g.cfg.SampleRate
	period := 60 / p.HeartRate * fs // samples per beat
	s := p.Shape

	out := make([]float64, samples)
	for i := range out {
		out[i] = p.Offset
		if p.WanderHz > 0 {
			out[i] += p.WanderAmp * math.Sin(2*math.Pi*p.WanderHz*float64(i)/fs)
		}
	}

	// Include one beat before zero so the start is not a flat line.
	for start := -period; start < float64(samples); start += period {
		addGaussian(out, start+s.SystolicAt*period, s.SystolicWidth*period, p.Amplitude)
		addGaussian(out, start+s.DiastolicAt*period, s.DiastolicWidth*period, p.Amplitude*s.DiastolicRatio)
	}

	if p.NoiseAmplitude > 0 {
		rng := rand.New(rand.NewSource(g.cfg.Seed))
		for i := range out {
			out[i] += (rng.Float64()*2 - 1) * p.NoiseAmplitude
		}
	}

	return out, nil
}

// addGaussian adds a Gaussian bump, evaluated only within ±6σ.
func addGaussian(x []float64, center, sigma, amp float64) {
	if sigma <= 0 || amp == 0 {
		return
	}
	lo := max(0, int(math.Floor(center-6*sigma)))
	hi := min(len(x)-1, int(math.Ceil(center+6*sigma)))
	for i := lo; i <= hi; i++ {
		d := (float64(i) - center) / sigma
		x[i] += amp * math.Exp(-0.5*d*d)
	}
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.cfg.Seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
