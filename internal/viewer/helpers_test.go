package viewer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ppg/dsp/core"
	"github.com/cwbudde/algo-ppg/dsp/signal"
	"github.com/cwbudde/algo-ppg/measure/ppg"
)

const testFS = 360.0

// fakeAnalyzer returns a ten-sample window for every start and the
// configured error for selected starts.
type fakeAnalyzer struct {
	cfg   ppg.Config
	max   int
	errs  map[int]error
	calls []int
}

func newFakeAnalyzer(max, hop int) *fakeAnalyzer {
	return &fakeAnalyzer{
		cfg:  ppg.NewConfig(ppg.WithWindowSize(10), ppg.WithWindowHop(hop)),
		max:  max,
		errs: map[int]error{},
	}
}

func (f *fakeAnalyzer) Analyze(lower int) (ppg.Result, error) {
	f.calls = append(f.calls, lower)
	if err, ok := f.errs[lower]; ok {
		if _, isRange := err.(*ppg.RangeError); isRange {
			return ppg.Result{}, err
		}
		return ppg.Result{
			Window: ppg.Window{Lower: lower, Upper: lower + 10},
			Peaks:  []int{2, 3},
		}, err
	}
	return ppg.Result{Window: ppg.Window{Lower: lower, Upper: lower + 10}}, nil
}

func (f *fakeAnalyzer) MaxLower() int      { return f.max }
func (f *fakeAnalyzer) Config() ppg.Config { return f.cfg }

// recorder collects the frames it renders.
type recorder struct {
	frames []Frame
}

func (r *recorder) Render(f Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) lowers() []int {
	out := make([]int, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.Cursor.Lower
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// analyzedRecording runs the real analysis over a synthetic 72 bpm
// recording.
func analyzedRecording(t *testing.T) *ppg.Analyzer {
	t.Helper()
	g := signal.NewGenerator(core.WithSampleRate(testFS), core.WithSeed(3))
	p := signal.DefaultPPGParams()
	p.NoiseAmplitude = 0.01

	raw, err := g.PPG(p, 12*int(testFS))
	require.NoError(t, err)

	a, err := ppg.NewAnalyzer(raw, ppg.DefaultConfig(testFS))
	require.NoError(t, err)
	return a
}

func realFrame(t *testing.T) Frame {
	t.Helper()
	a := analyzedRecording(t)
	res, err := a.Analyze(360)
	require.NoError(t, err)
	require.False(t, res.Features.Empty())

	c, _ := NewCursor(a.MaxLower(), 360).Seek(360)
	return Frame{Cursor: c, Result: res}
}
