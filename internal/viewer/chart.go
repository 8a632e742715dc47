package viewer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartFile is the name of the HTML page written by ChartRenderer.
const ChartFile = "window.html"

// maxOverviewPoints bounds the overview series; longer recordings are
// decimated.
const maxOverviewPoints = 4000

// ChartRenderer writes an interactive HTML page with an overview of the
// whole recording and the current window with its landmarks.
type ChartRenderer struct {
	path  string
	title string
	time  []float64
	raw   []float64
}

// NewChartRenderer writes dir/window.html. time and raw are the full
// recording, drawn in the overview.
func NewChartRenderer(dir, title string, time, raw []float64) *ChartRenderer {
	return &ChartRenderer{
		path:  filepath.Join(dir, ChartFile),
		title: title,
		time:  time,
		raw:   raw,
	}
}

// Path returns the output file.
func (r *ChartRenderer) Path() string { return r.path }

func (r *ChartRenderer) Render(f Frame) error {
	w := f.Result.Window
	if w.Len() == 0 {
		return nil
	}

	page := components.NewPage()
	page.PageTitle = "PPG " + r.title
	page.AddCharts(r.overview(w.Lower, w.Upper), r.window(f))

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(r.path)
	if err != nil {
		return err
	}
	if err := page.Render(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (r *ChartRenderer) overview(lower, upper int) *charts.Line {
	stride := max(1, len(r.raw)/maxOverviewPoints)

	all := make([]opts.LineData, 0, len(r.raw)/stride+1)
	win := make([]opts.LineData, 0, (upper-lower)/stride+1)
	for i := 0; i < len(r.raw); i += stride {
		all = append(all, xy(r.time[i], r.raw[i]))
		if i >= lower && i < upper {
			win = append(win, xy(r.time[i], r.raw[i]))
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "300px"}),
		charts.WithTitleOpts(opts.Title{Title: "Raw signal", Subtitle: r.title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time (s)"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)
	line.AddSeries("Raw", all, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})).
		AddSeries("Window", win, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

func (r *ChartRenderer) window(f Frame) *charts.Line {
	w := f.Result.Window
	raw := make([]opts.LineData, w.Len())
	deriv := make([]opts.LineData, w.Len())
	for i := range w.Time {
		raw[i] = xy(w.Time[i], w.Raw[i])
		deriv[i] = xy(w.Time[i], w.Derivative[i])
	}

	subtitle := fmt.Sprintf("[%d, %d)", w.Lower, w.Upper)
	if f.Err != nil {
		subtitle += " " + f.Err.Error()
	} else if !f.Result.Features.Empty() {
		subtitle += fmt.Sprintf(" HR %.1f bpm, PWA %.2f", f.Result.Features.HeartRate, f.Result.Features.PWA)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Sliding window", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time (s)", Min: w.Time[0], Max: w.Time[len(w.Time)-1]}),
	)
	line.AddSeries("Original", raw, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)})).
		AddSeries("Derivative", deriv, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	marks := charts.NewScatter()
	if len(f.Result.Peaks) > 0 {
		peaks := make([]opts.ScatterData, len(f.Result.Peaks))
		for i, idx := range f.Result.Peaks {
			peaks[i] = opts.ScatterData{Value: []any{w.Time[idx], w.Derivative[idx]}, SymbolSize: 6}
		}
		marks.AddSeries("Peaks", peaks)
	}
	if lm := f.Result.Landmarks; lm.Complete() {
		for _, l := range []struct {
			name string
			t, a float64
		}{
			{"Systolic peak", lm.Systolic.Time, lm.Systolic.Amplitude},
			{"Diastolic peak", lm.Diastolic.Time, lm.Diastolic.Amplitude},
			{"Dicrotic notch", lm.Notch.Time, lm.Notch.Amplitude},
		} {
			marks.AddSeries(l.name, []opts.ScatterData{{Value: []any{l.t, l.a}, SymbolSize: 12}})
		}
	}
	line.Overlap(marks)
	return line
}

func xy(x, y float64) opts.LineData {
	return opts.LineData{Value: []any{x, y}}
}
