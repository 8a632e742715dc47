package viewer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-ppg/measure/ppg"
)

// TextRenderer prints the feature block of each frame.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer writes to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(f Frame) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	win := f.Result.Window

	fmt.Fprintf(tw, "Window\t[%d, %d)", win.Lower, win.Upper)
	if n := len(win.Time); n > 0 {
		fmt.Fprintf(tw, "\t%.2fs - %.2fs", win.Time[0], win.Time[n-1])
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Peaks\t%v\n", f.Result.Peaks)

	if f.Err != nil {
		fmt.Fprintf(tw, "Error\t%v\n", f.Err)
	}

	metrics := f.Result.Features.Metrics()
	if len(metrics) == 0 {
		fmt.Fprintln(tw, "Features\tnone")
	}
	for _, m := range metrics {
		fmt.Fprintf(tw, "%s\t%s\n", m.Name, formatMetric(m))
	}

	if win.Len() > 0 {
		st := f.Result.RawStats
		fmt.Fprintf(tw, "Raw mean\t%.3f\n", st.Mean)
		fmt.Fprintf(tw, "Raw RMS\t%.3f\n", st.RMS)
		fmt.Fprintf(tw, "Raw range\t%.3f\t[%.3f, %.3f]\n", st.Range, st.Min, st.Max)
	}
	if sp := f.Result.Spectrum; f.Result.SpectralErr == nil && sp.Rate > 0 {
		fmt.Fprintf(tw, "Spectral HR\t%.2f bpm\n", sp.Rate)
		fmt.Fprintf(tw, "Band quality\t%.2f\tflatness %.2f, bandwidth %.2f Hz\n", sp.Quality, sp.Band.Flatness, sp.Band.Bandwidth)
	}
	fmt.Fprintln(tw)

	return tw.Flush()
}

func formatMetric(m ppg.Metric) string {
	if m.Unit == "" {
		return fmt.Sprintf("%.2f", m.Value)
	}
	if m.Unit == "s" {
		return fmt.Sprintf("%.2fs", m.Value)
	}
	return fmt.Sprintf("%.2f %s", m.Value, m.Unit)
}
