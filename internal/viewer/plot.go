package viewer

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-ppg/measure/ppg"
)

// PlotFile is the name of the PNG written by PlotRenderer.
const PlotFile = "window.png"

var (
	colorRaw       = color.RGBA{B: 200, A: 255}
	colorDeriv     = color.RGBA{R: 200, A: 255}
	colorPeak      = color.Black
	colorSystolic  = color.RGBA{B: 255, A: 255}
	colorDiastolic = color.RGBA{R: 255, A: 255}
	colorNotch     = color.RGBA{R: 128, B: 128, A: 255}
	colorSysPhase  = color.RGBA{R: 255, G: 255, A: 80}
	colorDiaPhase  = color.RGBA{G: 255, B: 255, A: 80}
)

// PlotRenderer draws the current window as a PNG: raw and derivative
// segments, detected peaks, landmarks and the two cardiac phases.
type PlotRenderer struct {
	path          string
	width, height vg.Length
}

// NewPlotRenderer writes dir/window.png, replacing it on every frame.
func NewPlotRenderer(dir string) *PlotRenderer {
	return &PlotRenderer{
		path:   filepath.Join(dir, PlotFile),
		width:  12 * vg.Inch,
		height: 6 * vg.Inch,
	}
}

// Path returns the output file.
func (r *PlotRenderer) Path() string { return r.path }

func (r *PlotRenderer) Render(f Frame) error {
	w := f.Result.Window
	if w.Len() == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Window [%d, %d)", w.Lower, w.Upper)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude"
	p.Legend.Top = true
	p.Legend.Left = true

	lm := f.Result.Landmarks
	if lm.Complete() {
		lo := min(floats.Min(w.Derivative), floats.Min(w.Raw))
		hi := max(floats.Max(w.Derivative), floats.Max(w.Raw))
		if err := addSpan(p, "Systolic phase", lm.Systolic.Time, lm.Notch.Time, lo, hi, colorSysPhase); err != nil {
			return err
		}
		if err := addSpan(p, "Diastolic phase", lm.Notch.Time, lm.Diastolic.Time, lo, hi, colorDiaPhase); err != nil {
			return err
		}
	}

	if err := addLine(p, "Original", w.Time, w.Raw, colorRaw); err != nil {
		return err
	}
	if err := addLine(p, "Derivative", w.Time, w.Derivative, colorDeriv); err != nil {
		return err
	}

	if len(f.Result.Peaks) > 0 {
		pts := make(plotter.XYs, len(f.Result.Peaks))
		for i, idx := range f.Result.Peaks {
			pts[i] = plotter.XY{X: w.Time[idx], Y: w.Derivative[idx]}
		}
		if err := addPoints(p, "Peaks", pts, colorPeak, 2); err != nil {
			return err
		}
	}

	if lm.Complete() {
		for _, l := range []struct {
			name string
			mark ppg.Landmark
			c    color.Color
		}{
			{"Systolic peak", lm.Systolic, colorSystolic},
			{"Diastolic peak", lm.Diastolic, colorDiastolic},
			{"Dicrotic notch", lm.Notch, colorNotch},
		} {
			pts := plotter.XYs{{X: l.mark.Time, Y: l.mark.Amplitude}}
			if err := addPoints(p, l.name, pts, l.c, 4); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	return p.Save(r.width, r.height, r.path)
}

func addLine(p *plot.Plot, name string, x, y []float64, c color.Color) error {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

func addPoints(p *plot.Plot, name string, pts plotter.XYs, c color.Color, radius float64) error {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(radius)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	p.Legend.Add(name, sc)
	return nil
}

func addSpan(p *plot.Plot, name string, from, to, lo, hi float64, c color.Color) error {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: from, Y: lo}, {X: to, Y: lo}, {X: to, Y: hi}, {X: from, Y: hi},
	})
	if err != nil {
		return err
	}
	poly.Color = c
	poly.LineStyle.Width = 0
	p.Add(poly)
	p.Legend.Add(name, poly)
	return nil
}
