// Package export renders stored run traces as publication-style
// figures. The output format follows the file extension (.svg, .png,
// .pdf).
package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Trace is the minimal trajectory view the figures need: four
// row-aligned series keyed by time.
type Trace struct {
	Times []float64
	Te    []float64
	Tph   []float64
	M     []float64
}

// MagnetizationFigure plots m(t) with the time axis in femtoseconds.
func MagnetizationFigure(tr *Trace) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Magnetization"
	p.X.Label.Text = "Time (fs)"
	p.Y.Label.Text = "m"

	line, err := plotter.NewLine(xy(tr.Times, tr.M))
	if err != nil {
		return nil, err
	}
	p.Add(line)
	p.Add(plotter.NewGrid())
	return p, nil
}

// TemperatureFigure plots both bath temperatures against time in
// femtoseconds.
func TemperatureFigure(tr *Trace) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Electron and phonon temperatures"
	p.X.Label.Text = "Time (fs)"
	p.Y.Label.Text = "T (K)"

	te, err := plotter.NewLine(xy(tr.Times, tr.Te))
	if err != nil {
		return nil, err
	}
	tph, err := plotter.NewLine(xy(tr.Times, tr.Tph))
	if err != nil {
		return nil, err
	}
	tph.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(te, tph)
	p.Add(plotter.NewGrid())
	p.Legend.Add("Te", te)
	p.Legend.Add("Tph", tph)
	p.Legend.Top = true
	return p, nil
}

// Save writes the figure at 6x4 inches; format follows the extension.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func xy(t, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(t))
	for i := range t {
		pts[i].X = t[i] * 1e15 // seconds to fs
		pts[i].Y = y[i]
	}
	return pts
}
