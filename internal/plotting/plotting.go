package plotting

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	colorBlack  = color.RGBA{A: 255}
	colorBlue   = color.RGBA{B: 180, A: 255}
	colorOrange = color.RGBA{R: 230, G: 140, A: 255}
	colorRed    = color.RGBA{R: 200, A: 255}
	colorGreen  = color.RGBA{G: 140, A: 255}
	colorPurple = color.RGBA{R: 120, B: 150, A: 255}
)

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func save(p *plot.Plot, dir, name string, w, h vg.Length) (string, error) {
	path := filepath.Join(dir, name)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return path, nil
}

// timeSeries builds an XY set from parallel time/value slices, dropping NaNs.
func timeSeries(times []time.Time, values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if i >= len(times) || math.IsNaN(v) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(times[i].Unix()), Y: v})
	}
	return xys
}

func newTimePlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true
	return p
}

// hLine draws a horizontal threshold line across the plotted x range.
func hLine(p *plot.Plot, xs plotter.XYs, y float64, c color.Color, dashed bool) (*plotter.Line, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("empty series for threshold line")
	}
	minX, maxX := xs[0].X, xs[0].X
	for _, xy := range xs {
		if xy.X < minX {
			minX = xy.X
		}
		if xy.X > maxX {
			maxX = xy.X
		}
	}
	l, err := plotter.NewLine(plotter.XYs{{X: minX, Y: y}, {X: maxX, Y: y}})
	if err != nil {
		return nil, err
	}
	l.Color = c
	if dashed {
		l.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}
	p.Add(l)
	return l, nil
}

func line(xys plotter.XYs, c color.Color) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = vg.Points(0.75)
	return l, nil
}

func scatter(xys plotter.XYs, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.Color = c
	s.Radius = vg.Points(1)
	return s, nil
}
