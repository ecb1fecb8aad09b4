package plotting

import (
	"fmt"
	"image/color"
	"math"

	"VolLab/internal/hypothesis"
	"VolLab/internal/regime"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveClusteringPlots writes the four clustering diagnostics as separate
// PNG files and returns their paths.
func SaveClusteringPlots(res *hypothesis.ClusteringResult, dir string) ([]string, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	var paths []string
	savers := []func() (string, error){
		func() (string, error) { return saveReturnsRegimes(res, dir) },
		func() (string, error) { return saveRollingVol(res, dir) },
		func() (string, error) { return saveACF(res, dir) },
		func() (string, error) { return saveVolHistogram(res, dir) },
	}
	for _, s := range savers {
		path, err := s()
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveReturnsRegimes(res *hypothesis.ClusteringResult, dir string) (string, error) {
	p := newTimePlot("Returns with Volatility Regimes", "Returns")

	all := timeSeries(res.Times, res.Returns)
	l, err := line(all, colorBlack)
	if err != nil {
		return "", err
	}
	p.Add(l)

	// Overlay the high/low regime bars as coloured points.
	for _, rg := range []struct {
		label regime.Label
		name  string
		c     color.Color
	}{
		{regime.High, "High Vol", colorRed},
		{regime.Low, "Low Vol", colorGreen},
	} {
		xys := make(plotter.XYs, 0)
		for i, lab := range res.Labels {
			if lab == rg.label {
				xys = append(xys, plotter.XY{X: float64(res.Times[i].Unix()), Y: res.Returns[i]})
			}
		}
		if len(xys) == 0 {
			continue
		}
		s, err := scatter(xys, rg.c)
		if err != nil {
			return "", err
		}
		p.Add(s)
		p.Legend.Add(rg.name, s)
	}

	return save(p, dir, "clustering_returns_regimes.png", 12*vg.Inch, 4*vg.Inch)
}

func saveRollingVol(res *hypothesis.ClusteringResult, dir string) (string, error) {
	p := newTimePlot("Rolling Volatility", "Volatility (Std Dev)")

	fast := timeSeries(res.Times, res.VolFast)
	lf, err := line(fast, colorBlue)
	if err != nil {
		return "", err
	}
	p.Add(lf)
	p.Legend.Add("fast window", lf)

	slow := timeSeries(res.Times, res.VolSlow)
	ls, err := line(slow, colorOrange)
	if err != nil {
		return "", err
	}
	p.Add(ls)
	p.Legend.Add("slow window", ls)

	hi, err := hLine(p, fast, res.Thresholds.High, colorRed, true)
	if err != nil {
		return "", err
	}
	p.Legend.Add(fmt.Sprintf("high threshold (%.6f)", res.Thresholds.High), hi)
	lo, err := hLine(p, fast, res.Thresholds.Low, colorGreen, true)
	if err != nil {
		return "", err
	}
	p.Legend.Add(fmt.Sprintf("low threshold (%.6f)", res.Thresholds.Low), lo)

	return save(p, dir, "clustering_rolling_vol.png", 12*vg.Inch, 4*vg.Inch)
}

func saveACF(res *hypothesis.ClusteringResult, dir string) (string, error) {
	p := plot.New()
	p.Title.Text = "Autocorrelation of Squared Returns"
	p.X.Label.Text = "Lag"
	p.Y.Label.Text = "ACF(r2)"

	bars, err := plotter.NewBarChart(plotter.Values(res.ACF), vg.Points(10))
	if err != nil {
		return "", err
	}
	bars.Color = colorPurple
	p.Add(bars)

	names := make([]string, len(res.ACF))
	for i := range names {
		names[i] = fmt.Sprintf("%d", i+1)
	}
	p.NominalX(names...)

	return save(p, dir, "clustering_acf_squared.png", 12*vg.Inch, 4*vg.Inch)
}

func saveVolHistogram(res *hypothesis.ClusteringResult, dir string) (string, error) {
	p := plot.New()
	p.Title.Text = "Volatility Distribution"
	p.X.Label.Text = "Volatility (Std Dev)"
	p.Y.Label.Text = "Frequency"

	defined := make(plotter.Values, 0, len(res.VolFast))
	for _, v := range res.VolFast {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	h, err := plotter.NewHist(defined, 100)
	if err != nil {
		return "", err
	}
	h.FillColor = colorBlue
	p.Add(h)

	return save(p, dir, "clustering_vol_distribution.png", 12*vg.Inch, 4*vg.Inch)
}
