package plotting

import (
	"fmt"

	"VolLab/internal/backtest"
	"VolLab/internal/hypothesis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveBacktestPlots writes the ratio-timeline and equity-curve diagnostics
// as PNG files and returns their paths.
func SaveBacktestPlots(res *hypothesis.BacktestResult, dir string) ([]string, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	var paths []string
	timeline, err := saveRatioTimeline(res, dir)
	if err != nil {
		return paths, err
	}
	paths = append(paths, timeline)

	equity, err := saveEquityCurves(res, dir)
	if err != nil {
		return paths, err
	}
	paths = append(paths, equity)
	return paths, nil
}

func saveRatioTimeline(res *hypothesis.BacktestResult, dir string) (string, error) {
	p := newTimePlot("ATR Fast-Slow Ratio", "ATR Ratio (Fast/Slow)")

	xys := timeSeries(res.Times, res.Ratio)
	l, err := line(xys, colorBlue)
	if err != nil {
		return "", err
	}
	p.Add(l)
	p.Legend.Add("ATR fast/slow ratio", l)

	hi, err := hLine(p, xys, res.HighThreshold, colorRed, true)
	if err != nil {
		return "", err
	}
	p.Legend.Add(fmt.Sprintf("high vol (%.2f)", res.HighThreshold), hi)

	neutral, err := hLine(p, xys, 1.0, colorBlack, true)
	if err != nil {
		return "", err
	}
	p.Legend.Add("neutral (1.00)", neutral)

	lo, err := hLine(p, xys, res.LowThreshold, colorGreen, true)
	if err != nil {
		return "", err
	}
	p.Legend.Add(fmt.Sprintf("low vol (%.2f)", res.LowThreshold), lo)

	return save(p, dir, "atr_ratio_timeline.png", 12*vg.Inch, 4*vg.Inch)
}

func saveEquityCurves(res *hypothesis.BacktestResult, dir string) (string, error) {
	p := plot.New()
	p.Title.Text = "Equity Curve: Adaptive vs Fixed Stop-Loss"
	p.X.Label.Text = "Trade Number"
	p.Y.Label.Text = "Cumulative P&L ($)"
	p.Legend.Top = true

	for _, cv := range []struct {
		name   string
		equity []float64
	}{
		{"ATR ratio", backtest.Equity(res.RatioTrades)},
		{"Fixed stop", backtest.Equity(res.FixedTrades)},
	} {
		xys := make(plotter.XYs, len(cv.equity))
		for i, v := range cv.equity {
			xys[i] = plotter.XY{X: float64(i + 1), Y: v}
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return "", err
		}
		if cv.name == "ATR ratio" {
			l.Color = colorBlue
		} else {
			l.Color = colorRed
		}
		l.Width = vg.Points(1.5)
		p.Add(l)
		final := 0.0
		if len(cv.equity) > 0 {
			final = cv.equity[len(cv.equity)-1]
		}
		p.Legend.Add(fmt.Sprintf("%s - final: $%.0f", cv.name, final), l)
	}

	return save(p, dir, "atr_ratio_equity.png", 10*vg.Inch, 5*vg.Inch)
}
