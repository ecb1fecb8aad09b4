package hypothesis

import (
	"fmt"
	"strings"

	"VolLab/internal/backtest"
)

const ruleWidth = 70

func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("=", ruleWidth))
	b.WriteByte('\n')
}

func section(b *strings.Builder, title string) {
	b.WriteByte('\n')
	pad := ruleWidth - len(title)
	left := pad / 2
	b.WriteString(strings.Repeat("-", left))
	b.WriteString(title)
	b.WriteString(strings.Repeat("-", pad-left))
	b.WriteByte('\n')
}

// FormatClusteringReport renders the clustering result as a console report.
func FormatClusteringReport(r *ClusteringResult) string {
	var b strings.Builder

	rule(&b)
	b.WriteString("VOLATILITY CLUSTERING\n")
	rule(&b)
	fmt.Fprintf(&b, "Bars: %d | %s .. %s\n",
		r.Bars, r.Start.Format("2006-01-02 15:04"), r.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Log returns: mean %.6f, std %.6f\n", r.MeanLogReturn, r.StdLogReturn)

	section(&b, "ARCH-LM TEST (Engle 1982)")
	for _, lr := range r.ARCH {
		if lr.Failed() {
			fmt.Fprintf(&b, "\nLag %d: error in calculation (%v)\n", lr.Lag, lr.Err)
			continue
		}
		fmt.Fprintf(&b, "\nLag %d:\n", lr.Lag)
		fmt.Fprintf(&b, "  LM Statistic: %.4f\n", lr.LM)
		fmt.Fprintf(&b, "  p-value:      %.6f\n", lr.LMPValue)
		switch {
		case lr.LMPValue < 0.01:
			b.WriteString("  -> very strong clustering (p < 0.01)\n")
		case lr.LMPValue < 0.05:
			b.WriteString("  -> significant clustering (p < 0.05)\n")
		default:
			b.WriteString("  -> no significant clustering\n")
		}
	}

	section(&b, "AUTOCORRELATION OF SQUARED RETURNS")
	b.WriteString("Lag | ACF(r2) | Significant?\n")
	b.WriteString(strings.Repeat("-", ruleWidth))
	b.WriteByte('\n')
	for i, v := range r.ACF {
		if i >= 10 {
			break
		}
		mark := ""
		switch {
		case v > acfStrong:
			mark = "strong"
		case v > acfModerate:
			mark = "moderate"
		}
		fmt.Fprintf(&b, "%3d | %7.4f | %s\n", i+1, v, mark)
	}
	fmt.Fprintf(&b, "\nLag-1 ACF(r2): %.4f\n", r.ACF[0])

	section(&b, "VOLATILITY REGIME ANALYSIS")
	fmt.Fprintf(&b, "\nThresholds (global percentiles of rolling volatility):\n")
	fmt.Fprintf(&b, "  Low:  < %.6f\n", r.Thresholds.Low)
	fmt.Fprintf(&b, "  High: > %.6f\n", r.Thresholds.High)

	fmt.Fprintf(&b, "\nRegime distribution:\n")
	total := float64(r.Dist.Total)
	fmt.Fprintf(&b, "  Low:  %.1f%%\n", float64(r.Dist.Low)/total*100)
	fmt.Fprintf(&b, "  Mid:  %.1f%%\n", float64(r.Dist.Mid)/total*100)
	fmt.Fprintf(&b, "  High: %.1f%%\n", float64(r.Dist.High)/total*100)

	fmt.Fprintf(&b, "\nVolatility ratio (high/low): %.2fx\n", r.VolRatio)
	fmt.Fprintf(&b, "\nAverage regime duration:\n")
	fmt.Fprintf(&b, "  High vol: %.1f hours\n", r.HighDuration)
	fmt.Fprintf(&b, "  Low vol:  %.1f hours\n", r.LowDuration)

	b.WriteByte('\n')
	rule(&b)
	b.WriteString("DECISION\n")
	rule(&b)
	for _, note := range r.ScoreNotes {
		fmt.Fprintf(&b, "+ %s\n", note)
	}
	fmt.Fprintf(&b, "\nTotal score: %d/%d\n\n", r.Score, maxScore)

	switch r.Verdict {
	case VerdictAccepted:
		b.WriteString("ACCEPTED: volatility clustering is significant\n")
		b.WriteString("-> dynamic position sizing based on volatility regime\n")
		b.WriteString("-> wider stops in high-vol, tighter in low-vol\n")
		b.WriteString("-> regime filters for signal activation\n")
		b.WriteString("-> consider GARCH models for volatility forecasts\n")
	case VerdictPartial:
		b.WriteString("PARTIALLY ACCEPTED: moderate clustering\n")
		b.WriteString("-> use simple volatility filters\n")
	default:
		b.WriteString("REJECTED: no significant clustering\n")
		b.WriteString("-> volatility filters are likely not helpful\n")
	}
	rule(&b)
	return b.String()
}

// FormatBacktestReport renders the ATR-ratio backtest result as a console report.
func FormatBacktestReport(r *BacktestResult) string {
	var b strings.Builder

	rule(&b)
	b.WriteString("ATR FAST-SLOW RATIO BACKTEST\n")
	rule(&b)
	if r.Year > 0 {
		fmt.Fprintf(&b, "Year: %d | ", r.Year)
	}
	fmt.Fprintf(&b, "Bars: %d | %s .. %s\n",
		r.Bars, r.Start.Format("2006-01-02 15:04"), r.End.Format("2006-01-02 15:04"))

	formatStats := func(label string, s backtest.Stats) {
		fmt.Fprintf(&b, "\n%s:\n", label)
		fmt.Fprintf(&b, "  Trades:        %d\n", s.Trades)
		fmt.Fprintf(&b, "  Win rate:      %.1f%%\n", s.WinRate)
		fmt.Fprintf(&b, "  Avg win:       $%.2f\n", s.AvgWin)
		fmt.Fprintf(&b, "  Avg loss:      $%.2f\n", s.AvgLoss)
		if s.ProfitFactorOK {
			fmt.Fprintf(&b, "  Profit factor: %.2f\n", s.ProfitFactor)
		} else {
			b.WriteString("  Profit factor: undefined (no losing trades)\n")
		}
		fmt.Fprintf(&b, "  Avg R:         %+.3f\n", s.AvgR)
		fmt.Fprintf(&b, "  Total P&L:     $%.2f\n", s.TotalPnL)
	}

	formatStats("ATR RATIO METHOD", r.RatioStats)
	formatStats("FIXED STOP METHOD", r.FixedStats)

	b.WriteByte('\n')
	rule(&b)
	b.WriteString("CONCLUSION\n")
	rule(&b)
	if r.ImprovementOK {
		fmt.Fprintf(&b, "Ratio method vs fixed: %+.1f%%\n", r.Improvement)
	} else {
		b.WriteString("Ratio method vs fixed: undefined (baseline P&L is zero)\n")
	}
	fmt.Fprintf(&b, "%s\n", capitalize(string(r.Verdict)))
	rule(&b)
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
