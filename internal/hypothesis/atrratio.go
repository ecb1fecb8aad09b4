package hypothesis

import (
	"fmt"
	"time"

	"VolLab/internal/backtest"
	"VolLab/internal/config"
	"VolLab/internal/indicator"
	"VolLab/internal/model"
)

// ComparisonVerdict is the outcome of the ratio-vs-fixed comparison.
type ComparisonVerdict string

const (
	VerdictOutperformed   ComparisonVerdict = "ratio method outperformed"
	VerdictUnderperformed ComparisonVerdict = "fixed method outperformed"
	VerdictSimilar        ComparisonVerdict = "similar performance"
)

// similarBandPct is the improvement band, in percent, inside which the two
// methods are called equivalent.
const similarBandPct = 10.0

// BacktestResult carries both mode runs of the ATR-ratio backtest plus the
// series the diagnostic plots need.
type BacktestResult struct {
	Year  int
	Bars  int
	Start time.Time
	End   time.Time

	Times  []time.Time
	Closes []float64

	FastATR []float64
	SlowATR []float64
	RefATR  []float64
	Ratio   []float64

	RatioTrades []model.Trade
	FixedTrades []model.Trade
	RatioStats  backtest.Stats
	FixedStats  backtest.Stats

	HighThreshold float64
	LowThreshold  float64

	Improvement   float64 // percent; meaningless when ImprovementOK is false
	ImprovementOK bool
	Verdict       ComparisonVerdict
}

// RunATRRatio executes the ATR-ratio backtest pipeline over the bars.
func RunATRRatio(bars []model.Bar, cfg *config.Config) (*BacktestResult, error) {
	minBars := cfg.ATRRatio.Warmup + cfg.ATRRatio.Lookahead + 1
	if len(bars) < minBars {
		return nil, fmt.Errorf("need at least %d bars, got %d", minBars, len(bars))
	}

	fast, err := indicator.ATR(bars, cfg.ATRRatio.FastSpan)
	if err != nil {
		return nil, fmt.Errorf("fast ATR: %w", err)
	}
	slow, err := indicator.ATR(bars, cfg.ATRRatio.SlowSpan)
	if err != nil {
		return nil, fmt.Errorf("slow ATR: %w", err)
	}
	ref, err := indicator.ATR(bars, cfg.ATRRatio.ReferenceSpan)
	if err != nil {
		return nil, fmt.Errorf("reference ATR: %w", err)
	}
	ratio := indicator.Ratio(fast, slow)

	params := backtest.Params{
		Lookahead:     cfg.ATRRatio.Lookahead,
		Warmup:        cfg.ATRRatio.Warmup,
		HighThreshold: cfg.ATRRatio.HighThreshold,
		LowThreshold:  cfg.ATRRatio.LowThreshold,
		BaseRisk:      cfg.ATRRatio.BaseRisk,
	}

	res := &BacktestResult{
		Year:          cfg.Data.Year,
		Bars:          len(bars),
		Start:         bars[0].Time,
		End:           bars[len(bars)-1].Time,
		Times:         model.Times(bars),
		Closes:        model.Closes(bars),
		FastATR:       fast,
		SlowATR:       slow,
		RefATR:        ref,
		Ratio:         ratio,
		HighThreshold: cfg.ATRRatio.HighThreshold,
		LowThreshold:  cfg.ATRRatio.LowThreshold,
	}

	res.RatioTrades = backtest.Run(bars, fast, slow, ratio, backtest.ModeRatio, params)
	res.FixedTrades = backtest.Run(bars, fast, slow, ratio, backtest.ModeFixed, params)
	res.RatioStats = backtest.Compute(res.RatioTrades)
	res.FixedStats = backtest.Compute(res.FixedTrades)

	res.Improvement, res.ImprovementOK = backtest.Improvement(res.RatioStats, res.FixedStats)
	switch {
	case !res.ImprovementOK:
		res.Verdict = VerdictSimilar
	case res.Improvement > similarBandPct:
		res.Verdict = VerdictOutperformed
	case res.Improvement < -similarBandPct:
		res.Verdict = VerdictUnderperformed
	default:
		res.Verdict = VerdictSimilar
	}
	return res, nil
}
