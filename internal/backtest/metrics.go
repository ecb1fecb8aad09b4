package backtest

import (
	"math"

	"VolLab/internal/model"
)

// Stats aggregates a trade sequence.
type Stats struct {
	Trades   int
	Wins     int
	Losses   int
	WinRate  float64 // percent of trades with a positive R-multiple
	AvgWin   float64 // mean dollar P&L over winning trades
	AvgLoss  float64 // mean dollar P&L over losing trades
	TotalPnL float64
	AvgR     float64

	// ProfitFactor is |AvgWin / AvgLoss|. With no losing trades the ratio
	// is undefined and ProfitFactorOK is false; it is never reported as 0.
	ProfitFactor   float64
	ProfitFactorOK bool
}

// Compute summarises a trade sequence.
func Compute(trades []model.Trade) Stats {
	s := Stats{Trades: len(trades)}
	if len(trades) == 0 {
		return s
	}

	var winPnL, lossPnL, totalR float64
	for _, t := range trades {
		s.TotalPnL += t.PnL
		totalR += t.RMultiple
		if t.RMultiple > 0 {
			s.Wins++
			winPnL += t.PnL
		} else {
			s.Losses++
			lossPnL += t.PnL
		}
	}
	s.WinRate = float64(s.Wins) / float64(s.Trades) * 100
	s.AvgR = totalR / float64(s.Trades)
	if s.Wins > 0 {
		s.AvgWin = winPnL / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossPnL / float64(s.Losses)
	}
	if s.Losses > 0 && s.AvgLoss != 0 {
		s.ProfitFactor = math.Abs(s.AvgWin / s.AvgLoss)
		s.ProfitFactorOK = true
	}
	return s
}

// Equity returns the running cumulative P&L, one point per trade.
func Equity(trades []model.Trade) []float64 {
	out := make([]float64, len(trades))
	sum := 0.0
	for i, t := range trades {
		sum += t.PnL
		out[i] = sum
	}
	return out
}

// Improvement returns the relative total-P&L difference of the candidate
// over the baseline, in percent. It is undefined (ok=false) when the
// baseline P&L is zero.
func Improvement(candidate, baseline Stats) (pct float64, ok bool) {
	if baseline.TotalPnL == 0 {
		return 0, false
	}
	return (candidate.TotalPnL - baseline.TotalPnL) / math.Abs(baseline.TotalPnL) * 100, true
}
