package backtest

import (
	"math"

	"VolLab/internal/model"
)

// Mode selects how the simulator sizes positions and places stops.
type Mode string

const (
	// ModeRatio adapts position size and stop distance to the ATR ratio.
	ModeRatio Mode = "ratio"
	// ModeFixed ignores the ratio: full size, stop at one slow ATR.
	ModeFixed Mode = "fixed"
)

// Params controls entry filtering and risk conversion.
type Params struct {
	Lookahead     int     // bars scanned after entry before the position is closed
	Warmup        int     // leading bars skipped while the ATRs settle
	HighThreshold float64 // ratio above this is the high-volatility branch
	LowThreshold  float64 // ratio below this is the low-volatility branch
	BaseRisk      float64 // currency risked per trade at multiplier 1.0
}

// Sizing rules per volatility branch: position multiplier and stop distance
// as a multiple of the fast ATR. High relative volatility trades smaller
// with a wider stop; low relative volatility trades full size with a
// tighter stop.
const (
	highVolMultiplier = 0.5
	highVolStopATR    = 2.0
	lowVolMultiplier  = 1.0
	lowVolStopATR     = 1.5
	midVolMultiplier  = 0.75
	midVolStopATR     = 1.75

	fixedMultiplier = 1.0
	fixedStopATR    = 1.0 // of the slow ATR
)

// Run simulates a toy long-only strategy: every bullish bar is a candidate
// entry, the position is stopped out if any of the next Lookahead bars
// trades through the stop, and otherwise closed at the final lookahead
// bar's close. Entries stop once the lookahead would run off the end of the
// series. Overlapping positions are allowed and not tracked; each trade is
// scored independently. The simulation is fully deterministic.
func Run(bars []model.Bar, fastATR, slowATR, ratio []float64, mode Mode, p Params) []model.Trade {
	var trades []model.Trade
	for i := p.Warmup; i+p.Lookahead < len(bars); i++ {
		// Both modes skip undefined-ratio bars so they see the same entries.
		if math.IsNaN(ratio[i]) || !bars[i].Bullish() {
			continue
		}

		multiplier, stopDistance := size(mode, ratio[i], fastATR[i], slowATR[i], p)
		if stopDistance <= 0 {
			// A non-positive stop distance cannot price risk.
			continue
		}

		entry := bars[i].Close
		stop := entry - stopDistance

		stopHit := false
		for j := i + 1; j <= i+p.Lookahead; j++ {
			if bars[j].Low <= stop {
				stopHit = true
				break
			}
		}

		var r float64
		outcome := model.OutcomeLoss
		if stopHit {
			r = -1.0
		} else {
			exit := bars[i+p.Lookahead].Close
			r = (exit - entry) / stopDistance
			if r > 0 {
				outcome = model.OutcomeWin
			}
		}

		trades = append(trades, model.Trade{
			EntryIndex:   i,
			EntryTime:    bars[i].Time,
			EntryPrice:   entry,
			StopDistance: stopDistance,
			Multiplier:   multiplier,
			Ratio:        ratio[i],
			Outcome:      outcome,
			RMultiple:    r,
			PnL:          r * p.BaseRisk * multiplier,
		})
	}
	return trades
}

func size(mode Mode, ratio, fastATR, slowATR float64, p Params) (multiplier, stopDistance float64) {
	if mode == ModeFixed {
		return fixedMultiplier, fixedStopATR * slowATR
	}
	switch {
	case ratio > p.HighThreshold:
		return highVolMultiplier, highVolStopATR * fastATR
	case ratio < p.LowThreshold:
		return lowVolMultiplier, lowVolStopATR * fastATR
	default:
		return midVolMultiplier, midVolStopATR * fastATR
	}
}
