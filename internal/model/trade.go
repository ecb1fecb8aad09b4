package model

import "time"

// Outcome classifies a closed trade.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Trade is one simulated long entry with its realized result.
// A trade is immutable once the simulator has produced it.
type Trade struct {
	EntryIndex   int
	EntryTime    time.Time
	EntryPrice   float64
	StopDistance float64
	Multiplier   float64
	Ratio        float64 // ATR ratio at the entry bar
	Outcome      Outcome
	RMultiple    float64
	PnL          float64
}
