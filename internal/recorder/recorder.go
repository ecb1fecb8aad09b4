package recorder

import "VolLab/internal/model"

// LagStat is one ARCH-LM lag result flattened for persistence.
type LagStat struct {
	Lag      int
	LM       float64
	LMPValue float64
	F        float64
	FPValue  float64
	Failed   bool
}

// ClusteringRecord summarises one clustering run.
type ClusteringRecord struct {
	InputPath    string
	Bars         int
	VolRatio     float64
	HighDuration float64 // hours
	LowDuration  float64 // hours
	Score        int
	Verdict      string
	Lags         []LagStat
}

// BacktestRecord summarises one backtest run in a single mode.
type BacktestRecord struct {
	InputPath    string
	Year         int
	Bars         int
	Mode         string
	Trades       int
	WinRate      float64
	AvgWin       float64
	AvgLoss      float64
	AvgR         float64
	TotalPnL     float64
	ProfitFactor float64 // negative when undefined
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordClustering(rec *ClusteringRecord) error
	RecordBacktest(rec *BacktestRecord, trades []model.Trade) error
	Close() error
}
