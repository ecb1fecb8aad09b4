package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"VolLab/internal/model"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers can inspect history while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clustering_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			input_path    TEXT,
			bars          INTEGER,
			vol_ratio     REAL,
			high_duration REAL,
			low_duration  REAL,
			score         INTEGER,
			verdict       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clustering_ts ON clustering_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS arch_lags (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL,
			lag        INTEGER,
			lm_stat    REAL,
			lm_pvalue  REAL,
			f_stat     REAL,
			f_pvalue   REAL,
			failed     INTEGER,
			FOREIGN KEY(run_id) REFERENCES clustering_runs(id)
		)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			input_path    TEXT,
			year          INTEGER,
			bars          INTEGER,
			mode          TEXT,
			trades        INTEGER,
			win_rate      REAL,
			avg_win       REAL,
			avg_loss      REAL,
			avg_r         REAL,
			total_pnl     REAL,
			profit_factor REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL,
			entry_time    INTEGER,
			entry_price   REAL,
			stop_distance REAL,
			multiplier    REAL,
			ratio         REAL,
			outcome       TEXT,
			r_multiple    REAL,
			pnl           REAL,
			FOREIGN KEY(run_id) REFERENCES backtest_runs(id)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordClustering(rec *ClusteringRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`INSERT INTO clustering_runs
		(timestamp, input_path, bars, vol_ratio, high_duration, low_duration, score, verdict)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.InputPath, rec.Bars,
		rec.VolRatio, rec.HighDuration, rec.LowDuration, rec.Score, rec.Verdict,
	)
	if err != nil {
		return err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, lag := range rec.Lags {
		failed := 0
		if lag.Failed {
			failed = 1
		}
		if _, err := r.db.Exec(`INSERT INTO arch_lags
			(run_id, lag, lm_stat, lm_pvalue, f_stat, f_pvalue, failed)
			VALUES (?,?,?,?,?,?,?)`,
			runID, lag.Lag, lag.LM, lag.LMPValue, lag.F, lag.FPValue, failed,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBacktest(rec *BacktestRecord, trades []model.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`INSERT INTO backtest_runs
		(timestamp, input_path, year, bars, mode, trades,
		 win_rate, avg_win, avg_loss, avg_r, total_pnl, profit_factor)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.InputPath, rec.Year, rec.Bars, rec.Mode, rec.Trades,
		rec.WinRate, rec.AvgWin, rec.AvgLoss, rec.AvgR, rec.TotalPnL, rec.ProfitFactor,
	)
	if err != nil {
		return err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, t := range trades {
		if _, err := r.db.Exec(`INSERT INTO trades
			(run_id, entry_time, entry_price, stop_distance, multiplier, ratio, outcome, r_multiple, pnl)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			runID, t.EntryTime.Unix(), t.EntryPrice, t.StopDistance,
			t.Multiplier, t.Ratio, string(t.Outcome), t.RMultiple, t.PnL,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
