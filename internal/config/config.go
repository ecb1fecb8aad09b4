package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Every threshold the pipelines
// use lives here rather than as a literal in the analysis code.
type Config struct {
	Data struct {
		InputPath string `yaml:"input_path"`
		Year      int    `yaml:"year"` // 0 disables the calendar-year filter
	} `yaml:"data"`
	Output struct {
		Dir        string `yaml:"dir"`
		SQLitePath string `yaml:"sqlite_path"` // empty disables run persistence
	} `yaml:"output"`
	Clustering struct {
		ARCHLags       []int   `yaml:"arch_lags"`
		ACFDepth       int     `yaml:"acf_depth"`
		FastWindow     int     `yaml:"fast_window"`
		SlowWindow     int     `yaml:"slow_window"`
		PercentileLow  float64 `yaml:"percentile_low"`
		PercentileHigh float64 `yaml:"percentile_high"`
	} `yaml:"clustering"`
	ATRRatio struct {
		FastSpan      int     `yaml:"fast_span"`
		SlowSpan      int     `yaml:"slow_span"`
		ReferenceSpan int     `yaml:"reference_span"`
		HighThreshold float64 `yaml:"high_threshold"`
		LowThreshold  float64 `yaml:"low_threshold"`
		Lookahead     int     `yaml:"lookahead"`
		Warmup        int     `yaml:"warmup"`
		BaseRisk      float64 `yaml:"base_risk"`
	} `yaml:"atr_ratio"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("VOLLAB_INPUT"); v != "" {
		cfg.Data.InputPath = v
	}
	if v := os.Getenv("VOLLAB_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			cfg.Data.Year = year
		}
	}
	if v := os.Getenv("VOLLAB_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("VOLLAB_SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("VOLLAB_WATCH_CRON"); v != "" {
		cfg.Schedule.WatchCron = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Data.InputPath == "" {
		c.Data.InputPath = "data/xau_usd_1H.csv"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if len(c.Clustering.ARCHLags) == 0 {
		c.Clustering.ARCHLags = []int{1, 5, 10, 20}
	}
	if c.Clustering.ACFDepth == 0 {
		c.Clustering.ACFDepth = 20
	}
	if c.Clustering.FastWindow == 0 {
		c.Clustering.FastWindow = 24
	}
	if c.Clustering.SlowWindow == 0 {
		c.Clustering.SlowWindow = 168
	}
	if c.Clustering.PercentileLow == 0 {
		c.Clustering.PercentileLow = 0.25
	}
	if c.Clustering.PercentileHigh == 0 {
		c.Clustering.PercentileHigh = 0.75
	}
	if c.ATRRatio.FastSpan == 0 {
		c.ATRRatio.FastSpan = 14
	}
	if c.ATRRatio.SlowSpan == 0 {
		c.ATRRatio.SlowSpan = 50
	}
	if c.ATRRatio.ReferenceSpan == 0 {
		c.ATRRatio.ReferenceSpan = 24
	}
	if c.ATRRatio.HighThreshold == 0 {
		c.ATRRatio.HighThreshold = 1.2
	}
	if c.ATRRatio.LowThreshold == 0 {
		c.ATRRatio.LowThreshold = 0.9
	}
	if c.ATRRatio.Lookahead == 0 {
		c.ATRRatio.Lookahead = 24
	}
	if c.ATRRatio.Warmup == 0 {
		c.ATRRatio.Warmup = 50
	}
	if c.ATRRatio.BaseRisk == 0 {
		c.ATRRatio.BaseRisk = 100
	}
	if c.Schedule.WatchCron == "" {
		c.Schedule.WatchCron = "0 5 * * * *"
	}
}

// Validate checks that all fields are consistent.
func (c *Config) Validate() error {
	if c.Data.InputPath == "" {
		return fmt.Errorf("data.input_path is required")
	}
	if c.Data.Year < 0 {
		return fmt.Errorf("data.year must not be negative")
	}
	if c.Clustering.FastWindow < 2 || c.Clustering.SlowWindow < 2 {
		return fmt.Errorf("clustering windows must be at least 2 bars")
	}
	if c.Clustering.ACFDepth < 1 {
		return fmt.Errorf("clustering.acf_depth must be positive")
	}
	for _, lag := range c.Clustering.ARCHLags {
		if lag < 1 {
			return fmt.Errorf("clustering.arch_lags must all be positive, got %d", lag)
		}
	}
	if c.Clustering.PercentileLow <= 0 || c.Clustering.PercentileHigh >= 1 ||
		c.Clustering.PercentileLow >= c.Clustering.PercentileHigh {
		return fmt.Errorf("percentiles must satisfy 0 < low < high < 1")
	}
	if c.ATRRatio.FastSpan <= 0 || c.ATRRatio.SlowSpan <= 0 || c.ATRRatio.ReferenceSpan <= 0 {
		return fmt.Errorf("atr_ratio spans must be positive")
	}
	if c.ATRRatio.LowThreshold >= c.ATRRatio.HighThreshold {
		return fmt.Errorf("atr_ratio.low_threshold must be below high_threshold")
	}
	if c.ATRRatio.Lookahead <= 0 {
		return fmt.Errorf("atr_ratio.lookahead must be positive")
	}
	if c.ATRRatio.Warmup < 0 {
		return fmt.Errorf("atr_ratio.warmup must not be negative")
	}
	if c.ATRRatio.BaseRisk <= 0 {
		return fmt.Errorf("atr_ratio.base_risk must be positive")
	}
	return nil
}
