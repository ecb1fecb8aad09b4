package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("a missing config file is not an error: %v", err)
	}
	if cfg.Data.InputPath == "" {
		t.Error("default input path missing")
	}
	if cfg.ATRRatio.FastSpan != 14 || cfg.ATRRatio.SlowSpan != 50 {
		t.Errorf("default spans wrong: %+v", cfg.ATRRatio)
	}
	if cfg.ATRRatio.HighThreshold != 1.2 || cfg.ATRRatio.LowThreshold != 0.9 {
		t.Errorf("default thresholds wrong: %+v", cfg.ATRRatio)
	}
	if cfg.Clustering.FastWindow != 24 || cfg.Clustering.SlowWindow != 168 {
		t.Errorf("default windows wrong: %+v", cfg.Clustering)
	}
	if got := cfg.Clustering.ARCHLags; len(got) != 4 || got[0] != 1 || got[3] != 20 {
		t.Errorf("default ARCH lags wrong: %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data:
  input_path: from_file.csv
  year: 2023
atr_ratio:
  fast_span: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VOLLAB_INPUT", "from_env.csv")
	t.Setenv("VOLLAB_YEAR", "2024")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.InputPath != "from_env.csv" {
		t.Errorf("env must override file: got %q", cfg.Data.InputPath)
	}
	if cfg.Data.Year != 2024 {
		t.Errorf("env year must override file: got %d", cfg.Data.Year)
	}
	if cfg.ATRRatio.FastSpan != 7 {
		t.Errorf("file value lost: got %d", cfg.ATRRatio.FastSpan)
	}
	if cfg.ATRRatio.SlowSpan != 50 {
		t.Errorf("unset fields still get defaults: got %d", cfg.ATRRatio.SlowSpan)
	}
}

func TestValidate_Failures(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative year", func(c *Config) { c.Data.Year = -1 }},
		{"tiny window", func(c *Config) { c.Clustering.FastWindow = 1 }},
		{"bad arch lag", func(c *Config) { c.Clustering.ARCHLags = []int{1, -5} }},
		{"inverted percentiles", func(c *Config) { c.Clustering.PercentileLow = 0.8 }},
		{"negative span", func(c *Config) { c.ATRRatio.FastSpan = -1 }},
		{"inverted thresholds", func(c *Config) { c.ATRRatio.LowThreshold = 1.5 }},
		{"zero lookahead", func(c *Config) { c.ATRRatio.Lookahead = -3 }},
		{"negative warmup", func(c *Config) { c.ATRRatio.Warmup = -1 }},
		{"zero base risk", func(c *Config) { c.ATRRatio.BaseRisk = -100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
