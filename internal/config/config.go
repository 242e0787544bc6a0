package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/timestudy/internal/domain"
	"github.com/alexanderramin/timestudy/internal/msa"
	"gopkg.in/yaml.v3"
)

// Config holds process-wide settings: where data lives and the analysis
// defaults applied when a command does not override them.
type Config struct {
	DBPath   string   `yaml:"db_path"`
	LogCalls bool     `yaml:"log_calls"`
	Analysis Analysis `yaml:"analysis"`
}

// Analysis mirrors msa.Config in file form.
type Analysis struct {
	Transform        string   `yaml:"transform"`
	ConfidenceLevel  float64  `yaml:"confidence_level"`
	StrictMode       bool     `yaml:"strict_mode"`
	OutlierDetection bool     `yaml:"outlier_detection"`
	LowerSpecLimit   *float64 `yaml:"lower_spec_limit,omitempty"`
	UpperSpecLimit   *float64 `yaml:"upper_spec_limit,omitempty"`
}

// Default returns the built-in configuration rooted at home.
func Default(home string) Config {
	return Config{
		DBPath: filepath.Join(home, ".timestudy", "timestudy.db"),
		Analysis: Analysis{
			Transform:       string(domain.TransformNone),
			ConfidenceLevel: msa.DefaultConfidenceLevel,
		},
	}
}

// DefaultPath is the config file read when TIMESTUDY_CONFIG is unset.
func DefaultPath(home string) string {
	return filepath.Join(home, ".timestudy", "config.yaml")
}

// Load builds the configuration from defaults, then the config file, then
// TIMESTUDY_* environment variables. A missing default file is not an error;
// a missing file named by TIMESTUDY_CONFIG is.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := Default(home)

	path, explicit := os.LookupEnv("TIMESTUDY_CONFIG")
	if !explicit || path == "" {
		path, explicit = DefaultPath(home), false
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables. Unparseable values are ignored
// and the previous setting kept.
func (c *Config) applyEnv() {
	if v := os.Getenv("TIMESTUDY_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TIMESTUDY_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogCalls = b
		}
	}
	if v := os.Getenv("TIMESTUDY_TRANSFORM"); v != "" {
		if t, err := domain.ParseTransform(v); err == nil {
			c.Analysis.Transform = string(t)
		}
	}
	if v := os.Getenv("TIMESTUDY_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
			c.Analysis.ConfidenceLevel = f
		}
	}
	if v := os.Getenv("TIMESTUDY_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Analysis.StrictMode = b
		}
	}
	if v := os.Getenv("TIMESTUDY_OUTLIERS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Analysis.OutlierDetection = b
		}
	}
}

// AnalysisDefaults converts the file/env analysis settings to an msa.Config.
// Values are validated by the analyzer, not here.
func (c Config) AnalysisDefaults() msa.Config {
	return msa.Config{
		Transform:        domain.Transform(c.Analysis.Transform),
		StrictMode:       c.Analysis.StrictMode,
		ConfidenceLevel:  c.Analysis.ConfidenceLevel,
		OutlierDetection: c.Analysis.OutlierDetection,
		LowerSpecLimit:   c.Analysis.LowerSpecLimit,
		UpperSpecLimit:   c.Analysis.UpperSpecLimit,
	}
}
