package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/store/postgres"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the configuration of fia.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Store   StoreConfig   `toml:"store"`
	Logging LoggingConfig `toml:"logging"`
	Assist  AssistConfig  `toml:"assist"`
}

// EngineConfig holds the attribution engine options.
type EngineConfig struct {
	PaddingDays           int      `toml:"padding_days"`
	ValuationLookbackDays int      `toml:"valuation_lookback_days"`
	CostPriceFallback     string   `toml:"cost_price_fallback"` // "carry-forward-then-par" or "par-only"
	ValuationDefault      string   `toml:"valuation_default"`
	Workers               int      `toml:"workers"`
	Currency              string   `toml:"currency"`
	ExcludedPortfolios    []string `toml:"excluded_portfolios"`
}

// StoreConfig selects and configures the data source.
type StoreConfig struct {
	Kind   string          `toml:"kind"` // "jsonl" or "postgres"
	Dir    string          `toml:"dir"`
	DSN    string          `toml:"dsn"`
	Tables postgres.Tables `toml:"tables"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// AssistConfig holds the model used by the explain command.
type AssistConfig struct {
	Model string `toml:"model"`
}

// NewDefaultConfig returns a Config with the engine defaults and a jsonl store in the current directory.
func NewDefaultConfig() *Config {
	opts := bondyield.DefaultOptions()
	return &Config{
		Engine: EngineConfig{
			PaddingDays:           opts.PaddingDays,
			ValuationLookbackDays: opts.ValuationLookbackDays,
			CostPriceFallback:     opts.CostPriceFallback.String(),
			ValuationDefault:      opts.ValuationDefault.String(),
			Workers:               opts.Workers,
			Currency:              opts.Currency,
		},
		Store: StoreConfig{
			Kind:   "jsonl",
			Dir:    ".",
			Tables: postgres.DefaultTables(),
		},
		Logging: LoggingConfig{Level: "warn"},
		Assist:  AssistConfig{Model: "gemini-2.0-flash"},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Missing files are skipped, later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if level := os.Getenv("FIA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if kind := os.Getenv("FIA_STORE_KIND"); kind != "" {
		config.Store.Kind = kind
	}
	if dir := os.Getenv("FIA_DATA_DIR"); dir != "" {
		config.Store.Dir = dir
	}
	if dsn := os.Getenv("FIA_DATABASE_URL"); dsn != "" {
		config.Store.DSN = dsn
	}
	if cur := os.Getenv("FIA_CURRENCY"); cur != "" {
		config.Engine.Currency = strings.ToUpper(cur)
	}
}

// Options converts the engine section into engine options.
func (c EngineConfig) Options() (bondyield.Options, error) {
	opts := bondyield.DefaultOptions()
	fallback, err := bondyield.ParseCostPriceFallbackPolicy(c.CostPriceFallback)
	if err != nil {
		return opts, fmt.Errorf("engine.cost_price_fallback: %w", err)
	}
	valuation, err := bondyield.ParseValuationDefaultPolicy(c.ValuationDefault)
	if err != nil {
		return opts, fmt.Errorf("engine.valuation_default: %w", err)
	}
	if c.PaddingDays < 0 || c.ValuationLookbackDays < 0 {
		return opts, fmt.Errorf("engine: negative padding %d or lookback %d", c.PaddingDays, c.ValuationLookbackDays)
	}
	opts.PaddingDays = c.PaddingDays
	opts.ValuationLookbackDays = c.ValuationLookbackDays
	opts.CostPriceFallback = fallback
	opts.ValuationDefault = valuation
	opts.Workers = c.Workers
	if c.Currency != "" {
		opts.Currency = c.Currency
	}
	opts.ExcludedPortfolios = c.ExcludedPortfolios
	return opts, nil
}
