package config

import (
	"fmt"
	"os"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file, expands environment variables and converts
// the raw values into their decimal/time forms.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var raw fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return convert(&raw)
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration, validated.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func convert(raw *fileConfig) (*Config, error) {
	cfg := &Config{CacheTTL: raw.CacheTTL}

	if raw.BaseCapital != "" {
		capital, err := decimal.NewFromString(raw.BaseCapital)
		if err != nil {
			return nil, fmt.Errorf("base_capital %q: %w", raw.BaseCapital, err)
		}
		cfg.BaseCapital = capital
	}

	if raw.CalculationStart != "" {
		start, err := time.Parse("2006-01-02", raw.CalculationStart)
		if err != nil {
			return nil, fmt.Errorf("calculation_start %q: %w", raw.CalculationStart, err)
		}
		cfg.CalculationStart = start
	}

	for i, b := range raw.Buckets {
		bucket := types.ProfitBucket{
			Name:      b.Name,
			SortOrder: b.SortOrder,
			Active:    !b.Disabled,
		}
		if bucket.SortOrder == 0 {
			bucket.SortOrder = i + 1
		}
		var err error
		if bucket.Min, err = parseBound(b.Min); err != nil {
			return nil, fmt.Errorf("bucket %q min: %w", b.Name, err)
		}
		if bucket.Max, err = parseBound(b.Max); err != nil {
			return nil, fmt.Errorf("bucket %q max: %w", b.Name, err)
		}
		cfg.Buckets = append(cfg.Buckets, bucket)
	}

	for i, s := range raw.Scenarios {
		p, err := decimal.NewFromString(s.Probability)
		if err != nil {
			return nil, fmt.Errorf("scenario %d probability %q: %w", i, s.Probability, err)
		}
		r, err := decimal.NewFromString(s.ReturnRate)
		if err != nil {
			return nil, fmt.Errorf("scenario %d return_rate %q: %w", i, s.ReturnRate, err)
		}
		cfg.Scenarios = append(cfg.Scenarios, types.ExpectationScenario{
			Probability:    p,
			ReturnRate:     r,
			MaxHoldingDays: s.MaxHoldingDays,
		})
	}

	return cfg, nil
}

func parseBound(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
