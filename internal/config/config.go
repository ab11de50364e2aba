package config

import (
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// Config is the engine configuration after parsing and conversion.
type Config struct {
	BaseCapital      decimal.Decimal
	CalculationStart time.Time
	CacheTTL         time.Duration
	Buckets          []types.ProfitBucket
	Scenarios        []types.ExpectationScenario
}

// fileConfig mirrors the YAML file. Decimals travel as strings because the
// YAML decoder has no hook for shopspring decimals; conversion happens in
// Load.
type fileConfig struct {
	BaseCapital      string           `yaml:"base_capital"`
	CalculationStart string           `yaml:"calculation_start"` // 2006-01-02
	CacheTTL         time.Duration    `yaml:"cache_ttl"`
	Buckets          []bucketConfig   `yaml:"buckets"`
	Scenarios        []scenarioConfig `yaml:"scenarios"`
}

type bucketConfig struct {
	Name      string `yaml:"name"`
	Min       string `yaml:"min"` // empty = unbounded below
	Max       string `yaml:"max"` // empty = unbounded above
	SortOrder int    `yaml:"sort_order"`
	Disabled  bool   `yaml:"disabled"`
}

type scenarioConfig struct {
	Probability    string `yaml:"probability"`
	ReturnRate     string `yaml:"return_rate"`
	MaxHoldingDays int    `yaml:"max_holding_days"`
}
