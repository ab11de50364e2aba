package config

import (
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultBuckets is an exhaustive profit-rate table: open-ended below the
// first bound and above the last, so every rate lands somewhere.
func DefaultBuckets() []types.ProfitBucket {
	return []types.ProfitBucket{
		{Name: "loss over 10%", Max: dec("-0.10"), SortOrder: 1, Active: true},
		{Name: "loss up to 10%", Min: dec("-0.10"), Max: dec("0"), SortOrder: 2, Active: true},
		{Name: "gain up to 5%", Min: dec("0"), Max: dec("0.05"), SortOrder: 3, Active: true},
		{Name: "gain 5% to 10%", Min: dec("0.05"), Max: dec("0.10"), SortOrder: 4, Active: true},
		{Name: "gain over 10%", Min: dec("0.10"), SortOrder: 5, Active: true},
	}
}

// DefaultScenarios is the fixed probability model the journal benchmarks
// against: mostly small wins, occasional larger win, occasional loss.
func DefaultScenarios() []types.ExpectationScenario {
	return []types.ExpectationScenario{
		{Probability: decimal.RequireFromString("0.2"), ReturnRate: decimal.RequireFromString("0.10"), MaxHoldingDays: 30},
		{Probability: decimal.RequireFromString("0.5"), ReturnRate: decimal.RequireFromString("0.03"), MaxHoldingDays: 15},
		{Probability: decimal.RequireFromString("0.2"), ReturnRate: decimal.RequireFromString("-0.02"), MaxHoldingDays: 10},
		{Probability: decimal.RequireFromString("0.1"), ReturnRate: decimal.RequireFromString("-0.08"), MaxHoldingDays: 5},
	}
}

func (c *Config) applyDefaults() {
	if c.BaseCapital.IsZero() {
		c.BaseCapital = decimal.NewFromInt(1_000_000)
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 10 * time.Minute
	}
	if len(c.Buckets) == 0 {
		c.Buckets = DefaultBuckets()
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = DefaultScenarios()
	}
}
