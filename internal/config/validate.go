package config

import (
	"errors"
	"fmt"
	"sort"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// Configuration problems are rejected here, at load time, before any
// aggregation gets to run against a broken table.
var (
	ErrBaseCapital    = errors.New("base capital must be positive")
	ErrBucketName     = errors.New("bucket name must be unique and non-empty")
	ErrBucketRange    = errors.New("bucket min must be less than max")
	ErrBucketOverlap  = errors.New("bucket ranges overlap")
	ErrProbability    = errors.New("scenario probability must be between 0 and 1")
	ErrProbabilitySum = errors.New("scenario probabilities must sum to 1")
	ErrHoldingDays    = errors.New("scenario max holding days must be positive")
)

var probabilityTolerance = decimal.RequireFromString("0.001")

func (c *Config) Validate() error {
	if !c.BaseCapital.IsPositive() {
		return fmt.Errorf("%s: %w", c.BaseCapital, ErrBaseCapital)
	}
	if err := validateBuckets(c.Buckets); err != nil {
		return err
	}
	return validateScenarios(c.Scenarios)
}

func validateBuckets(buckets []types.ProfitBucket) error {
	seen := make(map[string]bool)
	var active []types.ProfitBucket
	for _, b := range buckets {
		if b.Name == "" || seen[b.Name] {
			return fmt.Errorf("%q: %w", b.Name, ErrBucketName)
		}
		seen[b.Name] = true
		if b.Min != nil && b.Max != nil && !b.Min.LessThan(*b.Max) {
			return fmt.Errorf("bucket %q [%s, %s): %w", b.Name, b.Min, b.Max, ErrBucketRange)
		}
		if b.Active {
			active = append(active, b)
		}
	}

	// Overlap check on active buckets ordered by lower bound; an unbounded
	// min sorts first, an unbounded max only fits last.
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Min == nil {
			return true
		}
		if active[j].Min == nil {
			return false
		}
		return active[i].Min.LessThan(*active[j].Min)
	})
	for i := 1; i < len(active); i++ {
		prev, cur := active[i-1], active[i]
		if cur.Min == nil {
			return fmt.Errorf("buckets %q and %q: %w", prev.Name, cur.Name, ErrBucketOverlap)
		}
		if prev.Max == nil || cur.Min.LessThan(*prev.Max) {
			return fmt.Errorf("buckets %q and %q: %w", prev.Name, cur.Name, ErrBucketOverlap)
		}
	}
	return nil
}

func validateScenarios(scenarios []types.ExpectationScenario) error {
	if len(scenarios) == 0 {
		return ErrProbabilitySum
	}
	sum := decimal.Zero
	for i, s := range scenarios {
		if s.Probability.IsNegative() || s.Probability.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("scenario %d probability %s: %w", i, s.Probability, ErrProbability)
		}
		if s.MaxHoldingDays <= 0 {
			return fmt.Errorf("scenario %d: %w", i, ErrHoldingDays)
		}
		sum = sum.Add(s.Probability)
	}
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(probabilityTolerance) {
		return fmt.Errorf("sum %s: %w", sum, ErrProbabilitySum)
	}
	return nil
}
