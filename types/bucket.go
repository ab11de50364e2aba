package types

import "github.com/shopspring/decimal"

// ProfitBucket is one user-configured profit-rate range. The range is
// half-open [Min, Max); a nil bound means unbounded on that side.
type ProfitBucket struct {
	Name      string           `json:"name"`
	Min       *decimal.Decimal `json:"min"`
	Max       *decimal.Decimal `json:"max"`
	SortOrder int              `json:"sortOrder"`
	Active    bool             `json:"active"`
}

// Contains reports whether rate falls inside the bucket range.
// Min is inclusive, Max is exclusive.
func (b ProfitBucket) Contains(rate decimal.Decimal) bool {
	if b.Min != nil && rate.LessThan(*b.Min) {
		return false
	}
	if b.Max != nil && !rate.LessThan(*b.Max) {
		return false
	}
	return true
}

// BucketResult is a ProfitBucket with its aggregation output attached.
type BucketResult struct {
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
	Profit     decimal.Decimal `json:"profit"`
}

type Distribution struct {
	TotalItems int            `json:"totalItems"`
	Buckets    []BucketResult `json:"buckets"`
}
