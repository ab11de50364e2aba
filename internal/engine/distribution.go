package engine

import (
	"sort"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RatedItem is anything with a profit rate: a single closed lot in
// trade-pair mode, or a whole instrument's lifetime aggregate in legacy
// mode. The aggregator does not care which granularity it gets.
type RatedItem struct {
	Label  string
	Profit decimal.Decimal
	Rate   decimal.Decimal
}

// Distribute buckets items by profit rate. Buckets are assumed validated
// (non-overlapping, min < max); the first bucket in sort order whose
// [min, max) range contains the rate wins. An empty input yields zero counts
// and zero percentages, never a division error.
func Distribute(items []RatedItem, buckets []types.ProfitBucket) types.Distribution {
	active := make([]types.ProfitBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Active {
			active = append(active, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SortOrder < active[j].SortOrder
	})

	counts := make([]int, len(active))
	profits := make([]decimal.Decimal, len(active))
	for i := range profits {
		profits[i] = decimal.Zero
	}

	for _, item := range items {
		for i, b := range active {
			if b.Contains(item.Rate) {
				counts[i]++
				profits[i] = profits[i].Add(item.Profit)
				break
			}
		}
	}

	dist := types.Distribution{TotalItems: len(items)}
	total := decimal.NewFromInt(int64(len(items)))
	for i, b := range active {
		pct := decimal.Zero
		if len(items) > 0 {
			pct = decimal.NewFromInt(int64(counts[i])).Mul(hundred).Div(total)
		}
		dist.Buckets = append(dist.Buckets, types.BucketResult{
			Name:       b.Name,
			Count:      counts[i],
			Percentage: pct,
			Profit:     profits[i],
		})
	}
	return dist
}

// TradePairItems turns closed lots into distribution items, one per
// completed buy→sell cycle.
func TradePairItems(lots []types.ClosedLot) []RatedItem {
	var items []RatedItem
	for _, l := range lots {
		rate := l.ProfitRate()
		if !rate.Valid {
			continue
		}
		items = append(items, RatedItem{
			Label:  l.Instrument,
			Profit: l.Profit,
			Rate:   rate.Value,
		})
	}
	return items
}
