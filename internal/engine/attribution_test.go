package engine

import (
	"reflect"
	"testing"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

func TestMonthEntriesBuyAttribution(t *testing.T) {
	// Bought in January, sold in March: the whole profit belongs to
	// January, nothing to March.
	events := []types.TradeEvent{
		ev("ACME", types.SideTypeBuy, 100, "10", time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
		ev("ACME", types.SideTypeSell, 100, "12", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)),
	}

	january, err := MonthEntries(events, nil, MonthWindow(2026, time.January))
	if err != nil {
		t.Fatal(err)
	}
	if len(january) != 1 {
		t.Fatalf("january entries = %d, want 1", len(january))
	}
	e := january[0]
	if e.Kind != EntryRealized {
		t.Errorf("kind = %s, want realized", e.Kind)
	}
	if !e.Profit.Equal(decimal.NewFromInt(200)) {
		t.Errorf("profit = %s, want 200", e.Profit)
	}

	march, err := MonthEntries(events, nil, MonthWindow(2026, time.March))
	if err != nil {
		t.Fatal(err)
	}
	if len(march) != 0 {
		t.Errorf("march entries = %d, want 0 (sell month gets nothing)", len(march))
	}
}

func TestMonthEntriesUnrealized(t *testing.T) {
	events := []types.TradeEvent{
		ev("ACME", types.SideTypeBuy, 100, "10", time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
		ev("ACME", types.SideTypeSell, 40, "12", time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)),
	}
	price := decimal.RequireFromString("11")

	entries, err := MonthEntries(events, &price, MonthWindow(2026, time.January))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want realized + unrealized", len(entries))
	}

	realized, unrealized := entries[0], entries[1]
	if !realized.Profit.Equal(decimal.NewFromInt(80)) { // 40 * (12-10)
		t.Errorf("realized profit = %s, want 80", realized.Profit)
	}
	if unrealized.Kind != EntryUnrealized || unrealized.Quantity != 60 {
		t.Fatalf("unrealized = %+v, want 60 open units", unrealized)
	}
	if !unrealized.Profit.Equal(decimal.NewFromInt(60)) { // 60 * (11-10)
		t.Errorf("unrealized profit = %s, want 60", unrealized.Profit)
	}
}

func TestMonthEntriesUnpricedFlag(t *testing.T) {
	events := []types.TradeEvent{
		ev("ACME", types.SideTypeBuy, 100, "10", time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
	}

	entries, err := MonthEntries(events, nil, MonthWindow(2026, time.January))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if !e.Unpriced {
		t.Error("entry must carry the unpriced flag, not be dropped")
	}
	if !e.Profit.IsZero() || !e.Value.IsZero() {
		t.Errorf("unpriced entry profit/value = %s/%s, want zero", e.Profit, e.Value)
	}
	if !e.Cost.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("cost = %s, want 1000 (kept for auditability)", e.Cost)
	}
}

func TestMonthlyStats(t *testing.T) {
	jan := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	snap := NewSnapshot([]types.TradeEvent{
		// winner: bought and sold
		ev("ACME", types.SideTypeBuy, 100, "10", jan),
		ev("ACME", types.SideTypeSell, 100, "12", jan.AddDate(0, 0, 5)),
		// loser: open, priced below cost
		ev("GLOBEX", types.SideTypeBuy, 50, "20", jan),
		// unpriced: open, no quote
		ev("INITECH", types.SideTypeBuy, 10, "5", jan),
	}, map[string]decimal.Decimal{
		"GLOBEX": decimal.RequireFromString("19"),
	})

	stats, err := MonthlyStats(snap, 2026, time.January)
	if err != nil {
		t.Fatal(err)
	}

	if stats.InstrumentCount != 3 {
		t.Errorf("instrument count = %d, want 3", stats.InstrumentCount)
	}
	if stats.UnpricedCount != 1 {
		t.Errorf("unpriced count = %d, want 1", stats.UnpricedCount)
	}
	// 1000 + 1000 + 50 cost, 200 - 50 profit, unpriced contributes cost only
	if !stats.TotalCost.Equal(decimal.NewFromInt(2050)) {
		t.Errorf("total cost = %s, want 2050", stats.TotalCost)
	}
	if !stats.TotalProfit.Equal(decimal.NewFromInt(150)) {
		t.Errorf("total profit = %s, want 150", stats.TotalProfit)
	}
	if stats.SuccessCount != 1 {
		t.Errorf("success count = %d, want 1 (only ACME is positive)", stats.SuccessCount)
	}
	// Denominator excludes the unpriced instrument: 1 of 2.
	if !stats.SuccessRate.Valid || !stats.SuccessRate.Value.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("success rate = %s, want 0.5", stats.SuccessRate)
	}
	if !stats.ReturnRate.Valid {
		t.Error("return rate must be available")
	}
}

func TestMonthlyStatsZeroCostMonth(t *testing.T) {
	snap := NewSnapshot([]types.TradeEvent{
		ev("ACME", types.SideTypeBuy, 100, "10", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)),
	}, nil)

	// January has no buys at all: zero cost, and the rate must come back
	// unavailable instead of dividing by zero.
	stats, err := MonthlyStats(snap, 2026, time.January)
	if err != nil {
		t.Fatal(err)
	}
	if !stats.TotalCost.IsZero() {
		t.Errorf("total cost = %s, want 0", stats.TotalCost)
	}
	if stats.ReturnRate.Valid {
		t.Error("return rate of a zero-cost month must be unavailable, not zero")
	}
	if stats.SuccessRate.Valid {
		t.Error("success rate with no instruments must be unavailable")
	}
}

func TestMonthlyStatsIdempotent(t *testing.T) {
	jan := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	snap := NewSnapshot([]types.TradeEvent{
		ev("ACME", types.SideTypeBuy, 100, "10", jan),
		ev("ACME", types.SideTypeSell, 60, "12", jan.AddDate(0, 0, 3)),
	}, map[string]decimal.Decimal{
		"ACME": decimal.RequireFromString("11"),
	})

	first, err := MonthlyStats(snap, 2026, time.January)
	if err != nil {
		t.Fatal(err)
	}
	second, err := MonthlyStats(snap, 2026, time.January)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same snapshot, different stats:\n%+v\n%+v", first, second)
	}
}

func TestMonthWindowBoundaries(t *testing.T) {
	window := MonthWindow(2026, time.January)

	if !window.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("first second of the month must be inside")
	}
	if !window.Contains(time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)) {
		t.Error("last second of the month must be inside")
	}
	if window.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("first second of the next month must be outside")
	}
}
