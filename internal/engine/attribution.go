package engine

import (
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryRealized   EntryKind = "REALIZED"
	EntryUnrealized EntryKind = "UNREALIZED"
)

// Entry is one attributed piece of a window's profit: either a closed lot
// whose buy fell inside the window, or still-open quantity bought inside the
// window marked at the latest known price.
type Entry struct {
	Instrument string
	Kind       EntryKind
	Quantity   int64
	Cost       decimal.Decimal
	// Value is the sell revenue for realized entries and the market value
	// for unrealized ones. Zero when Unpriced.
	Value    decimal.Decimal
	Profit   decimal.Decimal
	BuyTime  time.Time
	SellTime *time.Time
	// Unpriced marks an unrealized entry whose instrument has no known
	// price. Its profit is reported as zero so totals stay auditable;
	// callers must not read it as "no profit".
	Unpriced bool
}

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthWindow is the calendar month containing the given year/month, in UTC.
func MonthWindow(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// MonthEntries attributes one instrument's profit to a window using buy
// attribution: a lot belongs to the window its buy event falls in, no matter
// when it was sold. The full event history is matched first; filtering the
// events to the window would misattribute carry-over lots.
//
// price is the oracle's latest quote for the instrument, nil when unknown.
func MonthEntries(events []types.TradeEvent, price *decimal.Decimal, window Window) ([]Entry, error) {
	closed, open, err := matchLots(events)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, cl := range closed {
		if !window.Contains(cl.BuyTime) {
			continue
		}
		sellTime := cl.SellTime
		entries = append(entries, Entry{
			Instrument: cl.Instrument,
			Kind:       EntryRealized,
			Quantity:   cl.Quantity,
			Cost:       cl.Cost,
			Value:      cl.Revenue,
			Profit:     cl.Profit,
			BuyTime:    cl.BuyTime,
			SellTime:   &sellTime,
		})
	}

	for _, l := range open {
		if l.remaining == 0 || !window.Contains(l.buyTime) {
			continue
		}
		qty := decimal.NewFromInt(l.remaining)
		cost := l.unitCost.Mul(qty)
		entry := Entry{
			Instrument: events[0].Instrument,
			Kind:       EntryUnrealized,
			Quantity:   l.remaining,
			Cost:       cost,
			BuyTime:    l.buyTime,
		}
		if price == nil {
			entry.Unpriced = true
			entry.Value = decimal.Zero
			entry.Profit = decimal.Zero
		} else {
			entry.Value = price.Mul(qty)
			entry.Profit = entry.Value.Sub(cost)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MonthlyStats aggregates buy-attributed profit across every instrument in
// the snapshot for one calendar month. Instruments whose unrealized leg
// cannot be priced keep their cost in the totals but are excluded from the
// success-rate denominator.
func MonthlyStats(snap *Snapshot, year int, month time.Month) (types.MonthlyStats, error) {
	window := MonthWindow(year, month)
	stats := types.MonthlyStats{Month: window.Start}

	totalCost := decimal.Zero
	totalProfit := decimal.Zero
	pricedInstruments := 0

	for _, instrument := range snap.Instruments() {
		entries, err := MonthEntries(snap.Events[instrument], snap.price(instrument), window)
		if err != nil {
			return types.MonthlyStats{}, err
		}
		if len(entries) == 0 {
			continue
		}
		stats.InstrumentCount++

		profit := decimal.Zero
		unpriced := false
		for _, e := range entries {
			totalCost = totalCost.Add(e.Cost)
			totalProfit = totalProfit.Add(e.Profit)
			profit = profit.Add(e.Profit)
			if e.Unpriced {
				unpriced = true
			}
		}
		if unpriced {
			stats.UnpricedCount++
			continue
		}
		pricedInstruments++
		if profit.IsPositive() {
			stats.SuccessCount++
		}
	}

	stats.TotalCost = totalCost
	stats.TotalProfit = totalProfit
	stats.ReturnRate = types.Ratio(totalProfit, totalCost)
	stats.SuccessRate = types.Ratio(
		decimal.NewFromInt(int64(stats.SuccessCount)),
		decimal.NewFromInt(int64(pricedInstruments)),
	)
	return stats, nil
}
