package engine

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

const journalTag = "journal"

// Settings is the engine configuration resolved by the caller (usually from
// internal/config) before any computation runs.
type Settings struct {
	Buckets     []types.ProfitBucket
	Scenarios   []types.ExpectationScenario
	BaseCapital decimal.Decimal
	// CalculationStart excludes earlier trades from expectation-comparison
	// runs only. Zero means no cutoff.
	CalculationStart time.Time
	// CacheTTL bounds how long computed aggregates are served from cache.
	// Zero disables the TTL; entries still drop on InvalidateJournal.
	CacheTTL time.Duration
}

type Engine struct {
	source   eventSource
	oracle   priceOracle
	settings Settings
	cache    *Cache
}

func NewEngine(source eventSource, oracle priceOracle, settings Settings) *Engine {
	return &Engine{
		source:   source,
		oracle:   oracle,
		settings: settings,
		cache:    NewCache(),
	}
}

// Snapshot is an immutable view of the whole journal plus the prices needed
// to value it. All events and all prices are fetched up front, once, so the
// pure computations never touch I/O (and never issue a price query per
// instrument).
type Snapshot struct {
	Version     string
	Events      map[string][]types.TradeEvent
	Prices      map[string]decimal.Decimal
	instruments []string
}

// Instruments returns the instrument codes in the snapshot, sorted.
func (s *Snapshot) Instruments() []string {
	return s.instruments
}

func (s *Snapshot) price(instrument string) *decimal.Decimal {
	if p, ok := s.Prices[instrument]; ok {
		return &p
	}
	return nil
}

// NewSnapshot builds a snapshot from pre-fetched events and prices.
func NewSnapshot(events []types.TradeEvent, prices map[string]decimal.Decimal) *Snapshot {
	snap := &Snapshot{
		Events: make(map[string][]types.TradeEvent),
		Prices: prices,
	}
	if snap.Prices == nil {
		snap.Prices = make(map[string]decimal.Decimal)
	}
	for _, ev := range events {
		snap.Events[ev.Instrument] = append(snap.Events[ev.Instrument], ev)
	}
	for instrument := range snap.Events {
		snap.instruments = append(snap.instruments, instrument)
	}
	sort.Strings(snap.instruments)
	snap.Version = snapshotVersion(snap.instruments, snap.Events)
	return snap
}

// LoadSnapshot batch-fetches the journal and every needed price.
func (e *Engine) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	events, err := e.source.ListEvents(ctx, "", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	instruments := make(map[string]bool)
	var codes []string
	for _, ev := range events {
		if !instruments[ev.Instrument] {
			instruments[ev.Instrument] = true
			codes = append(codes, ev.Instrument)
		}
	}

	prices, err := e.oracle.LatestPrices(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("latest prices: %w", err)
	}

	return NewSnapshot(events, prices), nil
}

// Monthly computes (and caches) one month's buy-attributed stats.
func (e *Engine) Monthly(snap *Snapshot, year int, month time.Month) (types.MonthlyStats, error) {
	key := cacheKey("monthly", snap.Version, fmt.Sprintf("%d-%02d", year, month))
	if v, ok := e.cache.Get(key); ok {
		return v.(types.MonthlyStats), nil
	}
	stats, err := MonthlyStats(snap, year, month)
	if err != nil {
		return types.MonthlyStats{}, err
	}
	e.cache.Set(key, stats, e.settings.CacheTTL, journalTag)
	return stats, nil
}

// MonthlyRange computes stats for every calendar month from `from` through
// `to` inclusive.
func (e *Engine) MonthlyRange(snap *Snapshot, from, to time.Time) ([]types.MonthlyStats, error) {
	var out []types.MonthlyStats
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		stats, err := e.Monthly(snap, cur.Year(), cur.Month())
		if err != nil {
			return nil, err
		}
		out = append(out, stats)
		cur = cur.AddDate(0, 1, 0)
	}
	return out, nil
}

// ClosedLots matches every instrument in the snapshot and returns all closed
// lots plus the remaining open positions.
func (e *Engine) ClosedLots(snap *Snapshot) ([]types.ClosedLot, []types.OpenPosition, error) {
	var lots []types.ClosedLot
	var positions []types.OpenPosition
	for _, instrument := range snap.Instruments() {
		closed, open, err := Match(snap.Events[instrument])
		if err != nil {
			return nil, nil, err
		}
		lots = append(lots, closed...)
		if open != nil {
			positions = append(positions, *open)
		}
	}
	return lots, positions, nil
}

// TradePairDistribution buckets every completed buy→sell cycle by its
// profit rate.
func (e *Engine) TradePairDistribution(snap *Snapshot) (types.Distribution, error) {
	key := cacheKey("pairdist", snap.Version)
	if v, ok := e.cache.Get(key); ok {
		return v.(types.Distribution), nil
	}
	lots, _, err := e.ClosedLots(snap)
	if err != nil {
		return types.Distribution{}, err
	}
	dist := Distribute(TradePairItems(lots), e.settings.Buckets)
	e.cache.Set(key, dist, e.settings.CacheTTL, journalTag)
	return dist, nil
}

// InstrumentDistribution buckets whole instruments: each item folds the
// instrument's entire history, realized and unrealized, into one profit
// rate. When the open remainder has no price only the realized legs count.
func (e *Engine) InstrumentDistribution(snap *Snapshot) (types.Distribution, error) {
	key := cacheKey("instdist", snap.Version)
	if v, ok := e.cache.Get(key); ok {
		return v.(types.Distribution), nil
	}

	var items []RatedItem
	for _, instrument := range snap.Instruments() {
		closed, open, err := Match(snap.Events[instrument])
		if err != nil {
			return types.Distribution{}, err
		}

		cost := decimal.Zero
		profit := decimal.Zero
		for _, l := range closed {
			cost = cost.Add(l.Cost)
			profit = profit.Add(l.Profit)
		}
		if open != nil {
			if price := snap.price(instrument); price != nil {
				posCost := open.Cost()
				cost = cost.Add(posCost)
				profit = profit.Add(price.Mul(decimal.NewFromInt(open.Quantity)).Sub(posCost))
			}
		}
		if cost.IsZero() {
			continue
		}
		items = append(items, RatedItem{
			Label:  instrument,
			Profit: profit,
			Rate:   profit.Div(cost),
		})
	}

	dist := Distribute(items, e.settings.Buckets)
	e.cache.Set(key, dist, e.settings.CacheTTL, journalTag)
	return dist, nil
}

// ValueOpenHoldings marks the whole open book at the snapshot's prices.
func (e *Engine) ValueOpenHoldings(snap *Snapshot) (HoldingsReport, error) {
	_, positions, err := e.ClosedLots(snap)
	if err != nil {
		return HoldingsReport{}, err
	}
	return ValueHoldings(positions, snap.Prices), nil
}

// ExpectationComparison diffs realized performance against the probability
// model. Lots bought before the calculation start date are left out; the
// match itself still runs over the full history so carried-over sells keep
// their buys.
func (e *Engine) ExpectationComparison(snap *Snapshot) (types.Comparison, error) {
	key := cacheKey("comparison", snap.Version, e.settings.BaseCapital.String())
	if v, ok := e.cache.Get(key); ok {
		return v.(types.Comparison), nil
	}

	lots, _, err := e.ClosedLots(snap)
	if err != nil {
		return types.Comparison{}, err
	}
	if start := e.settings.CalculationStart; !start.IsZero() {
		kept := lots[:0]
		for _, l := range lots {
			if !l.BuyTime.Before(start) {
				kept = append(kept, l)
			}
		}
		lots = kept
	}

	comparison := Compare(Expectation(e.settings.Scenarios, e.settings.BaseCapital), Actuals(lots))
	e.cache.Set(key, comparison, e.settings.CacheTTL, journalTag)
	return comparison, nil
}

// InvalidateJournal drops every cached aggregate. Call it after any insert,
// update, void or correction of a trade event.
func (e *Engine) InvalidateJournal() {
	e.cache.Invalidate(journalTag)
}

func snapshotVersion(instruments []string, events map[string][]types.TradeEvent) string {
	h := fnv.New64a()
	for _, instrument := range instruments {
		for _, ev := range events[instrument] {
			fmt.Fprintf(h, "%s|%s|%d|%s|%d\n",
				ev.Instrument, ev.Side, ev.Quantity, ev.Price.String(), ev.TradedAt.UnixNano())
		}
	}
	return fmt.Sprintf("%x", h.Sum64())
}
