package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

var UnknownSideErr = errors.New("unknown trade side")
var OversellErr = errors.New("sell quantity exceeds open lots")
var ZeroQuantityErr = errors.New("trade quantity must be positive")
var InvalidPriceErr = errors.New("trade price below minimum tick")
var MixedInstrumentsErr = errors.New("events for more than one instrument")

var minTick = decimal.RequireFromString("0.01")

// lot is one open buy waiting to be matched. Shrinks as sells consume it.
type lot struct {
	buyTime   time.Time
	unitCost  decimal.Decimal
	remaining int64
}

// Match replays one instrument's trade events in chronological order and
// FIFO-matches sells against the oldest open buys. It returns every closed
// lot plus the residual open position (nil when fully closed).
//
// Match is a pure function of its input: it keeps no state between calls.
// A sell that exceeds the open quantity is corrupted history and aborts the
// instrument with OversellErr instead of guessing.
func Match(events []types.TradeEvent) ([]types.ClosedLot, *types.OpenPosition, error) {
	closed, open, err := matchLots(events)
	if err != nil {
		return nil, nil, err
	}
	if len(events) == 0 {
		return closed, nil, nil
	}
	return closed, openPosition(events[0].Instrument, open), nil
}

// matchLots is Match without the open-lot aggregation, for callers that need
// the per-lot buy times of the remaining inventory.
func matchLots(events []types.TradeEvent) ([]types.ClosedLot, []lot, error) {
	if len(events) == 0 {
		return nil, nil, nil
	}
	instrument := events[0].Instrument
	if err := validateEvents(instrument, events); err != nil {
		return nil, nil, err
	}

	ordered := make([]types.TradeEvent, len(events))
	copy(ordered, events)
	// Stable: events on the same timestamp keep their journal order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TradedAt.Before(ordered[j].TradedAt)
	})

	var queue []lot
	var closed []types.ClosedLot

	for _, ev := range ordered {
		switch ev.Side {
		case types.SideTypeBuy:
			queue = append(queue, lot{
				buyTime:   ev.TradedAt,
				unitCost:  ev.Price,
				remaining: ev.Quantity,
			})

		case types.SideTypeSell:
			remaining := ev.Quantity
			for remaining > 0 && len(queue) > 0 {
				oldest := &queue[0]
				matched := remaining
				if oldest.remaining < matched {
					matched = oldest.remaining
				}
				closed = append(closed, closeLot(instrument, matched, *oldest, ev))
				oldest.remaining -= matched
				remaining -= matched
				if oldest.remaining == 0 {
					queue = queue[1:]
				}
			}
			if remaining > 0 {
				return nil, nil, fmt.Errorf("%s: sell of %d at %s leaves %d unmatched: %w",
					instrument, ev.Quantity, ev.TradedAt.Format(time.RFC3339), remaining, OversellErr)
			}

		default:
			return nil, nil, fmt.Errorf("%s: side %q: %w", instrument, ev.Side, UnknownSideErr)
		}
	}
	return closed, queue, nil
}

func validateEvents(instrument string, events []types.TradeEvent) error {
	for _, ev := range events {
		if ev.Instrument != instrument {
			return fmt.Errorf("%s and %s: %w", instrument, ev.Instrument, MixedInstrumentsErr)
		}
		if ev.Quantity <= 0 {
			return fmt.Errorf("%s at %s: %w", instrument, ev.TradedAt.Format(time.RFC3339), ZeroQuantityErr)
		}
		if ev.Price.LessThan(minTick) {
			return fmt.Errorf("%s at %s: price %s: %w", instrument, ev.TradedAt.Format(time.RFC3339), ev.Price, InvalidPriceErr)
		}
	}
	return nil
}

func closeLot(instrument string, quantity int64, l lot, sell types.TradeEvent) types.ClosedLot {
	qty := decimal.NewFromInt(quantity)
	cost := l.unitCost.Mul(qty)
	revenue := sell.Price.Mul(qty)
	return types.ClosedLot{
		Instrument:  instrument,
		Quantity:    quantity,
		BuyPrice:    l.unitCost,
		SellPrice:   sell.Price,
		BuyTime:     l.buyTime,
		SellTime:    sell.TradedAt,
		Cost:        cost,
		Revenue:     revenue,
		Profit:      revenue.Sub(cost),
		HoldingDays: holdingDays(l.buyTime, sell.TradedAt),
	}
}

// holdingDays counts whole calendar days between the buy and sell dates.
// Same-day round trips hold for zero days.
func holdingDays(buy, sell time.Time) int {
	b := time.Date(buy.Year(), buy.Month(), buy.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(sell.Year(), sell.Month(), sell.Day(), 0, 0, 0, 0, time.UTC)
	days := int(s.Sub(b).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func openPosition(instrument string, queue []lot) *types.OpenPosition {
	var quantity int64
	cost := decimal.Zero
	for _, l := range queue {
		quantity += l.remaining
		cost = cost.Add(l.unitCost.Mul(decimal.NewFromInt(l.remaining)))
	}
	if quantity == 0 {
		return nil
	}
	return &types.OpenPosition{
		Instrument: instrument,
		Quantity:   quantity,
		AvgCost:    cost.Div(decimal.NewFromInt(quantity)),
	}
}
