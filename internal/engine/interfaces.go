package engine

import (
	"context"
	"time"

	"tradejournal/types"

	"github.com/shopspring/decimal"
)

type eventSource interface {
	// ListEvents returns journal events ordered by trade time (ties by
	// insertion order), with voided/corrected rows already excluded.
	// Empty instrument means all instruments; nil bounds mean unbounded.
	ListEvents(ctx context.Context, instrument string, since, until *time.Time) ([]types.TradeEvent, error)
}

type priceOracle interface {
	// LatestPrices returns the latest known price per instrument. Missing
	// keys mean the oracle has no quote for that instrument.
	LatestPrices(ctx context.Context, instruments []string) (map[string]decimal.Decimal, error)
}
