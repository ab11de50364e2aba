package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)

// TradeEvent is one journal entry: a buy or sell of a single instrument.
// Events are owned by the event source; the engine only reads them.
type TradeEvent struct {
	Instrument string          `json:"instrument"`
	Side       Side            `json:"side"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TradedAt   time.Time       `json:"tradedAt"`
}
