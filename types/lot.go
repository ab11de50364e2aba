package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosedLot is one FIFO match step: quantity bought at BuyPrice and later
// sold at SellPrice. Immutable once emitted.
type ClosedLot struct {
	Instrument  string          `json:"instrument"`
	Quantity    int64           `json:"quantity"`
	BuyPrice    decimal.Decimal `json:"buyPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	BuyTime     time.Time       `json:"buyTime"`
	SellTime    time.Time       `json:"sellTime"`
	Cost        decimal.Decimal `json:"cost"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	HoldingDays int             `json:"holdingDays"`
}

// ProfitRate is Profit/Cost, invalid when the lot somehow has zero cost.
func (l ClosedLot) ProfitRate() Rate {
	if l.Cost.IsZero() {
		return Rate{}
	}
	return ValidRate(l.Profit.Div(l.Cost))
}

// OpenPosition is the residual unmatched quantity for one instrument after
// a matcher run, carried at weighted-average unit cost.
type OpenPosition struct {
	Instrument string          `json:"instrument"`
	Quantity   int64           `json:"quantity"`
	AvgCost    decimal.Decimal `json:"avgCost"`
}

// Cost is the total cost basis of the remaining quantity.
func (p OpenPosition) Cost() decimal.Decimal {
	return p.AvgCost.Mul(decimal.NewFromInt(p.Quantity))
}
