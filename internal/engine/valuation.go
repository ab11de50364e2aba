package engine

import (
	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// PositionValue is one open position marked at the oracle's latest price.
type PositionValue struct {
	Position    types.OpenPosition
	Price       decimal.Decimal
	MarketValue decimal.Decimal
	Profit      decimal.Decimal
	ProfitRate  types.Rate
	Unpriced    bool
}

// HoldingsReport values the whole open book. Unpriced positions keep their
// cost in TotalCost but contribute nothing to value or profit; ReturnRate is
// computed over priced positions only.
type HoldingsReport struct {
	Positions     []PositionValue
	TotalCost     decimal.Decimal
	TotalValue    decimal.Decimal
	TotalProfit   decimal.Decimal
	ReturnRate    types.Rate
	UnpricedCount int
}

// ValueHoldings marks every open position at its latest price.
func ValueHoldings(positions []types.OpenPosition, prices map[string]decimal.Decimal) HoldingsReport {
	report := HoldingsReport{
		TotalCost:   decimal.Zero,
		TotalValue:  decimal.Zero,
		TotalProfit: decimal.Zero,
	}
	pricedCost := decimal.Zero

	for _, pos := range positions {
		cost := pos.Cost()
		report.TotalCost = report.TotalCost.Add(cost)

		price, ok := prices[pos.Instrument]
		if !ok {
			report.UnpricedCount++
			report.Positions = append(report.Positions, PositionValue{
				Position: pos,
				Unpriced: true,
			})
			continue
		}

		value := price.Mul(decimal.NewFromInt(pos.Quantity))
		profit := value.Sub(cost)
		report.TotalValue = report.TotalValue.Add(value)
		report.TotalProfit = report.TotalProfit.Add(profit)
		pricedCost = pricedCost.Add(cost)
		report.Positions = append(report.Positions, PositionValue{
			Position:    pos,
			Price:       price,
			MarketValue: value,
			Profit:      profit,
			ProfitRate:  types.Ratio(profit, cost),
		})
	}

	report.ReturnRate = types.Ratio(report.TotalProfit, pricedCost)
	return report
}
