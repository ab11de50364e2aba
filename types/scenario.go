package types

import "github.com/shopspring/decimal"

// ExpectationScenario is one row of the probability model: with Probability
// the trade returns ReturnRate within at most MaxHoldingDays.
type ExpectationScenario struct {
	Probability    decimal.Decimal `json:"probability"`
	ReturnRate     decimal.Decimal `json:"returnRate"`
	MaxHoldingDays int             `json:"maxHoldingDays"`
}

// ExpectationSummary is the probability-weighted outcome of the full
// scenario table scaled to a base capital.
type ExpectationSummary struct {
	BaseCapital  decimal.Decimal `json:"baseCapital"`
	ReturnRate   decimal.Decimal `json:"returnRate"`
	ReturnAmount decimal.Decimal `json:"returnAmount"`
	HoldingDays  decimal.Decimal `json:"holdingDays"`
	WinRate      decimal.Decimal `json:"winRate"`
}
