package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyStats is the profit attribution result for one calendar month.
// Attribution follows the buy side: a lot belongs to the month its buy event
// falls in, regardless of when it was (or will be) sold.
type MonthlyStats struct {
	Month           time.Time       `json:"month"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	ReturnRate      Rate            `json:"returnRate"`
	SuccessCount    int             `json:"successCount"`
	SuccessRate     Rate            `json:"successRate"`
	InstrumentCount int             `json:"instrumentCount"`
	UnpricedCount   int             `json:"unpricedCount"`
}

type Verdict string

const (
	VerdictPositive Verdict = "POSITIVE"
	VerdictNeutral  Verdict = "NEUTRAL"
	VerdictNegative Verdict = "NEGATIVE"
)

// ActualSummary carries the realized metrics that line up with an
// ExpectationSummary. Rates are invalid when there were no closed lots
// (or no cost) to derive them from.
type ActualSummary struct {
	TradeCount   int             `json:"tradeCount"`
	ReturnRate   Rate            `json:"returnRate"`
	ReturnAmount decimal.Decimal `json:"returnAmount"`
	HoldingDays  Rate            `json:"holdingDays"`
	WinRate      Rate            `json:"winRate"`
}

// MetricComparison is one expectation-vs-actual diff. Valid is false when
// the actual metric was unavailable, in which case Diff, DiffPct and Verdict
// are meaningless.
type MetricComparison struct {
	Expected decimal.Decimal `json:"expected"`
	Actual   Rate            `json:"actual"`
	Diff     decimal.Decimal `json:"diff"`
	DiffPct  Rate            `json:"diffPct"`
	Verdict  Verdict         `json:"verdict"`
	Valid    bool            `json:"valid"`
}

type Comparison struct {
	Expectation  ExpectationSummary `json:"expectation"`
	Actual       ActualSummary      `json:"actual"`
	ReturnRate   MetricComparison   `json:"returnRate"`
	ReturnAmount MetricComparison   `json:"returnAmount"`
	HoldingDays  MetricComparison   `json:"holdingDays"`
	WinRate      MetricComparison   `json:"winRate"`
}
