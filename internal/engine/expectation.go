package engine

import (
	"tradejournal/types"

	"github.com/shopspring/decimal"
)

// neutralBand is the |pct diff| threshold below which a comparison counts as
// neutral rather than a real deviation.
var neutralBand = decimal.NewFromInt(5)

// Expectation folds the scenario table into its probability-weighted
// outcome. Base capital scales only the return amount; rates, days and win
// rate are capital-independent.
func Expectation(scenarios []types.ExpectationScenario, baseCapital decimal.Decimal) types.ExpectationSummary {
	returnRate := decimal.Zero
	holdingDays := decimal.Zero
	winRate := decimal.Zero

	for _, s := range scenarios {
		returnRate = returnRate.Add(s.Probability.Mul(s.ReturnRate))
		holdingDays = holdingDays.Add(s.Probability.Mul(decimal.NewFromInt(int64(s.MaxHoldingDays))))
		if s.ReturnRate.IsPositive() {
			winRate = winRate.Add(s.Probability)
		}
	}

	return types.ExpectationSummary{
		BaseCapital:  baseCapital,
		ReturnRate:   returnRate,
		ReturnAmount: baseCapital.Mul(returnRate),
		HoldingDays:  holdingDays,
		WinRate:      winRate,
	}
}

// Actuals derives the realized counterpart of an expectation summary from a
// set of closed lots. With no lots every rate is unavailable, not zero.
func Actuals(lots []types.ClosedLot) types.ActualSummary {
	summary := types.ActualSummary{
		TradeCount:   len(lots),
		ReturnAmount: decimal.Zero,
	}
	if len(lots) == 0 {
		return summary
	}

	totalCost := decimal.Zero
	totalProfit := decimal.Zero
	totalDays := decimal.Zero
	wins := 0
	for _, l := range lots {
		totalCost = totalCost.Add(l.Cost)
		totalProfit = totalProfit.Add(l.Profit)
		totalDays = totalDays.Add(decimal.NewFromInt(int64(l.HoldingDays)))
		if l.Profit.IsPositive() {
			wins++
		}
	}

	count := decimal.NewFromInt(int64(len(lots)))
	summary.ReturnAmount = totalProfit
	summary.ReturnRate = types.Ratio(totalProfit, totalCost)
	summary.HoldingDays = types.ValidRate(totalDays.Div(count))
	summary.WinRate = types.ValidRate(decimal.NewFromInt(int64(wins)).Div(count))
	return summary
}

// Compare diffs actual metrics against the expectation. The holding-days
// comparison inverts the sign convention: finishing trades faster than
// expected is a positive verdict.
func Compare(expected types.ExpectationSummary, actual types.ActualSummary) types.Comparison {
	amount := types.Rate{}
	if actual.TradeCount > 0 {
		amount = types.ValidRate(actual.ReturnAmount)
	}
	return types.Comparison{
		Expectation:  expected,
		Actual:       actual,
		ReturnRate:   compareMetric(expected.ReturnRate, actual.ReturnRate, false),
		ReturnAmount: compareMetric(expected.ReturnAmount, amount, false),
		HoldingDays:  compareMetric(expected.HoldingDays, actual.HoldingDays, true),
		WinRate:      compareMetric(expected.WinRate, actual.WinRate, false),
	}
}

// compareMetric classifies one diff. lessIsBetter flips which direction
// counts as positive; it is a parameter so no metric hard-codes its own sign
// convention.
func compareMetric(expected decimal.Decimal, actual types.Rate, lessIsBetter bool) types.MetricComparison {
	cmp := types.MetricComparison{Expected: expected, Actual: actual}
	if !actual.Valid {
		return cmp
	}
	cmp.Valid = true
	cmp.Diff = actual.Value.Sub(expected)
	cmp.DiffPct = types.Ratio(cmp.Diff.Mul(hundred), expected)

	switch {
	case cmp.DiffPct.Valid && cmp.DiffPct.Value.Abs().LessThanOrEqual(neutralBand):
		cmp.Verdict = types.VerdictNeutral
	case cmp.Diff.IsZero():
		cmp.Verdict = types.VerdictNeutral
	case cmp.Diff.IsPositive() != lessIsBetter:
		cmp.Verdict = types.VerdictPositive
	default:
		cmp.Verdict = types.VerdictNegative
	}
	return cmp
}
