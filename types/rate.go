package types

import "github.com/shopspring/decimal"

// Rate is a ratio that may be unavailable. A month with zero cost or a
// comparison against a zero expectation has no meaningful rate; callers must
// be able to tell "no data" apart from "0%", so rates are never silently
// substituted with zero.
type Rate struct {
	Value decimal.Decimal `json:"value"`
	Valid bool            `json:"valid"`
}

func ValidRate(v decimal.Decimal) Rate {
	return Rate{Value: v, Valid: true}
}

// Ratio divides num by den, returning an invalid Rate when den is zero.
func Ratio(num, den decimal.Decimal) Rate {
	if den.IsZero() {
		return Rate{}
	}
	return ValidRate(num.Div(den))
}

func (r Rate) String() string {
	if !r.Valid {
		return "n/a"
	}
	return r.Value.String()
}
