package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// growthFactor returns (1 + ratePercent/100) as an exact decimal.
func growthFactor(ratePercent float64) decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromFloat(ratePercent).Div(hundred))
}

// ProjectedValue computes the contracted value of an investment with interest
// compounded once per month: principal × (1 + rate/100)^months, rounded to
// 2 decimal places.
func ProjectedValue(principal, ratePercent float64, durationMonths int) float64 {
	if durationMonths < 0 {
		durationMonths = 0
	}
	v := decimal.NewFromFloat(principal).
		Mul(growthFactor(ratePercent).Pow(decimal.NewFromInt(int64(durationMonths)))).
		Round(2)
	f, _ := v.Float64()
	return f
}

// CurrentValue computes the accrued value after elapsedMonths, capped at the
// contracted duration so partial accrual never exceeds maturity value.
func CurrentValue(principal, ratePercent float64, durationMonths, elapsedMonths int) float64 {
	if elapsedMonths > durationMonths {
		elapsedMonths = durationMonths
	}
	return ProjectedValue(principal, ratePercent, elapsedMonths)
}

// ExpectedProfit is the projected value minus the principal.
func ExpectedProfit(principal, ratePercent float64, durationMonths int) float64 {
	v := decimal.NewFromFloat(ProjectedValue(principal, ratePercent, durationMonths)).
		Sub(decimal.NewFromFloat(principal)).Round(2)
	f, _ := v.Float64()
	return f
}

// TotalRepayable computes the amount due on a loan:
// principal × (1 + rate/100), rounded to 2 decimal places.
//
// Loans charge a single period of interest over the fixed 30-day term. This
// is NOT the monthly-compounded investment formula and must stay separate.
func TotalRepayable(principal, ratePercent float64) float64 {
	v := decimal.NewFromFloat(principal).Mul(growthFactor(ratePercent)).Round(2)
	f, _ := v.Float64()
	return f
}
