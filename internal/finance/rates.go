// Package finance holds the pure computational core of the back office:
// interest-rate bracket lookup, compound-return projection and the banking
// cycle date arithmetic. Everything here is side-effect free; handlers and
// usecases call into it and persist the results.
package finance

import "errors"

var (
	// ErrNoApplicableRate means the amount falls below the minimum bracket.
	ErrNoApplicableRate = errors.New("no applicable rate for amount")
	// ErrInvalidInput means a non-positive amount or duration reached a
	// calculator. Rejected before lookup so a zero rate is never returned
	// silently.
	ErrInvalidInput = errors.New("amount and duration must be positive")
)

// investmentBracket maps an amount range to per-duration-band rates.
// Ranges are closed-closed; the last is open-ended.
type investmentBracket struct {
	lo, hi float64
	upTo3  float64 // 1-3 months
	upTo6  float64 // 4-6 months
	upTo12 float64 // 7-12 months
}

var investmentBrackets = []investmentBracket{
	{lo: 28, hi: 99, upTo3: 8, upTo6: 10, upTo12: 12},
	{lo: 100, hi: 199, upTo3: 10, upTo6: 12, upTo12: 13},
	{lo: 200, hi: -1, upTo3: 12, upTo6: 14, upTo12: 15},
}

const maxDurationMonths = 12

// InvestmentRate returns the contracted monthly compound rate (as a percent)
// for an investment of the given amount and duration. The rate is fixed at
// creation time and never recomputed. Durations beyond the table fall back to
// the rate at the maximum defined duration.
func InvestmentRate(amount float64, durationMonths int) (float64, error) {
	if amount <= 0 || durationMonths <= 0 {
		return 0, ErrInvalidInput
	}
	for _, b := range investmentBrackets {
		if amount < b.lo || (b.hi >= 0 && amount > b.hi) {
			continue
		}
		months := durationMonths
		if months > maxDurationMonths {
			months = maxDurationMonths
		}
		switch {
		case months <= 3:
			return b.upTo3, nil
		case months <= 6:
			return b.upTo6, nil
		default:
			return b.upTo12, nil
		}
	}
	return 0, ErrNoApplicableRate
}

// LoanRate returns the single-period interest rate (as a percent) for a loan
// of the given amount. The loan table is keyed by amount only and is
// independent of the investment brackets.
func LoanRate(amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidInput
	}
	switch {
	case amount < 28:
		return 0, ErrNoApplicableRate
	case amount <= 99:
		return 25, nil
	case amount <= 349:
		return 20, nil
	default:
		return 17, nil
	}
}
