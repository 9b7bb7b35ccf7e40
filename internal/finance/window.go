package finance

import "time"

// The banking cycle treats days 28-31 of a month plus days 1-8 of the next
// month as one withdrawal window. Two *different* window definitions exist:
//
//   - IsWithinWindow / NextWithdrawalWindow: the 28th→8th eligibility window
//     that gates withdrawal requests and loan approvals.
//   - DuePeriodWindow: the 8th→7th reporting period used only for
//     due-this-period dashboard aggregation.
//
// They are intentionally separate functions; do not unify them.

// IsWithinWindow reports whether withdrawal-request and loan-approval actions
// are permitted on the given day.
func IsWithinWindow(d time.Time) bool {
	day := d.Day()
	return day >= 28 || day <= 8
}

// NextWithdrawalWindow returns the next valid withdrawal cycle boundary: the
// 28th of the reference month, or of the following month when the reference
// date is already past the 28th. Month-length variance is handled by rolling
// over from the 1st rather than from day 28.
func NextWithdrawalWindow(d time.Time) time.Time {
	y, m, _ := d.Date()
	if d.Day() >= 28 {
		firstOfNext := time.Date(y, m, 1, 0, 0, 0, 0, d.Location()).AddDate(0, 1, 0)
		return time.Date(firstOfNext.Year(), firstOfNext.Month(), 28, 0, 0, 0, 0, d.Location())
	}
	return time.Date(y, m, 28, 0, 0, 0, 0, d.Location())
}

// WithdrawableDate snaps a maturity date into the withdrawal window: the 28th
// of the maturity month when maturity already falls on or after the 28th,
// otherwise the 8th of the following month.
func WithdrawableDate(maturity time.Time) time.Time {
	y, m, _ := maturity.Date()
	if maturity.Day() >= 28 {
		return time.Date(y, m, 28, 0, 0, 0, 0, maturity.Location())
	}
	firstOfNext := time.Date(y, m, 1, 0, 0, 0, 0, maturity.Location()).AddDate(0, 1, 0)
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), 8, 0, 0, 0, 0, maturity.Location())
}

// DuePeriodWindow returns the [8th, 7th] reporting period containing the
// given date: [8th of this month, end of the 7th of next month] when the day
// is on or after the 8th, otherwise [8th of the previous month, end of the
// 7th of this month]. Used for due-this-period aggregation only; eligibility
// checks use IsWithinWindow.
func DuePeriodWindow(d time.Time) (start, end time.Time) {
	y, m, _ := d.Date()
	loc := d.Location()
	if d.Day() >= 8 {
		start = time.Date(y, m, 8, 0, 0, 0, 0, loc)
		next := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
		end = time.Date(next.Year(), next.Month(), 7, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
		return start, end
	}
	prev := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
	start = time.Date(prev.Year(), prev.Month(), 8, 0, 0, 0, 0, loc)
	end = time.Date(y, m, 7, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	return start, end
}
