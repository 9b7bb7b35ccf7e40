package finance

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWithinWindow(t *testing.T) {
	tests := []struct {
		d    time.Time
		want bool
	}{
		{day(2025, time.March, 28), true},
		{day(2025, time.March, 31), true},
		{day(2025, time.April, 1), true},
		{day(2025, time.April, 8), true},
		{day(2025, time.April, 9), false},
		{day(2025, time.April, 27), false},
		{day(2025, time.February, 28), true},
	}
	for _, tt := range tests {
		if got := IsWithinWindow(tt.d); got != tt.want {
			t.Errorf("IsWithinWindow(%v) = %v, want %v", tt.d.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestNextWithdrawalWindow(t *testing.T) {
	tests := []struct {
		d    time.Time
		want time.Time
	}{
		{day(2025, time.March, 5), day(2025, time.March, 28)},
		{day(2025, time.March, 27), day(2025, time.March, 28)},
		{day(2025, time.March, 28), day(2025, time.April, 28)},
		{day(2025, time.March, 31), day(2025, time.April, 28)},
		// 31-day month rollover and year boundary
		{day(2025, time.December, 29), day(2026, time.January, 28)},
		// February has no 29th-31st in 2025; day 28 still rolls forward
		{day(2025, time.February, 28), day(2025, time.March, 28)},
	}
	for _, tt := range tests {
		if got := NextWithdrawalWindow(tt.d); !got.Equal(tt.want) {
			t.Errorf("NextWithdrawalWindow(%v) = %v, want %v",
				tt.d.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestWithdrawableDate_SnapsMaturity(t *testing.T) {
	tests := []struct {
		maturity time.Time
		want     time.Time
	}{
		{day(2025, time.June, 30), day(2025, time.June, 28)},
		{day(2025, time.June, 28), day(2025, time.June, 28)},
		{day(2025, time.June, 15), day(2025, time.July, 8)},
		{day(2025, time.December, 10), day(2026, time.January, 8)},
	}
	for _, tt := range tests {
		if got := WithdrawableDate(tt.maturity); !got.Equal(tt.want) {
			t.Errorf("WithdrawableDate(%v) = %v, want %v",
				tt.maturity.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestDuePeriodWindow(t *testing.T) {
	// On or after the 8th: [8th this month, 7th next month].
	start, end := DuePeriodWindow(day(2025, time.March, 15))
	if !start.Equal(day(2025, time.March, 8)) {
		t.Fatalf("start = %v, want 2025-03-08", start.Format("2006-01-02"))
	}
	if end.Year() != 2025 || end.Month() != time.April || end.Day() != 7 {
		t.Fatalf("end = %v, want 2025-04-07", end.Format("2006-01-02"))
	}

	// Before the 8th: [8th previous month, 7th this month].
	start, end = DuePeriodWindow(day(2025, time.March, 3))
	if !start.Equal(day(2025, time.February, 8)) {
		t.Fatalf("start = %v, want 2025-02-08", start.Format("2006-01-02"))
	}
	if end.Month() != time.March || end.Day() != 7 {
		t.Fatalf("end = %v, want 2025-03-07", end.Format("2006-01-02"))
	}

	// The 8th itself opens a new period; year boundary rolls cleanly.
	start, end = DuePeriodWindow(day(2025, time.December, 8))
	if !start.Equal(day(2025, time.December, 8)) || end.Month() != time.January || end.Year() != 2026 {
		t.Fatalf("december window = [%v, %v]", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	// Reporting window is a different definition from the eligibility window.
	d := day(2025, time.March, 20)
	if IsWithinWindow(d) {
		t.Fatal("2025-03-20 must be outside the eligibility window")
	}
	s, e := DuePeriodWindow(d)
	if d.Before(s) || d.After(e) {
		t.Fatal("2025-03-20 must fall inside its reporting period")
	}
}
