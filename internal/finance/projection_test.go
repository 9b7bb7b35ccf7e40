package finance

import "testing"

func TestProjectedValue_CompoundsMonthly(t *testing.T) {
	tests := []struct {
		principal float64
		rate      float64
		months    int
		want      float64
	}{
		{100, 10, 6, 177.16},  // 100 × 1.10^6 = 177.1561
		{100, 10, 0, 100.00},  // no elapsed periods
		{100, 8, 3, 125.97},   // 100 × 1.08^3 = 125.9712
		{200, 12, 1, 224.00},  // single period
		{150, 13, 12, 650.18}, // 150 × 1.13^12 = 650.1788...
	}
	for _, tt := range tests {
		got := ProjectedValue(tt.principal, tt.rate, tt.months)
		if got != tt.want {
			t.Errorf("ProjectedValue(%v, %v, %d) = %v, want %v", tt.principal, tt.rate, tt.months, got, tt.want)
		}
	}
}

func TestCurrentValue_CapsAtDuration(t *testing.T) {
	// Elapsed beyond the contracted duration accrues nothing further.
	full := ProjectedValue(100, 10, 6)
	if got := CurrentValue(100, 10, 6, 9); got != full {
		t.Fatalf("CurrentValue elapsed=9 = %v, want %v", got, full)
	}
	if got := CurrentValue(100, 10, 6, 3); got != 133.10 {
		t.Fatalf("CurrentValue elapsed=3 = %v, want 133.10", got)
	}
}

func TestExpectedProfit(t *testing.T) {
	if got := ExpectedProfit(100, 10, 6); got != 77.16 {
		t.Fatalf("ExpectedProfit(100, 10, 6) = %v, want 77.16", got)
	}
}

func TestTotalRepayable_SinglePeriod(t *testing.T) {
	tests := []struct {
		principal float64
		rate      float64
		want      float64
	}{
		{100, 20, 120.00},
		{50, 25, 62.50},
		{350, 17, 409.50},
		{333.33, 20, 400.00}, // 399.996 rounds up
	}
	for _, tt := range tests {
		if got := TotalRepayable(tt.principal, tt.rate); got != tt.want {
			t.Errorf("TotalRepayable(%v, %v) = %v, want %v", tt.principal, tt.rate, got, tt.want)
		}
	}

	// Must stay distinct from the monthly-compounded investment formula.
	if TotalRepayable(100, 20) == ProjectedValue(100, 20, 12) {
		t.Fatal("TotalRepayable must not compound monthly")
	}
}
