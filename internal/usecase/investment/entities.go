package investment

import "time"

type CreateInput struct {
	InvestorID     string  `json:"investor_id"`
	Amount         float64 `json:"amount"`
	DurationMonths int     `json:"duration_months"`
	ProofRef       string  `json:"proof_of_payment_ref"`
}

type InvestmentDTO struct {
	InvestmentID           string     `json:"investment_id"`
	InvestorID             string     `json:"investor_id"`
	Amount                 float64    `json:"amount"`
	DurationMonths         int        `json:"duration_months"`
	Rate                   float64    `json:"rate"`
	Status                 string     `json:"status"`
	ExpectedReturn         float64    `json:"expected_return"`
	CurrentValue           float64    `json:"current_value"`
	ExpectedWithdrawalDate *time.Time `json:"expected_withdrawal_date,omitempty"`
	CanWithdrawNow         bool       `json:"can_withdraw_now"`
	ProofRef               string     `json:"proof_of_payment_ref,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	ApprovedAt             *time.Time `json:"approved_at,omitempty"`
}
