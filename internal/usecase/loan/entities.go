package loan

import "time"

type SubmitInput struct {
	InvestorID string  `json:"investor_id"`
	Amount     float64 `json:"amount"`
	Purpose    string  `json:"purpose"`
}

type LoanDTO struct {
	LoanID           string     `json:"loan_id"`
	InvestorID       string     `json:"investor_id,omitempty"`
	Amount           float64    `json:"amount"`
	Purpose          string     `json:"purpose"`
	InterestRate     float64    `json:"interest_rate"`
	TotalRepayable   float64    `json:"total_repayable"`
	Status           string     `json:"status"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	RepaymentDueDate *time.Time `json:"repayment_due_date,omitempty"`
}

type SubmitRepaymentInput struct {
	LoanID     string `json:"loan_id"`
	InvestorID string `json:"investor_id"`
	ProofRef   string `json:"proof_ref"`
	Method     string `json:"method"`
}

type RepaymentDTO struct {
	RepaymentID string    `json:"repayment_id"`
	LoanID      string    `json:"loan_id"`
	AmountPaid  float64   `json:"amount_paid"`
	DatePaid    time.Time `json:"date_paid"`
	Status      string    `json:"status"`
	ProofRef    string    `json:"proof_ref,omitempty"`
}

// ApproveRepaymentsResult reports one batch approval: which repayments were
// approved and, per affected loan, the recomputed paid total and status.
type ApproveRepaymentsResult struct {
	ApprovedIDs []string              `json:"approved_ids"`
	LoanUpdates map[string]LoanUpdate `json:"loan_updates"`
}

type LoanUpdate struct {
	TotalPaid float64 `json:"total_paid"`
	Status    string  `json:"status"`
}
