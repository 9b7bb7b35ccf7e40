package repayment

import "context"

type Repository interface {
	Create(ctx context.Context, r *LoanRepayment) error
	GetByRepaymentID(ctx context.Context, repaymentID string) (*LoanRepayment, error)
	GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*LoanRepayment, error)
	Save(ctx context.Context, r *LoanRepayment) error
	ListByLoan(ctx context.Context, loanID uint64) ([]LoanRepayment, error)
	ListByInvestor(ctx context.Context, investorID uint64) ([]LoanRepayment, error)
	ListByStatus(ctx context.Context, status Status) ([]LoanRepayment, error)
	// SumApprovedByLoan totals amount_paid over approved repayments; the
	// loan settles once this covers principal plus interest.
	SumApprovedByLoan(ctx context.Context, loanID uint64) (float64, error)
}
