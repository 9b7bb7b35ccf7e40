package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *LoanApplication) error
	GetByLoanID(ctx context.Context, loanID string) (*LoanApplication, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*LoanApplication, error)
	GetByInternalID(ctx context.Context, id uint64) (*LoanApplication, error)
	Save(ctx context.Context, l *LoanApplication) error
	ListByInvestor(ctx context.Context, investorID uint64) ([]LoanApplication, error)
	ListByStatus(ctx context.Context, status Status) ([]LoanApplication, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	// ListApprovedDueBetween returns approved loans whose repayment due date
	// falls inside [start, end]; feeds the due-period dashboard.
	ListApprovedDueBetween(ctx context.Context, start, end time.Time) ([]LoanApplication, error)
}
