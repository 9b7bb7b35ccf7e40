package repaymentmock

import (
	"context"

	domain "microfinance-backoffice/internal/domain/repayment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, r *domain.LoanRepayment) error
	GetByRepaymentIDFn          func(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error)
	GetByRepaymentIDForUpdateFn func(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error)
	SaveFn                      func(ctx context.Context, r *domain.LoanRepayment) error
	ListByLoanFn                func(ctx context.Context, loanID uint64) ([]domain.LoanRepayment, error)
	ListByInvestorFn            func(ctx context.Context, investorID uint64) ([]domain.LoanRepayment, error)
	ListByStatusFn              func(ctx context.Context, status domain.Status) ([]domain.LoanRepayment, error)
	SumApprovedByLoanFn         func(ctx context.Context, loanID uint64) (float64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, r *domain.LoanRepayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRepaymentID(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error) {
	if m.GetByRepaymentIDFn != nil {
		return m.GetByRepaymentIDFn(ctx, repaymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error) {
	if m.GetByRepaymentIDForUpdateFn != nil {
		return m.GetByRepaymentIDForUpdateFn(ctx, repaymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.LoanRepayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.LoanRepayment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64) ([]domain.LoanRepayment, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.LoanRepayment, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) SumApprovedByLoan(ctx context.Context, loanID uint64) (float64, error) {
	if m.SumApprovedByLoanFn != nil {
		return m.SumApprovedByLoanFn(ctx, loanID)
	}
	return 0, context.Canceled
}
