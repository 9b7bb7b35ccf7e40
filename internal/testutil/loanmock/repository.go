package loanmock

import (
	"context"
	"time"

	domain "microfinance-backoffice/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.LoanApplication) error
	GetByLoanIDFn            func(ctx context.Context, loanID string) (*domain.LoanApplication, error)
	GetByLoanIDForUpdateFn   func(ctx context.Context, loanID string) (*domain.LoanApplication, error)
	GetByInternalIDFn        func(ctx context.Context, id uint64) (*domain.LoanApplication, error)
	SaveFn                   func(ctx context.Context, l *domain.LoanApplication) error
	ListByInvestorFn         func(ctx context.Context, investorID uint64) ([]domain.LoanApplication, error)
	ListByStatusFn           func(ctx context.Context, status domain.Status) ([]domain.LoanApplication, error)
	CountByStatusFn          func(ctx context.Context, status domain.Status) (int64, error)
	ListApprovedDueBetweenFn func(ctx context.Context, start, end time.Time) ([]domain.LoanApplication, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.LoanApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.LoanApplication, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.LoanApplication, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByInternalID(ctx context.Context, id uint64) (*domain.LoanApplication, error) {
	if m.GetByInternalIDFn != nil {
		return m.GetByInternalIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.LoanApplication) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64) ([]domain.LoanApplication, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.LoanApplication, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, context.Canceled
}

func (m *Repo) ListApprovedDueBetween(ctx context.Context, start, end time.Time) ([]domain.LoanApplication, error) {
	if m.ListApprovedDueBetweenFn != nil {
		return m.ListApprovedDueBetweenFn(ctx, start, end)
	}
	return nil, context.Canceled
}
