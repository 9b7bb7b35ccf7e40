package withdrawalmock

import (
	"context"

	domain "microfinance-backoffice/internal/domain/withdrawal"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                     func(ctx context.Context, w *domain.WithdrawalRequest) error
	GetByWithdrawalIDFn          func(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error)
	GetByWithdrawalIDForUpdateFn func(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error)
	SaveFn                       func(ctx context.Context, w *domain.WithdrawalRequest) error
	GetPendingByInvestmentFn     func(ctx context.Context, investmentID uint64) (*domain.WithdrawalRequest, error)
	ListByInvestorFn             func(ctx context.Context, investorID uint64) ([]domain.WithdrawalRequest, error)
	ListByStatusFn               func(ctx context.Context, status domain.Status) ([]domain.WithdrawalRequest, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, w *domain.WithdrawalRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	return nil
}

func (m *Repo) GetByWithdrawalID(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	if m.GetByWithdrawalIDFn != nil {
		return m.GetByWithdrawalIDFn(ctx, withdrawalID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByWithdrawalIDForUpdate(ctx context.Context, withdrawalID string) (*domain.WithdrawalRequest, error) {
	if m.GetByWithdrawalIDForUpdateFn != nil {
		return m.GetByWithdrawalIDForUpdateFn(ctx, withdrawalID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, w *domain.WithdrawalRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, w)
	}
	return nil
}

func (m *Repo) GetPendingByInvestment(ctx context.Context, investmentID uint64) (*domain.WithdrawalRequest, error) {
	if m.GetPendingByInvestmentFn != nil {
		return m.GetPendingByInvestmentFn(ctx, investmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64) ([]domain.WithdrawalRequest, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.WithdrawalRequest, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}
