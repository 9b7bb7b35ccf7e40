package investormock

import (
	"context"

	domain "microfinance-backoffice/internal/domain/investor"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, inv *domain.Investor) error
	GetByInvestorIDFn        func(ctx context.Context, investorID string) (*domain.Investor, error)
	GetByInternalIDFn        func(ctx context.Context, id uint64) (*domain.Investor, error)
	GetByEmailFn             func(ctx context.Context, email string) (*domain.Investor, error)
	GetByConfirmationTokenFn func(ctx context.Context, token string) (*domain.Investor, error)
	GetByResetTokenFn        func(ctx context.Context, token string) (*domain.Investor, error)
	SaveFn                   func(ctx context.Context, inv *domain.Investor) error
	ListPendingFn            func(ctx context.Context) ([]domain.Investor, error)
	CountApprovedFn          func(ctx context.Context) (int64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, inv *domain.Investor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) GetByInvestorID(ctx context.Context, investorID string) (*domain.Investor, error) {
	if m.GetByInvestorIDFn != nil {
		return m.GetByInvestorIDFn(ctx, investorID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByInternalID(ctx context.Context, id uint64) (*domain.Investor, error) {
	if m.GetByInternalIDFn != nil {
		return m.GetByInternalIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Investor, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByConfirmationToken(ctx context.Context, token string) (*domain.Investor, error) {
	if m.GetByConfirmationTokenFn != nil {
		return m.GetByConfirmationTokenFn(ctx, token)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByResetToken(ctx context.Context, token string) (*domain.Investor, error) {
	if m.GetByResetTokenFn != nil {
		return m.GetByResetTokenFn(ctx, token)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, inv *domain.Investor) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}

func (m *Repo) ListPending(ctx context.Context) ([]domain.Investor, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) CountApproved(ctx context.Context) (int64, error) {
	if m.CountApprovedFn != nil {
		return m.CountApprovedFn(ctx)
	}
	return 0, context.Canceled
}
