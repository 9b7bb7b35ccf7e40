package investmentmock

import (
	"context"

	domain "microfinance-backoffice/internal/domain/investment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the fields a test needs; unfilled ones fail fast.
type Repo struct {
	CreateFn                     func(ctx context.Context, inv *domain.Investment) error
	GetByInvestmentIDFn          func(ctx context.Context, investmentID string) (*domain.Investment, error)
	GetByInvestmentIDForUpdateFn func(ctx context.Context, investmentID string) (*domain.Investment, error)
	GetByInternalIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.Investment, error)
	SaveFn                       func(ctx context.Context, inv *domain.Investment) error
	ListByInvestorFn             func(ctx context.Context, investorID uint64) ([]domain.Investment, error)
	ListByStatusFn               func(ctx context.Context, status domain.Status) ([]domain.Investment, error)
	SumAmountByStatusFn          func(ctx context.Context, status domain.Status) (float64, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, inv *domain.Investment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}

func (m *Repo) GetByInvestmentID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	if m.GetByInvestmentIDFn != nil {
		return m.GetByInvestmentIDFn(ctx, investmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*domain.Investment, error) {
	if m.GetByInvestmentIDForUpdateFn != nil {
		return m.GetByInvestmentIDForUpdateFn(ctx, investmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByInternalIDForUpdate(ctx context.Context, id uint64) (*domain.Investment, error) {
	if m.GetByInternalIDForUpdateFn != nil {
		return m.GetByInternalIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, inv *domain.Investment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, inv)
	}
	return nil
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64) ([]domain.Investment, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Investment, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) SumAmountByStatus(ctx context.Context, status domain.Status) (float64, error) {
	if m.SumAmountByStatusFn != nil {
		return m.SumAmountByStatusFn(ctx, status)
	}
	return 0, context.Canceled
}
