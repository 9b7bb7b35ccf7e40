package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	GetByInvestmentID(ctx context.Context, investmentID string) (*Investment, error)
	// GetByInvestmentIDForUpdate locks the row for the enclosing transaction.
	GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*Investment, error)
	GetByInternalIDForUpdate(ctx context.Context, id uint64) (*Investment, error)
	Save(ctx context.Context, inv *Investment) error
	ListByInvestor(ctx context.Context, investorID uint64) ([]Investment, error)
	ListByStatus(ctx context.Context, status Status) ([]Investment, error)
	SumAmountByStatus(ctx context.Context, status Status) (float64, error)
}
