package investor

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investor) error
	GetByInvestorID(ctx context.Context, investorID string) (*Investor, error)
	GetByInternalID(ctx context.Context, id uint64) (*Investor, error)
	GetByEmail(ctx context.Context, email string) (*Investor, error)
	GetByConfirmationToken(ctx context.Context, token string) (*Investor, error)
	GetByResetToken(ctx context.Context, token string) (*Investor, error)
	Save(ctx context.Context, inv *Investor) error
	ListPending(ctx context.Context) ([]Investor, error)
	CountApproved(ctx context.Context) (int64, error)
}
