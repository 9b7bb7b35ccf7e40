package withdrawal

import "context"

type Repository interface {
	Create(ctx context.Context, w *WithdrawalRequest) error
	GetByWithdrawalID(ctx context.Context, withdrawalID string) (*WithdrawalRequest, error)
	GetByWithdrawalIDForUpdate(ctx context.Context, withdrawalID string) (*WithdrawalRequest, error)
	Save(ctx context.Context, w *WithdrawalRequest) error
	// GetPendingByInvestment finds the investment's active request, if any.
	// Used inside the request transaction to enforce one-pending-per-investment.
	GetPendingByInvestment(ctx context.Context, investmentID uint64) (*WithdrawalRequest, error)
	ListByInvestor(ctx context.Context, investorID uint64) ([]WithdrawalRequest, error)
	ListByStatus(ctx context.Context, status Status) ([]WithdrawalRequest, error)
}
