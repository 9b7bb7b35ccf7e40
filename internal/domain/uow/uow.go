package uow

import (
	"context"

	"microfinance-backoffice/internal/domain/investment"
	"microfinance-backoffice/internal/domain/investor"
	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/notification"
	"microfinance-backoffice/internal/domain/repayment"
	"microfinance-backoffice/internal/domain/withdrawal"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Investors     investor.Repository
	Investments   investment.Repository
	Loans         loan.Repository
	Repayments    repayment.Repository
	Withdrawals   withdrawal.Repository
	Notifications notification.Repository
}

// UnitOfWork runs fn atomically: every guard check and status update a
// transition makes commits together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
