// Package dashboard aggregates due-this-period figures for the admin
// overview. It uses the 8th→7th reporting window, which is a different
// definition from the 28th→8th eligibility window and must stay that way.
package dashboard

import (
	"context"
	"time"

	domainInvestment "microfinance-backoffice/internal/domain/investment"
	domainInvestor "microfinance-backoffice/internal/domain/investor"
	domainLoan "microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/finance"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	investors   domainInvestor.Repository
	investments domainInvestment.Repository
	loans       domainLoan.Repository
	now         func() time.Time
}

func NewUsecase(investors domainInvestor.Repository, investments domainInvestment.Repository, loans domainLoan.Repository) *Usecase {
	return &Usecase{investors: investors, investments: investments, loans: loans, now: func() time.Time { return time.Now().UTC() }}
}

type Summary struct {
	ApprovedInvestors int64   `json:"approved_investors"`
	ApprovedFunds     float64 `json:"approved_funds"`
	ActiveLoans       int64   `json:"active_loans"`
	PendingLoans      int64   `json:"pending_loans"`
	// LoanRepayableDue sums principal plus interest over approved loans whose
	// repayment due date falls inside the current reporting period.
	LoanRepayableDue float64 `json:"loan_repayments_due_this_period"`
	// InvestmentPayoutsDue sums projected values of approved investments
	// whose expected withdrawal date falls inside the period.
	InvestmentPayoutsDue float64   `json:"investment_payouts_due_this_period"`
	PeriodStart          time.Time `json:"period_start"`
	PeriodEnd            time.Time `json:"period_end"`
}

func (u *Usecase) Summary(ctx context.Context) (*Summary, error) {
	now := u.now()
	start, end := finance.DuePeriodWindow(now)

	approvedInvestors, err := u.investors.CountApproved(ctx)
	if err != nil {
		return nil, err
	}
	approvedFunds, err := u.investments.SumAmountByStatus(ctx, domainInvestment.StatusApproved)
	if err != nil {
		return nil, err
	}
	activeLoans, err := u.loans.CountByStatus(ctx, domainLoan.StatusApproved)
	if err != nil {
		return nil, err
	}
	pendingLoans, err := u.loans.CountByStatus(ctx, domainLoan.StatusPending)
	if err != nil {
		return nil, err
	}

	loansDue, err := u.loans.ListApprovedDueBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	repayable := decimal.Zero
	for i := range loansDue {
		repayable = repayable.Add(decimal.NewFromFloat(loansDue[i].TotalDue()))
	}

	invested, err := u.investments.ListByStatus(ctx, domainInvestment.StatusApproved)
	if err != nil {
		return nil, err
	}
	payouts := decimal.Zero
	for i := range invested {
		ewd := invested[i].ExpectedWithdrawalDate()
		if ewd == nil || ewd.Before(start) || ewd.After(end) {
			continue
		}
		payouts = payouts.Add(decimal.NewFromFloat(invested[i].ProjectedValue()))
	}

	repayableF, _ := repayable.Round(2).Float64()
	payoutsF, _ := payouts.Round(2).Float64()
	return &Summary{
		ApprovedInvestors:    approvedInvestors,
		ApprovedFunds:        approvedFunds,
		ActiveLoans:          activeLoans,
		PendingLoans:         pendingLoans,
		LoanRepayableDue:     repayableF,
		InvestmentPayoutsDue: payoutsF,
		PeriodStart:          start,
		PeriodEnd:            end,
	}, nil
}
