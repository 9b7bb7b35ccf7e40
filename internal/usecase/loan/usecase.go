package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/domain/actor"
	domainInvestor "microfinance-backoffice/internal/domain/investor"
	domainLoan "microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/notification"
	domainRepayment "microfinance-backoffice/internal/domain/repayment"
	"microfinance-backoffice/internal/domain/uow"
	"microfinance-backoffice/internal/finance"
	"microfinance-backoffice/pkg/id"
)

// ErrOutsideWindow gates loan approval on the 28th→8th banking cycle.
var ErrOutsideWindow = errors.New("loan approvals only allowed from the 28th to the 8th")

type Usecase struct {
	loans      domainLoan.Repository
	repayments domainRepayment.Repository
	investors  domainInvestor.Repository
	uow        uow.UnitOfWork
	pub        notification.Publisher
	now        func() time.Time
}

func NewUsecase(loans domainLoan.Repository, repayments domainRepayment.Repository, investors domainInvestor.Repository, tx uow.UnitOfWork, pub notification.Publisher) *Usecase {
	return &Usecase{loans: loans, repayments: repayments, investors: investors, uow: tx, pub: pub, now: func() time.Time { return time.Now().UTC() }}
}

// Submit opens a pending application. The interest rate comes from the
// amount-only loan table and is fixed at submission.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*LoanDTO, error) {
	rate, err := finance.LoanRate(in.Amount)
	if err != nil {
		return nil, err
	}

	var dto *LoanDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		owner, err := r.Investors.GetByInvestorID(ctx, in.InvestorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrNotFound
			}
			return err
		}
		if !owner.Eligible() {
			return domainInvestor.ErrNotEligible
		}

		l := &domainLoan.LoanApplication{
			LoanID:       id.NewID32(),
			InvestorID:   owner.ID,
			Amount:       in.Amount,
			Purpose:      in.Purpose,
			InterestRate: rate,
			Status:       domainLoan.StatusPending,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l, in.InvestorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Approve moves pending → approved. Only permitted inside the 28th→8th
// window; stamps approved_at and the fixed 30-day repayment due date.
func (u *Usecase) Approve(ctx context.Context, loanID string, role actor.Role) (*LoanDTO, error) {
	now := u.now()
	if !finance.IsWithinWindow(now) {
		return nil, ErrOutsideWindow
	}
	return u.decide(ctx, loanID, domainLoan.ActionApprove, role, "Loan %s approved")
}

// Reject moves pending → rejected. Not window-gated.
func (u *Usecase) Reject(ctx context.Context, loanID string, role actor.Role) (*LoanDTO, error) {
	return u.decide(ctx, loanID, domainLoan.ActionReject, role, "Loan %s rejected")
}

func (u *Usecase) decide(ctx context.Context, loanID string, action domainLoan.Action, role actor.Role, msgFormat string) (*LoanDTO, error) {
	now := u.now()
	var dto *LoanDTO
	var ownerID uint64

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainLoan.ErrNotFound
			}
			return err
		}
		if err := domainLoan.Transition(l, action, role, now); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		n := &notification.Notification{
			InvestorID: l.InvestorID,
			Message:    fmt.Sprintf(msgFormat, l.LoanID),
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		ownerID = l.InvestorID
		dto = toDTO(l, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: ownerID,
		Kind:       "loan." + string(action),
		EntityID:   loanID,
		Message:    fmt.Sprintf(msgFormat, loanID),
		OccurredAt: now,
	})
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l, ""), nil
}

func (u *Usecase) ListByInvestor(ctx context.Context, investorID string) ([]LoanDTO, error) {
	owner, err := u.investors.GetByInvestorID(ctx, investorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainInvestor.ErrNotFound
		}
		return nil, err
	}
	items, err := u.loans.ListByInvestor(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i], investorID))
	}
	return out, nil
}

func (u *Usecase) ListByStatus(ctx context.Context, status domainLoan.Status) ([]LoanDTO, error) {
	items, err := u.loans.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i], ""))
	}
	return out, nil
}

// SubmitRepayment records an investor repayment against an approved loan.
// The amount is fixed server-side at the loan's total due; the loan status
// does not change until an admin approves the repayment.
func (u *Usecase) SubmitRepayment(ctx context.Context, in SubmitRepaymentInput) (*RepaymentDTO, error) {
	now := u.now()
	var dto *RepaymentDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		owner, err := r.Investors.GetByInvestorID(ctx, in.InvestorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrNotFound
			}
			return err
		}
		l, err := r.Loans.GetByLoanID(ctx, in.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainLoan.ErrNotFound
			}
			return err
		}
		if l.InvestorID != owner.ID {
			return domainLoan.ErrNotFound
		}
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrInvalidTransition
		}

		rep := &domainRepayment.LoanRepayment{
			RepaymentID: id.NewID32(),
			LoanID:      l.ID,
			InvestorID:  owner.ID,
			AmountPaid:  l.TotalDue(),
			DatePaid:    now,
			ProofRef:    in.ProofRef,
			Method:      in.Method,
			Status:      domainRepayment.StatusPending,
		}
		if err := r.Repayments.Create(ctx, rep); err != nil {
			return err
		}
		dto = repaymentDTO(rep, in.LoanID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ApproveRepayments approves a batch of pending repayments, then recomputes
// each affected loan's approved total and settles it when principal plus
// interest is covered. The settle check is idempotent: already-repaid loans
// are reported as-is with no further effect.
func (u *Usecase) ApproveRepayments(ctx context.Context, repaymentIDs []string, role actor.Role) (*ApproveRepaymentsResult, error) {
	if len(repaymentIDs) == 0 {
		return nil, domainRepayment.ErrInvalidTransition
	}
	now := u.now()
	res := &ApproveRepaymentsResult{LoanUpdates: map[string]LoanUpdate{}}
	var settled []string
	var settledOwners []uint64

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loansToCheck := map[uint64]bool{}

		for _, rid := range repaymentIDs {
			rep, err := r.Repayments.GetByRepaymentIDForUpdate(ctx, rid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // skip unknown ids, approve the rest
				}
				return err
			}
			if rep.Status != domainRepayment.StatusPending {
				continue
			}
			if err := domainRepayment.Approve(rep, role); err != nil {
				return err
			}
			if err := r.Repayments.Save(ctx, rep); err != nil {
				return err
			}
			res.ApprovedIDs = append(res.ApprovedIDs, rid)
			loansToCheck[rep.LoanID] = true
		}

		for loanID := range loansToCheck {
			l, err := r.Loans.GetByInternalID(ctx, loanID)
			if err != nil {
				return err
			}
			totalPaid, err := r.Repayments.SumApprovedByLoan(ctx, loanID)
			if err != nil {
				return err
			}
			changed, err := domainLoan.SettleIfCovered(l, totalPaid, role, now)
			if err != nil {
				return err
			}
			if changed {
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
				n := &notification.Notification{
					InvestorID: l.InvestorID,
					Message:    fmt.Sprintf("Loan %s fully repaid", l.LoanID),
				}
				if err := r.Notifications.Create(ctx, n); err != nil {
					return err
				}
				settled = append(settled, l.LoanID)
				settledOwners = append(settledOwners, l.InvestorID)
			}
			res.LoanUpdates[l.LoanID] = LoanUpdate{TotalPaid: totalPaid, Status: string(l.Status)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, loanID := range settled {
		notification.BestEffort(ctx, u.pub, notification.Event{
			InvestorID: settledOwners[i],
			Kind:       "loan.repaid",
			EntityID:   loanID,
			Message:    fmt.Sprintf("Loan %s fully repaid", loanID),
			OccurredAt: now,
		})
	}
	return res, nil
}

// RejectRepayment voids a pending repayment. Approved repayments can never
// be rejected; that would corrupt the paid-total invariant.
func (u *Usecase) RejectRepayment(ctx context.Context, repaymentID string, role actor.Role) (*RepaymentDTO, error) {
	var dto *RepaymentDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rep, err := r.Repayments.GetByRepaymentIDForUpdate(ctx, repaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepayment.ErrNotFound
			}
			return err
		}
		if err := domainRepayment.Reject(rep, role); err != nil {
			return err
		}
		if err := r.Repayments.Save(ctx, rep); err != nil {
			return err
		}
		dto = repaymentDTO(rep, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListPendingRepayments feeds the admin approval queue.
func (u *Usecase) ListPendingRepayments(ctx context.Context) ([]RepaymentDTO, error) {
	items, err := u.repayments.ListByStatus(ctx, domainRepayment.StatusPending)
	if err != nil {
		return nil, err
	}
	out := make([]RepaymentDTO, 0, len(items))
	for i := range items {
		out = append(out, *repaymentDTO(&items[i], ""))
	}
	return out, nil
}

// ListRepaymentsByInvestor returns the investor's repayment history.
func (u *Usecase) ListRepaymentsByInvestor(ctx context.Context, investorID string) ([]RepaymentDTO, error) {
	owner, err := u.investors.GetByInvestorID(ctx, investorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainInvestor.ErrNotFound
		}
		return nil, err
	}
	items, err := u.repayments.ListByInvestor(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	out := make([]RepaymentDTO, 0, len(items))
	for i := range items {
		out = append(out, *repaymentDTO(&items[i], ""))
	}
	return out, nil
}

func toDTO(l *domainLoan.LoanApplication, investorPublicID string) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		InvestorID:       investorPublicID,
		Amount:           l.Amount,
		Purpose:          l.Purpose,
		InterestRate:     l.InterestRate,
		TotalRepayable:   l.TotalDue(),
		Status:           string(l.Status),
		SubmittedAt:      l.SubmittedAt,
		ApprovedAt:       l.ApprovedAt,
		RepaymentDueDate: l.RepaymentDueDate,
	}
}

func repaymentDTO(rep *domainRepayment.LoanRepayment, loanPublicID string) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID: rep.RepaymentID,
		LoanID:      loanPublicID,
		AmountPaid:  rep.AmountPaid,
		DatePaid:    rep.DatePaid,
		Status:      string(rep.Status),
		ProofRef:    rep.ProofRef,
	}
}
