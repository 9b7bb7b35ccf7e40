package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/domain/actor"
	domainInvestment "microfinance-backoffice/internal/domain/investment"
	domainInvestor "microfinance-backoffice/internal/domain/investor"
	"microfinance-backoffice/internal/domain/notification"
	"microfinance-backoffice/internal/domain/uow"
	domainWithdrawal "microfinance-backoffice/internal/domain/withdrawal"
	"microfinance-backoffice/internal/finance"
	"microfinance-backoffice/pkg/id"
)

type Usecase struct {
	withdrawals domainWithdrawal.Repository
	investors   domainInvestor.Repository
	uow         uow.UnitOfWork
	pub         notification.Publisher
	now         func() time.Time
}

func NewUsecase(withdrawals domainWithdrawal.Repository, investors domainInvestor.Repository, tx uow.UnitOfWork, pub notification.Publisher) *Usecase {
	return &Usecase{withdrawals: withdrawals, investors: investors, uow: tx, pub: pub, now: func() time.Time { return time.Now().UTC() }}
}

type WithdrawalDTO struct {
	WithdrawalID string     `json:"withdrawal_id"`
	InvestmentID string     `json:"investment_id"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	ProofRef     string     `json:"proof_of_payment_ref,omitempty"`
	AdminComment string     `json:"admin_comment,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}

// Request opens a withdrawal request for a matured, approved investment
// inside the 28th→8th window and flips the investment to
// withdrawal_requested. The duplicate-pending check and both writes happen in
// one transaction, so two concurrent requests cannot both pass the guard.
func (u *Usecase) Request(ctx context.Context, investmentID, investorID string) (*WithdrawalDTO, error) {
	now := u.now()
	var dto *WithdrawalDTO
	var ownerID uint64

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		owner, err := r.Investors.GetByInvestorID(ctx, investorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrNotFound
			}
			return err
		}

		inv, err := r.Investments.GetByInvestmentIDForUpdate(ctx, investmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestment.ErrNotFound
			}
			return err
		}
		if inv.InvestorID != owner.ID {
			return domainInvestment.ErrNotFound
		}

		// Guard order: status, window, maturity, duplicate. Only approved
		// investments are eligible at all.
		if inv.Status != domainInvestment.StatusApproved {
			return domainInvestment.ErrInvalidTransition
		}
		if !finance.IsWithinWindow(now) {
			return domainWithdrawal.ErrOutsideWindow
		}
		if !inv.Matured(now) {
			return domainWithdrawal.ErrNotMatured
		}
		if _, err := r.Withdrawals.GetPendingByInvestment(ctx, inv.ID); err == nil {
			return domainWithdrawal.ErrDuplicatePending
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		w := &domainWithdrawal.WithdrawalRequest{
			WithdrawalID: id.NewID32(),
			InvestmentID: inv.ID,
			InvestorID:   owner.ID,
			Amount:       inv.ProjectedValue(),
			Status:       domainWithdrawal.StatusPending,
		}
		if err := r.Withdrawals.Create(ctx, w); err != nil {
			return err
		}
		if err := domainInvestment.Transition(inv, domainInvestment.ActionRequestWithdrawal, actor.RoleInvestor, now); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		ownerID = owner.ID
		dto = toDTO(w, investmentID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: ownerID,
		Kind:       "withdrawal.requested",
		EntityID:   dto.WithdrawalID,
		Message:    fmt.Sprintf("Withdrawal requested for investment %s", investmentID),
		OccurredAt: now,
	})
	return dto, nil
}

// Pay settles a pending request: request pending → paid, investment
// withdrawal_requested → withdrawn, payout proof stored. One transaction.
func (u *Usecase) Pay(ctx context.Context, withdrawalID string, role actor.Role, proofRef string) (*WithdrawalDTO, error) {
	now := u.now()
	var dto *WithdrawalDTO
	var ownerID uint64

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Withdrawals.GetByWithdrawalIDForUpdate(ctx, withdrawalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainWithdrawal.ErrNotFound
			}
			return err
		}
		if err := domainWithdrawal.MarkPaid(w, role, proofRef, now); err != nil {
			return err
		}

		inv, err := r.Investments.GetByInternalIDForUpdate(ctx, w.InvestmentID)
		if err != nil {
			return err
		}
		if err := domainInvestment.Transition(inv, domainInvestment.ActionPayWithdrawal, role, now); err != nil {
			return err
		}
		inv.WithdrawalProofRef = proofRef

		if err := r.Withdrawals.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		n := &notification.Notification{
			InvestorID: w.InvestorID,
			Message:    fmt.Sprintf("Withdrawal %s paid", w.WithdrawalID),
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		ownerID = w.InvestorID
		dto = toDTO(w, inv.InvestmentID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: ownerID,
		Kind:       "withdrawal.paid",
		EntityID:   withdrawalID,
		Message:    fmt.Sprintf("Withdrawal %s paid", withdrawalID),
		OccurredAt: now,
	})
	return dto, nil
}

// Reject voids a pending request and reverts the investment to approved; it
// stays eligible for a future request.
func (u *Usecase) Reject(ctx context.Context, withdrawalID string, role actor.Role, comment string) (*WithdrawalDTO, error) {
	now := u.now()
	var dto *WithdrawalDTO
	var ownerID uint64

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Withdrawals.GetByWithdrawalIDForUpdate(ctx, withdrawalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainWithdrawal.ErrNotFound
			}
			return err
		}
		if err := domainWithdrawal.MarkRejected(w, role, comment); err != nil {
			return err
		}

		inv, err := r.Investments.GetByInternalIDForUpdate(ctx, w.InvestmentID)
		if err != nil {
			return err
		}
		if err := domainInvestment.Transition(inv, domainInvestment.ActionVoidWithdrawal, role, now); err != nil {
			return err
		}

		if err := r.Withdrawals.Save(ctx, w); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		n := &notification.Notification{
			InvestorID: w.InvestorID,
			Message:    fmt.Sprintf("Withdrawal %s rejected", w.WithdrawalID),
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		ownerID = w.InvestorID
		dto = toDTO(w, inv.InvestmentID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: ownerID,
		Kind:       "withdrawal.rejected",
		EntityID:   withdrawalID,
		Message:    fmt.Sprintf("Withdrawal %s rejected", withdrawalID),
		OccurredAt: now,
	})
	return dto, nil
}

// Confirm records the investor's receipt confirmation: paid → completed.
// No further investment state change.
func (u *Usecase) Confirm(ctx context.Context, withdrawalID, investorID string) (*WithdrawalDTO, error) {
	var dto *WithdrawalDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		owner, err := r.Investors.GetByInvestorID(ctx, investorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrNotFound
			}
			return err
		}
		w, err := r.Withdrawals.GetByWithdrawalIDForUpdate(ctx, withdrawalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainWithdrawal.ErrNotFound
			}
			return err
		}
		if w.InvestorID != owner.ID {
			return domainWithdrawal.ErrNotFound
		}
		if err := domainWithdrawal.Complete(w, actor.RoleInvestor); err != nil {
			return err
		}
		if err := r.Withdrawals.Save(ctx, w); err != nil {
			return err
		}
		dto = toDTO(w, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListByInvestor returns the investor's withdrawal history.
func (u *Usecase) ListByInvestor(ctx context.Context, investorID string) ([]WithdrawalDTO, error) {
	owner, err := u.investors.GetByInvestorID(ctx, investorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainInvestor.ErrNotFound
		}
		return nil, err
	}
	items, err := u.withdrawals.ListByInvestor(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	out := make([]WithdrawalDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i], ""))
	}
	return out, nil
}

// ListByStatus feeds the admin payout queue.
func (u *Usecase) ListByStatus(ctx context.Context, status domainWithdrawal.Status) ([]WithdrawalDTO, error) {
	items, err := u.withdrawals.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]WithdrawalDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i], ""))
	}
	return out, nil
}

func toDTO(w *domainWithdrawal.WithdrawalRequest, investmentPublicID string) *WithdrawalDTO {
	return &WithdrawalDTO{
		WithdrawalID: w.WithdrawalID,
		InvestmentID: investmentPublicID,
		Amount:       w.Amount,
		Status:       string(w.Status),
		ProofRef:     w.ProofOfPaymentRef,
		AdminComment: w.AdminComment,
		CreatedAt:    w.CreatedAt,
		PaidAt:       w.PaidAt,
	}
}
