package investment

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
	"microfinance-backoffice/internal/finance"
	"microfinance-backoffice/pkg/id"
)

type Usecase struct {
	investments domainInvestment.Repository
	investors   domainInvestor.Repository
	uow         uow.UnitOfWork
	pub         notification.Publisher
	now         func() time.Time
}

func NewUsecase(investments domainInvestment.Repository, investors domainInvestor.Repository, tx uow.UnitOfWork, pub notification.Publisher) *Usecase {
	return &Usecase{investments: investments, investors: investors, uow: tx, pub: pub, now: func() time.Time { return time.Now().UTC() }}
}

// Create opens a pending investment. The rate is fixed from the bracket
// table here and never recomputed.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*InvestmentDTO, error) {
	if in.Amount <= 0 || in.DurationMonths <= 0 || in.DurationMonths > 12 {
		return nil, finance.ErrInvalidInput
	}
	rate, err := finance.InvestmentRate(in.Amount, in.DurationMonths)
	if err != nil {
		return nil, err
	}

	var dto *InvestmentDTO
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

		inv := &domainInvestment.Investment{
			InvestmentID:      id.NewID32(),
			InvestorID:        owner.ID,
			Amount:            in.Amount,
			DurationMonths:    in.DurationMonths,
			Rate:              rate,
			Status:            domainInvestment.StatusPending,
			ProofOfPaymentRef: in.ProofRef,
		}
		if err := r.Investments.Create(ctx, inv); err != nil {
			return err
		}
		dto = u.toDTO(inv, in.InvestorID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Approve moves pending → approved, stamping approved_at exactly once.
func (u *Usecase) Approve(ctx context.Context, investmentID string, role actor.Role) (*InvestmentDTO, error) {
	return u.decide(ctx, investmentID, domainInvestment.ActionApprove, role,
		"Investment %s approved")
}

// Reject moves pending → rejected.
func (u *Usecase) Reject(ctx context.Context, investmentID string, role actor.Role) (*InvestmentDTO, error) {
	return u.decide(ctx, investmentID, domainInvestment.ActionReject, role,
		"Investment %s rejected")
}

// Reapprove moves rejected → approved. Super-admin override only.
func (u *Usecase) Reapprove(ctx context.Context, investmentID string, role actor.Role) (*InvestmentDTO, error) {
	return u.decide(ctx, investmentID, domainInvestment.ActionReapprove, role,
		"Investment %s approved by super-admin")
}

func (u *Usecase) decide(ctx context.Context, investmentID string, action domainInvestment.Action, role actor.Role, msgFormat string) (*InvestmentDTO, error) {
	now := u.now()
	var dto *InvestmentDTO
	var investorID uint64

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investments.GetByInvestmentIDForUpdate(ctx, investmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestment.ErrNotFound
			}
			return err
		}
		if err := domainInvestment.Transition(inv, action, role, now); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		n := &notification.Notification{
			InvestorID: inv.InvestorID,
			Message:    fmt.Sprintf(msgFormat, inv.InvestmentID),
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		investorID = inv.InvestorID
		dto = u.toDTO(inv, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: investorID,
		Kind:       "investment." + string(action),
		EntityID:   investmentID,
		Message:    fmt.Sprintf(msgFormat, investmentID),
		OccurredAt: now,
	})
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, investmentID string) (*InvestmentDTO, error) {
	inv, err := u.investments.GetByInvestmentID(ctx, investmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainInvestment.ErrNotFound
		}
		return nil, err
	}
	return u.toDTO(inv, ""), nil
}

// ListByInvestor returns the investor's history with withdrawal eligibility
// computed against the current window.
func (u *Usecase) ListByInvestor(ctx context.Context, investorID string) ([]InvestmentDTO, error) {
	owner, err := u.investors.GetByInvestorID(ctx, investorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainInvestor.ErrNotFound
		}
		return nil, err
	}
	items, err := u.investments.ListByInvestor(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	out := make([]InvestmentDTO, 0, len(items))
	for i := range items {
		out = append(out, *u.toDTO(&items[i], investorID))
	}
	return out, nil
}

// ListPending feeds the admin approval queue.
func (u *Usecase) ListPending(ctx context.Context) ([]InvestmentDTO, error) {
	items, err := u.investments.ListByStatus(ctx, domainInvestment.StatusPending)
	if err != nil {
		return nil, err
	}
	out := make([]InvestmentDTO, 0, len(items))
	for i := range items {
		out = append(out, *u.toDTO(&items[i], ""))
	}
	return out, nil
}

func (u *Usecase) toDTO(inv *domainInvestment.Investment, investorPublicID string) *InvestmentDTO {
	now := u.now()
	canWithdraw := inv.Status == domainInvestment.StatusApproved &&
		inv.Matured(now) &&
		finance.IsWithinWindow(now)
	return &InvestmentDTO{
		InvestmentID:           inv.InvestmentID,
		InvestorID:             investorPublicID,
		Amount:                 inv.Amount,
		DurationMonths:         inv.DurationMonths,
		Rate:                   inv.Rate,
		Status:                 string(inv.Status),
		ExpectedReturn:         inv.ProjectedValue(),
		CurrentValue:           inv.CurrentValue(now),
		ExpectedWithdrawalDate: inv.ExpectedWithdrawalDate(),
		CanWithdrawNow:         canWithdraw,
		ProofRef:               inv.ProofOfPaymentRef,
		CreatedAt:              inv.CreatedAt,
		ApprovedAt:             inv.ApprovedAt,
	}
}
