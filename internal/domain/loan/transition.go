package loan

import (
	"time"

	"microfinance-backoffice/internal/domain/actor"
)

type Action string

const (
	// ActionApprove is admin-only and additionally gated on the 28th→8th
	// window by the usecase before the table is consulted.
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	// ActionMarkRepaid fires once approved repayments cover principal plus
	// interest. Idempotent via SettleIfCovered.
	ActionMarkRepaid Action = "mark_repaid"
)

type rule struct {
	from    Status
	to      Status
	allowed func(actor.Role) bool
}

var rules = map[Action]rule{
	ActionApprove:    {from: StatusPending, to: StatusApproved, allowed: actor.Role.IsAdmin},
	ActionReject:     {from: StatusPending, to: StatusRejected, allowed: actor.Role.IsAdmin},
	ActionMarkRepaid: {from: StatusApproved, to: StatusRepaid, allowed: actor.Role.IsAdmin},
}

// Transition applies action to the loan. Approval stamps approved_at and the
// fixed 30-day repayment due date exactly once.
func Transition(l *LoanApplication, action Action, role actor.Role, now time.Time) error {
	r, ok := rules[action]
	if !ok || l.Status != r.from || !r.allowed(role) {
		return ErrInvalidTransition
	}
	l.Status = r.to
	if action == ActionApprove {
		at := now.UTC()
		due := at.Add(RepaymentTermDays * 24 * time.Hour)
		l.ApprovedAt = &at
		l.RepaymentDueDate = &due
	}
	return nil
}

// SettleIfCovered flips an approved loan to repaid once totalPaid covers
// principal plus interest. Calling it again after the loan is repaid is a
// no-op, and covering less than the total due never transitions.
func SettleIfCovered(l *LoanApplication, totalPaid float64, role actor.Role, now time.Time) (bool, error) {
	if l.Status == StatusRepaid {
		return false, nil
	}
	if totalPaid < l.TotalDue() {
		return false, nil
	}
	if err := Transition(l, ActionMarkRepaid, role, now); err != nil {
		return false, err
	}
	return true, nil
}
