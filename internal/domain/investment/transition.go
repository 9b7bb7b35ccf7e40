package investment

import (
	"time"

	"microfinance-backoffice/internal/domain/actor"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	// ActionReapprove moves a rejected investment back to approved.
	// Super-admin only.
	ActionReapprove Action = "reapprove"
	// ActionRequestWithdrawal flips an approved investment to
	// withdrawal_requested. Window, maturity and duplicate-request guards
	// live in the withdrawal usecase, which owns the paired insert.
	ActionRequestWithdrawal Action = "request_withdrawal"
	// ActionPayWithdrawal marks the payout as made (investment withdrawn).
	ActionPayWithdrawal Action = "pay_withdrawal"
	// ActionVoidWithdrawal reverts withdrawal_requested to approved when the
	// admin rejects the request; the investment stays eligible.
	ActionVoidWithdrawal Action = "void_withdrawal"
)

type rule struct {
	from    Status
	to      Status
	allowed func(actor.Role) bool
}

// The single transition table. Every status change anywhere in the system
// goes through Transition; no caller assigns Status directly.
var rules = map[Action]rule{
	ActionApprove:           {from: StatusPending, to: StatusApproved, allowed: actor.Role.IsAdmin},
	ActionReject:            {from: StatusPending, to: StatusRejected, allowed: actor.Role.IsAdmin},
	ActionReapprove:         {from: StatusRejected, to: StatusApproved, allowed: func(r actor.Role) bool { return r == actor.RoleSuperAdmin }},
	ActionRequestWithdrawal: {from: StatusApproved, to: StatusWithdrawalRequested, allowed: func(r actor.Role) bool { return r == actor.RoleInvestor }},
	ActionPayWithdrawal:     {from: StatusWithdrawalRequested, to: StatusWithdrawn, allowed: actor.Role.IsAdmin},
	ActionVoidWithdrawal:    {from: StatusWithdrawalRequested, to: StatusApproved, allowed: actor.Role.IsAdmin},
}

// Transition applies action to the investment, mutating status and the
// once-only timestamps. Returns ErrInvalidTransition when the current status
// or the actor role does not permit the action.
func Transition(inv *Investment, action Action, role actor.Role, now time.Time) error {
	r, ok := rules[action]
	if !ok || inv.Status != r.from || !r.allowed(role) {
		return ErrInvalidTransition
	}
	inv.Status = r.to
	switch action {
	case ActionApprove:
		// approved_at is set exactly once, on first approval.
		at := now.UTC()
		inv.ApprovedAt = &at
		inv.IsAuthorized = true
	case ActionReapprove:
		inv.IsAuthorized = true
	case ActionPayWithdrawal:
		at := now.UTC()
		inv.WithdrawnAt = &at
	}
	return nil
}
