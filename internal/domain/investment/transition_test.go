package investment

import (
	"errors"
	"testing"
	"time"

	"microfinance-backoffice/internal/domain/actor"
)

func pendingInvestment() *Investment {
	return &Investment{ID: 1, InvestmentID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Amount: 150, DurationMonths: 6, Rate: 12, Status: StatusPending}
}

func TestTransition_ApproveSetsApprovedAtOnce(t *testing.T) {
	inv := pendingInvestment()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	if err := Transition(inv, ActionApprove, actor.RoleAdmin, now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if inv.Status != StatusApproved || !inv.IsAuthorized {
		t.Fatalf("after approve: status=%s authorized=%v", inv.Status, inv.IsAuthorized)
	}
	if inv.ApprovedAt == nil || !inv.ApprovedAt.Equal(now) {
		t.Fatalf("approved_at = %v, want %v", inv.ApprovedAt, now)
	}

	// Second approval must fail and must not touch approved_at.
	if err := Transition(inv, ActionApprove, actor.RoleAdmin, now.Add(time.Hour)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double approve: err = %v, want ErrInvalidTransition", err)
	}
	if !inv.ApprovedAt.Equal(now) {
		t.Fatal("approved_at changed on failed transition")
	}
}

func TestTransition_RoleGuards(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name   string
		status Status
		action Action
		role   actor.Role
		wantOK bool
	}{
		{"investor cannot approve", StatusPending, ActionApprove, actor.RoleInvestor, false},
		{"admin approves", StatusPending, ActionApprove, actor.RoleAdmin, true},
		{"super-admin approves", StatusPending, ActionApprove, actor.RoleSuperAdmin, true},
		{"admin cannot reapprove", StatusRejected, ActionReapprove, actor.RoleAdmin, false},
		{"super-admin reapproves", StatusRejected, ActionReapprove, actor.RoleSuperAdmin, true},
		{"admin cannot request withdrawal", StatusApproved, ActionRequestWithdrawal, actor.RoleAdmin, false},
		{"investor requests withdrawal", StatusApproved, ActionRequestWithdrawal, actor.RoleInvestor, true},
		{"investor cannot pay withdrawal", StatusWithdrawalRequested, ActionPayWithdrawal, actor.RoleInvestor, false},
		{"admin pays withdrawal", StatusWithdrawalRequested, ActionPayWithdrawal, actor.RoleAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := pendingInvestment()
			inv.Status = tt.status
			err := Transition(inv, tt.action, tt.role, now)
			if tt.wantOK && err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if !tt.wantOK && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestTransition_StatusGuards(t *testing.T) {
	now := time.Now().UTC()
	// request-withdrawal only from approved
	inv := pendingInvestment()
	if err := Transition(inv, ActionRequestWithdrawal, actor.RoleInvestor, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("request on pending: err = %v", err)
	}
	// void reverts to approved, keeping eligibility
	inv.Status = StatusWithdrawalRequested
	if err := Transition(inv, ActionVoidWithdrawal, actor.RoleAdmin, now); err != nil {
		t.Fatalf("void: %v", err)
	}
	if inv.Status != StatusApproved {
		t.Fatalf("after void: status = %s, want approved", inv.Status)
	}
	// withdrawn is terminal
	inv.Status = StatusWithdrawn
	for _, a := range []Action{ActionApprove, ActionReject, ActionRequestWithdrawal, ActionPayWithdrawal, ActionVoidWithdrawal} {
		if err := Transition(inv, a, actor.RoleSuperAdmin, now); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("action %s on withdrawn: err = %v", a, err)
		}
	}
}

func TestTransition_PayRecordsWithdrawal(t *testing.T) {
	inv := pendingInvestment()
	inv.Status = StatusWithdrawalRequested
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	if err := Transition(inv, ActionPayWithdrawal, actor.RoleAdmin, now); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if inv.Status != StatusWithdrawn || inv.WithdrawnAt == nil || !inv.WithdrawnAt.Equal(now) {
		t.Fatalf("after pay: status=%s withdrawn_at=%v", inv.Status, inv.WithdrawnAt)
	}
}
