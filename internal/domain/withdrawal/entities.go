package withdrawal

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/domain/actor"
)

var (
	ErrNotFound          = errors.New("withdrawal request not found")
	ErrInvalidTransition = errors.New("invalid withdrawal transition")
	// ErrDuplicatePending means the investment already has a pending request.
	// At most one pending request may exist per investment; the check runs
	// inside the same transaction as the insert.
	ErrDuplicatePending = errors.New("pending withdrawal already exists for investment")
	// ErrOutsideWindow means today is not inside the 28th→8th banking cycle.
	ErrOutsideWindow = errors.New("withdrawals only allowed from the 28th to the 8th")
	// ErrNotMatured means the investment's contracted duration has not elapsed.
	ErrNotMatured = errors.New("investment has not reached maturity")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

type WithdrawalRequest struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	WithdrawalID string `gorm:"size:32;uniqueIndex:ux_withdrawals_public_id" json:"withdrawal_id"`
	InvestmentID uint64 `gorm:"column:investment_id;index:idx_withdrawals_investment" json:"investment_id"`
	InvestorID   uint64 `gorm:"column:investor_id;index:idx_withdrawals_investor" json:"investor_id"`

	Amount float64 `gorm:"type:decimal(18,2)" json:"amount"`
	Status Status  `gorm:"size:20;default:'pending'" json:"status"`

	ProofOfPaymentRef string     `gorm:"size:200;column:proof_of_payment_ref" json:"proof_of_payment_ref,omitempty"`
	AdminComment      string     `gorm:"size:255;column:admin_comment" json:"admin_comment,omitempty"`
	PaidAt            *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WithdrawalRequest) TableName() string { return "withdrawal_requests" }

// MarkPaid moves a pending request to paid and records the payout proof.
// The caller flips the parent investment to withdrawn in the same transaction.
func MarkPaid(w *WithdrawalRequest, role actor.Role, proofRef string, now time.Time) error {
	if !role.IsAdmin() || w.Status != StatusPending {
		return ErrInvalidTransition
	}
	at := now.UTC()
	w.Status = StatusPaid
	w.ProofOfPaymentRef = proofRef
	w.PaidAt = &at
	return nil
}

// MarkRejected voids a pending request. The caller reverts the parent
// investment to approved in the same transaction; it remains eligible.
func MarkRejected(w *WithdrawalRequest, role actor.Role, comment string) error {
	if !role.IsAdmin() || w.Status != StatusPending {
		return ErrInvalidTransition
	}
	w.Status = StatusRejected
	w.AdminComment = comment
	return nil
}

// Complete records the investor's confirmation of receipt. Only valid from
// paid; the parent investment stays withdrawn.
func Complete(w *WithdrawalRequest, role actor.Role) error {
	if role != actor.RoleInvestor || w.Status != StatusPaid {
		return ErrInvalidTransition
	}
	w.Status = StatusCompleted
	return nil
}
