package repayment

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/domain/actor"
)

var (
	ErrNotFound          = errors.New("repayment not found")
	ErrInvalidTransition = errors.New("invalid repayment transition")
	// ErrAlreadyApproved guards the paid-total invariant: an approved
	// repayment has already been counted toward the loan's total and can
	// never be rejected afterwards.
	ErrAlreadyApproved = errors.New("repayment already approved")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LoanRepayment struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string `gorm:"size:32;uniqueIndex:ux_repayments_public_id" json:"repayment_id"`
	LoanID      uint64 `gorm:"column:loan_id;index:idx_repayments_loan" json:"loan_id"`
	InvestorID  uint64 `gorm:"column:investor_id;index:idx_repayments_investor" json:"investor_id"`

	AmountPaid float64   `gorm:"type:decimal(18,2);column:amount_paid" json:"amount_paid"`
	DatePaid   time.Time `gorm:"column:date_paid" json:"date_paid"`
	ProofRef   string    `gorm:"size:200;column:proof_ref" json:"proof_ref"`
	Method     string    `gorm:"size:50" json:"method,omitempty"`

	Status Status `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LoanRepayment) TableName() string { return "loan_repayments" }

// Approve moves a pending repayment to approved. Admin only.
func Approve(r *LoanRepayment, role actor.Role) error {
	if !role.IsAdmin() || r.Status != StatusPending {
		return ErrInvalidTransition
	}
	r.Status = StatusApproved
	return nil
}

// Reject moves a pending repayment to rejected. Rejecting an approved
// repayment is disallowed outright.
func Reject(r *LoanRepayment, role actor.Role) error {
	if !role.IsAdmin() {
		return ErrInvalidTransition
	}
	if r.Status == StatusApproved {
		return ErrAlreadyApproved
	}
	if r.Status != StatusPending {
		return ErrInvalidTransition
	}
	r.Status = StatusRejected
	return nil
}
