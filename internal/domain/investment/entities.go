package investment

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/finance"
)

var (
	ErrNotFound          = errors.New("investment not found")
	ErrInvalidTransition = errors.New("invalid investment transition")
)

type Status string

const (
	StatusPending             Status = "pending"
	StatusApproved            Status = "approved"
	StatusRejected            Status = "rejected"
	StatusWithdrawalRequested Status = "withdrawal_requested"
	StatusWithdrawn           Status = "withdrawn"
)

type Investment struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID string `gorm:"size:32;uniqueIndex:ux_investments_public_id" json:"investment_id"`
	InvestorID   uint64 `gorm:"column:investor_id;index:idx_investments_investor" json:"investor_id"`

	Amount         float64 `gorm:"type:decimal(18,2)" json:"amount"`
	DurationMonths int     `gorm:"column:duration_months" json:"duration_months"`
	// Rate is fixed from the bracket table at creation and never recomputed.
	Rate float64 `gorm:"type:decimal(6,2)" json:"rate"`

	Status       Status `gorm:"size:32;default:'pending'" json:"status"`
	IsAuthorized bool   `gorm:"column:is_authorized;default:false" json:"is_authorized"`

	ProofOfPaymentRef string `gorm:"size:200;column:proof_of_payment_ref" json:"proof_of_payment_ref"`

	WithdrawalProofRef string     `gorm:"size:200;column:withdrawal_proof_ref" json:"withdrawal_proof_ref,omitempty"`
	WithdrawnAt        *time.Time `gorm:"column:withdrawn_at" json:"withdrawn_at,omitempty"`

	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	ApprovedAt *time.Time     `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Investment) TableName() string { return "investments" }

// StartDate is when accrual begins: approval time, or creation until approved.
func (i *Investment) StartDate() time.Time {
	if i.ApprovedAt != nil {
		return *i.ApprovedAt
	}
	return i.CreatedAt
}

// MaturityDate is the start date plus the contracted duration.
func (i *Investment) MaturityDate() time.Time {
	return i.StartDate().AddDate(0, i.DurationMonths, 0)
}

// Matured reports whether the contracted duration has elapsed.
func (i *Investment) Matured(now time.Time) bool {
	return !now.Before(i.MaturityDate())
}

// ElapsedMonths counts whole months since the start date, minimum 1.
func (i *Investment) ElapsedMonths(now time.Time) int {
	months := 0
	cursor := i.StartDate()
	for !cursor.AddDate(0, 1, 0).After(now) {
		cursor = cursor.AddDate(0, 1, 0)
		months++
	}
	if months < 1 {
		return 1
	}
	return months
}

// ProjectedValue is the contracted value at maturity.
func (i *Investment) ProjectedValue() float64 {
	return finance.ProjectedValue(i.Amount, i.Rate, i.DurationMonths)
}

// CurrentValue is the accrued value as of now, capped at maturity.
func (i *Investment) CurrentValue(now time.Time) float64 {
	return finance.CurrentValue(i.Amount, i.Rate, i.DurationMonths, i.ElapsedMonths(now))
}

// ExpectedWithdrawalDate is the maturity date snapped into the 28th→8th
// withdrawal window. Nil until the investment is approved.
func (i *Investment) ExpectedWithdrawalDate() *time.Time {
	if i.ApprovedAt == nil {
		return nil
	}
	d := finance.WithdrawableDate(i.ApprovedAt.AddDate(0, i.DurationMonths, 0))
	return &d
}
