package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/finance"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan transition")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusRepaid   Status = "repaid"
)

// RepaymentTermDays is the fixed loan term: repayment falls due 30 days after
// approval, independent of month length.
const RepaymentTermDays = 30

type LoanApplication struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_public_id" json:"loan_id"`
	InvestorID uint64 `gorm:"column:investor_id;index:idx_loans_investor" json:"investor_id"`

	Amount  float64 `gorm:"type:decimal(18,2)" json:"amount"`
	Purpose string  `gorm:"size:255" json:"purpose"`
	// InterestRate is assigned from the amount-only loan table at submission.
	InterestRate float64 `gorm:"type:decimal(6,2)" json:"interest_rate"`

	Status Status `gorm:"size:20;default:'pending'" json:"status"`

	SubmittedAt      time.Time  `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
	ApprovedAt       *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RepaymentDueDate *time.Time `gorm:"column:repayment_due_date" json:"repayment_due_date,omitempty"`

	Collateral       string `gorm:"size:255" json:"collateral,omitempty"`
	NextOfKinDetails string `gorm:"size:255;column:next_of_kin_details" json:"next_of_kin_details,omitempty"`
	SignedDocsRef    string `gorm:"size:255;column:signed_docs_ref" json:"signed_docs_ref,omitempty"`

	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LoanApplication) TableName() string { return "loan_applications" }

// TotalDue is the single-period repayable amount: principal plus interest.
func (l *LoanApplication) TotalDue() float64 {
	return finance.TotalRepayable(l.Amount, l.InterestRate)
}
