package mysql

import (
	"context"
	"time"

	loanDomain "microfinance-backoffice/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.LoanApplication) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.LoanApplication, error) {
	var out loanDomain.LoanApplication
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.LoanApplication, error) {
	var out loanDomain.LoanApplication
	res := forUpdate(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByInternalID(ctx context.Context, id uint64) (*loanDomain.LoanApplication, error) {
	var out loanDomain.LoanApplication
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByInvestor(ctx context.Context, investorID uint64) ([]loanDomain.LoanApplication, error) {
	var out []loanDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("submitted_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.LoanApplication, error) {
	var out []loanDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context, status loanDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.LoanApplication{}).
		Where("status = ?", status).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) ListApprovedDueBetween(ctx context.Context, start, end time.Time) ([]loanDomain.LoanApplication, error) {
	var out []loanDomain.LoanApplication
	res := r.db.WithContext(ctx).
		Where("status = ? AND repayment_due_date BETWEEN ? AND ?", loanDomain.StatusApproved, start, end).
		Order("repayment_due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}
