package mysql

import (
	"context"

	repaymentDomain "microfinance-backoffice/internal/domain/repayment"

	"gorm.io/gorm"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, rep *repaymentDomain.LoanRepayment) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *RepaymentRepository) Save(ctx context.Context, rep *repaymentDomain.LoanRepayment) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *RepaymentRepository) GetByRepaymentID(ctx context.Context, repaymentID string) (*repaymentDomain.LoanRepayment, error) {
	var out repaymentDomain.LoanRepayment
	res := r.db.WithContext(ctx).Where("repayment_id = ?", repaymentID).First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) GetByRepaymentIDForUpdate(ctx context.Context, repaymentID string) (*repaymentDomain.LoanRepayment, error) {
	var out repaymentDomain.LoanRepayment
	res := forUpdate(r.db.WithContext(ctx)).Where("repayment_id = ?", repaymentID).First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]repaymentDomain.LoanRepayment, error) {
	var out []repaymentDomain.LoanRepayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("date_paid ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) ListByInvestor(ctx context.Context, investorID uint64) ([]repaymentDomain.LoanRepayment, error) {
	var out []repaymentDomain.LoanRepayment
	res := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("date_paid DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) ListByStatus(ctx context.Context, status repaymentDomain.Status) ([]repaymentDomain.LoanRepayment, error) {
	var out []repaymentDomain.LoanRepayment
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("date_paid ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) SumApprovedByLoan(ctx context.Context, loanID uint64) (float64, error) {
	var total float64
	res := r.db.WithContext(ctx).
		Model(&repaymentDomain.LoanRepayment{}).
		Where("loan_id = ? AND status = ?", loanID, repaymentDomain.StatusApproved).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&total)
	return total, res.Error
}
