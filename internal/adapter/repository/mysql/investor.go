package mysql

import (
	"context"

	investorDomain "microfinance-backoffice/internal/domain/investor"

	"gorm.io/gorm"
)

type InvestorRepository struct{ db *gorm.DB }

func NewInvestorRepository(db *gorm.DB) *InvestorRepository { return &InvestorRepository{db: db} }

func (r *InvestorRepository) Create(ctx context.Context, inv *investorDomain.Investor) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestorRepository) Save(ctx context.Context, inv *investorDomain.Investor) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvestorRepository) GetByInvestorID(ctx context.Context, investorID string) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).Where("investor_id = ?", investorID).First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) GetByInternalID(ctx context.Context, id uint64) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) GetByEmail(ctx context.Context, email string) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) GetByConfirmationToken(ctx context.Context, token string) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).
		Where("confirmation_token = ? AND confirmation_token <> ''", token).
		First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) GetByResetToken(ctx context.Context, token string) (*investorDomain.Investor, error) {
	var out investorDomain.Investor
	res := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token <> ''", token).
		First(&out)
	return &out, res.Error
}

func (r *InvestorRepository) ListPending(ctx context.Context) ([]investorDomain.Investor, error) {
	var out []investorDomain.Investor
	res := r.db.WithContext(ctx).
		Where("email_confirmed = ? AND is_approved = ? AND is_rejected = ?", true, false, false).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *InvestorRepository) CountApproved(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&investorDomain.Investor{}).
		Where("is_approved = ?", true).
		Count(&n)
	return n, res.Error
}
