package mysql

import (
	"context"

	withdrawalDomain "microfinance-backoffice/internal/domain/withdrawal"

	"gorm.io/gorm"
)

type WithdrawalRepository struct{ db *gorm.DB }

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *withdrawalDomain.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WithdrawalRepository) Save(ctx context.Context, w *withdrawalDomain.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WithdrawalRepository) GetByWithdrawalID(ctx context.Context, withdrawalID string) (*withdrawalDomain.WithdrawalRequest, error) {
	var out withdrawalDomain.WithdrawalRequest
	res := r.db.WithContext(ctx).Where("withdrawal_id = ?", withdrawalID).First(&out)
	return &out, res.Error
}

func (r *WithdrawalRepository) GetByWithdrawalIDForUpdate(ctx context.Context, withdrawalID string) (*withdrawalDomain.WithdrawalRequest, error) {
	var out withdrawalDomain.WithdrawalRequest
	res := forUpdate(r.db.WithContext(ctx)).Where("withdrawal_id = ?", withdrawalID).First(&out)
	return &out, res.Error
}

func (r *WithdrawalRepository) GetPendingByInvestment(ctx context.Context, investmentID uint64) (*withdrawalDomain.WithdrawalRequest, error) {
	var out withdrawalDomain.WithdrawalRequest
	res := forUpdate(r.db.WithContext(ctx)).
		Where("investment_id = ? AND status = ?", investmentID, withdrawalDomain.StatusPending).
		Order("created_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *WithdrawalRepository) ListByInvestor(ctx context.Context, investorID uint64) ([]withdrawalDomain.WithdrawalRequest, error) {
	var out []withdrawalDomain.WithdrawalRequest
	res := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status withdrawalDomain.Status) ([]withdrawalDomain.WithdrawalRequest, error) {
	var out []withdrawalDomain.WithdrawalRequest
	res := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
