package mysql

import (
	"context"

	"microfinance-backoffice/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Investors:     &InvestorRepository{db: tx},
			Investments:   &InvestmentRepository{db: tx},
			Loans:         &LoanRepository{db: tx},
			Repayments:    &RepaymentRepository{db: tx},
			Withdrawals:   &WithdrawalRepository{db: tx},
			Notifications: &NotificationRepository{db: tx},
		}
		return fn(r)
	})
}
