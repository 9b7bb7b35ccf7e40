package mysql

import (
	"context"

	notificationDomain "microfinance-backoffice/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notificationDomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByInvestor(ctx context.Context, investorID uint64) ([]notificationDomain.Notification, error) {
	var out []notificationDomain.Notification
	res := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, investorID uint64) error {
	res := r.db.WithContext(ctx).
		Model(&notificationDomain.Notification{}).
		Where("id = ? AND investor_id = ?", id, investorID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notificationDomain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, investorID uint64) error {
	return r.db.WithContext(ctx).
		Model(&notificationDomain.Notification{}).
		Where("investor_id = ? AND `read` = ?", investorID, false).
		Update("read", true).Error
}
