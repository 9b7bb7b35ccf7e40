package notification

import (
	"context"
	"errors"
	"log"
	"time"
)

var ErrNotFound = errors.New("notification not found")

// Notification is a persisted per-investor message created alongside admin
// decisions. Delivery over the event bus is best-effort and separate.
type Notification struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"id"`
	InvestorID uint64    `gorm:"column:investor_id;index:idx_notifications_investor" json:"investor_id"`
	Message    string    `gorm:"size:255" json:"message"`
	Read       bool      `gorm:"default:false" json:"read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByInvestor(ctx context.Context, investorID uint64) ([]Notification, error)
	MarkRead(ctx context.Context, id, investorID uint64) error
	MarkAllRead(ctx context.Context, investorID uint64) error
}

// Event is published to the notification exchange when a lifecycle decision
// lands. Publishing is best-effort: a broker failure never fails the
// transition that produced the event.
type Event struct {
	InvestorID uint64    `json:"investor_id"`
	Kind       string    `json:"kind"`
	EntityID   string    `json:"entity_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is the outbound port; the AMQP producer implements it.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, ev Event) error
}

// BestEffort publishes ev and only logs on failure. Transitions must not
// fail because the broker is down.
func BestEffort(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev.Kind, ev); err != nil {
		log.Printf("notify: publish %s: %v", ev.Kind, err)
	}
}
