package notificationmock

import (
	"context"

	domain "microfinance-backoffice/internal/domain/notification"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, n *domain.Notification) error
	ListByInvestorFn func(ctx context.Context, investorID uint64) ([]domain.Notification, error)
	MarkReadFn       func(ctx context.Context, id, investorID uint64) error
	MarkAllReadFn    func(ctx context.Context, investorID uint64) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) ListByInvestor(ctx context.Context, investorID uint64) ([]domain.Notification, error) {
	if m.ListByInvestorFn != nil {
		return m.ListByInvestorFn(ctx, investorID)
	}
	return nil, context.Canceled
}

func (m *Repo) MarkRead(ctx context.Context, id, investorID uint64) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, id, investorID)
	}
	return nil
}

func (m *Repo) MarkAllRead(ctx context.Context, investorID uint64) error {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, investorID)
	}
	return nil
}

// Publisher is a function-backed mock for domain.Publisher. Unset, it
// records nothing and reports success so transition tests stay quiet.
type Publisher struct {
	PublishFn func(ctx context.Context, routingKey string, ev domain.Event) error

	Published []domain.Event
}

var _ domain.Publisher = (*Publisher)(nil)

func (p *Publisher) Publish(ctx context.Context, routingKey string, ev domain.Event) error {
	if p.PublishFn != nil {
		return p.PublishFn(ctx, routingKey, ev)
	}
	p.Published = append(p.Published, ev)
	return nil
}
