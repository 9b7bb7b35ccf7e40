package uowmock

import (
	"context"

	"microfinance-backoffice/internal/domain/uow"
)

// UoW runs the transactional closure against a fixed set of repositories
// with no real transaction around it. Tests provide mock repos in Repos.
type UoW struct {
	Repos      uow.Repos
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

var _ uow.UnitOfWork = (*UoW)(nil)

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if u.WithinTxFn != nil {
		return u.WithinTxFn(ctx, fn)
	}
	return fn(u.Repos)
}
