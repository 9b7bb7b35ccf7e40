package mysql

import (
	"context"
	"errors"
	"testing"

	domain "microfinance-backoffice/internal/domain/withdrawal"
	"microfinance-backoffice/pkg/id"

	"gorm.io/gorm"
)

func makeWithdrawal(investmentID, investorID uint64, status domain.Status) *domain.WithdrawalRequest {
	return &domain.WithdrawalRequest{
		WithdrawalID: id.NewID32(),
		InvestmentID: investmentID,
		InvestorID:   investorID,
		Amount:       650.18,
		Status:       status,
	}
}

func TestWithdrawalGetPendingByInvestment(t *testing.T) {
	db := openTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	rejected := makeWithdrawal(31, 7, domain.StatusRejected)
	pending := makeWithdrawal(31, 7, domain.StatusPending)
	otherInvestment := makeWithdrawal(32, 7, domain.StatusPending)
	for _, w := range []*domain.WithdrawalRequest{rejected, pending, otherInvestment} {
		if err := repo.Create(ctx, w); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.GetPendingByInvestment(ctx, 31)
	if err != nil {
		t.Fatalf("GetPendingByInvestment: %v", err)
	}
	if got.WithdrawalID != pending.WithdrawalID {
		t.Fatalf("unexpected request: %+v", got)
	}

	// An investment whose only request is settled has no pending request.
	if _, err := repo.GetPendingByInvestment(ctx, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestWithdrawalSaveAndListByStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	w := makeWithdrawal(31, 7, domain.StatusPending)
	if err := repo.Create(ctx, w); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w.Status = domain.StatusPaid
	w.ProofOfPaymentRef = "proofs/payout-31.pdf"
	if err := repo.Save(ctx, w); err != nil {
		t.Fatalf("Save: %v", err)
	}

	paid, err := repo.ListByStatus(ctx, domain.StatusPaid)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(paid) != 1 || paid[0].ProofOfPaymentRef != "proofs/payout-31.pdf" {
		t.Fatalf("unexpected list: %+v", paid)
	}

	got, err := repo.GetByWithdrawalIDForUpdate(ctx, w.WithdrawalID)
	if err != nil {
		t.Fatalf("GetByWithdrawalIDForUpdate: %v", err)
	}
	if got.Status != domain.StatusPaid {
		t.Fatalf("unexpected request: %+v", got)
	}
}
