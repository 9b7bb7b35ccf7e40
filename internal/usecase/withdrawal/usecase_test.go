package withdrawal

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/domain/actor"
	domainInvestment "microfinance-backoffice/internal/domain/investment"
	domainInvestor "microfinance-backoffice/internal/domain/investor"
	"microfinance-backoffice/internal/domain/uow"
	domainWithdrawal "microfinance-backoffice/internal/domain/withdrawal"
	"microfinance-backoffice/internal/testutil/investmentmock"
	"microfinance-backoffice/internal/testutil/investormock"
	"microfinance-backoffice/internal/testutil/notificationmock"
	"microfinance-backoffice/internal/testutil/uowmock"
	"microfinance-backoffice/internal/testutil/withdrawalmock"
)

// inWindow is the 28th, maturedApproval a year and change earlier.
var (
	inWindow        = time.Date(2025, time.July, 28, 10, 0, 0, 0, time.UTC)
	outsideWindow   = time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)
	maturedApproval = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
)

func testInvestor() *domainInvestor.Investor {
	return &domainInvestor.Investor{
		ID:             7,
		InvestorID:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Email:          "jo@example.com",
		EmailConfirmed: true,
		IsApproved:     true,
	}
}

func approvedInvestment() *domainInvestment.Investment {
	at := maturedApproval
	return &domainInvestment.Investment{
		ID:             31,
		InvestmentID:   "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		InvestorID:     7,
		Amount:         150,
		DurationMonths: 12,
		Rate:           13,
		Status:         domainInvestment.StatusApproved,
		ApprovedAt:     &at,
	}
}

func newRequestFixture(t *testing.T, inv *domainInvestment.Investment, pending *domainWithdrawal.WithdrawalRequest) (*Usecase, *withdrawalmock.Repo) {
	t.Helper()

	investors := &investormock.Repo{
		GetByInvestorIDFn: func(ctx context.Context, publicID string) (*domainInvestor.Investor, error) {
			owner := testInvestor()
			if publicID != owner.InvestorID {
				return nil, gorm.ErrRecordNotFound
			}
			return owner, nil
		},
	}
	investments := &investmentmock.Repo{
		GetByInvestmentIDForUpdateFn: func(ctx context.Context, publicID string) (*domainInvestment.Investment, error) {
			if inv == nil || publicID != inv.InvestmentID {
				return nil, gorm.ErrRecordNotFound
			}
			return inv, nil
		},
		SaveFn: func(ctx context.Context, _ *domainInvestment.Investment) error { return nil },
	}
	withdrawals := &withdrawalmock.Repo{
		GetPendingByInvestmentFn: func(ctx context.Context, investmentID uint64) (*domainWithdrawal.WithdrawalRequest, error) {
			if pending != nil && pending.InvestmentID == investmentID {
				return pending, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	tx := &uowmock.UoW{Repos: uow.Repos{
		Investors:     investors,
		Investments:   investments,
		Withdrawals:   withdrawals,
		Notifications: &notificationmock.Repo{},
	}}
	u := NewUsecase(withdrawals, investors, tx, &notificationmock.Publisher{})
	u.now = func() time.Time { return inWindow }
	return u, withdrawals
}

func TestRequest_CreatesPendingAndFlipsInvestment(t *testing.T) {
	inv := approvedInvestment()
	u, withdrawals := newRequestFixture(t, inv, nil)

	var created *domainWithdrawal.WithdrawalRequest
	withdrawals.CreateFn = func(ctx context.Context, w *domainWithdrawal.WithdrawalRequest) error {
		created = w
		return nil
	}

	dto, err := u.Request(context.Background(), inv.InvestmentID, testInvestor().InvestorID)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if created == nil {
		t.Fatal("expected a withdrawal row to be created")
	}
	if created.Status != domainWithdrawal.StatusPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}
	if got, want := created.Amount, inv.ProjectedValue(); got != want {
		t.Fatalf("amount = %.2f, want projected value %.2f", got, want)
	}
	if inv.Status != domainInvestment.StatusWithdrawalRequested {
		t.Fatalf("investment status = %s, want withdrawal_requested", inv.Status)
	}
	if dto.WithdrawalID == "" {
		t.Fatal("dto missing withdrawal id")
	}
}

func TestRequest_PendingInvestmentIsInvalidTransition(t *testing.T) {
	inv := approvedInvestment()
	inv.Status = domainInvestment.StatusPending
	inv.ApprovedAt = nil
	u, _ := newRequestFixture(t, inv, nil)

	// Status is checked before the window gate, so even outside the window a
	// pending investment reports the transition error.
	u.now = func() time.Time { return outsideWindow }

	_, err := u.Request(context.Background(), inv.InvestmentID, testInvestor().InvestorID)
	if !errors.Is(err, domainInvestment.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestRequest_OutsideWindow(t *testing.T) {
	inv := approvedInvestment()
	u, _ := newRequestFixture(t, inv, nil)
	u.now = func() time.Time { return outsideWindow }

	_, err := u.Request(context.Background(), inv.InvestmentID, testInvestor().InvestorID)
	if !errors.Is(err, domainWithdrawal.ErrOutsideWindow) {
		t.Fatalf("err = %v, want ErrOutsideWindow", err)
	}
}

func TestRequest_NotMatured(t *testing.T) {
	inv := approvedInvestment()
	at := inWindow.AddDate(0, -3, 0) // 12-month term, only 3 months in
	inv.ApprovedAt = &at
	u, _ := newRequestFixture(t, inv, nil)

	_, err := u.Request(context.Background(), inv.InvestmentID, testInvestor().InvestorID)
	if !errors.Is(err, domainWithdrawal.ErrNotMatured) {
		t.Fatalf("err = %v, want ErrNotMatured", err)
	}
}

func TestRequest_DuplicatePending(t *testing.T) {
	inv := approvedInvestment()
	pending := &domainWithdrawal.WithdrawalRequest{
		WithdrawalID: "cccccccccccccccccccccccccccccccc",
		InvestmentID: inv.ID,
		InvestorID:   inv.InvestorID,
		Status:       domainWithdrawal.StatusPending,
	}
	u, _ := newRequestFixture(t, inv, pending)

	_, err := u.Request(context.Background(), inv.InvestmentID, testInvestor().InvestorID)
	if !errors.Is(err, domainWithdrawal.ErrDuplicatePending) {
		t.Fatalf("err = %v, want ErrDuplicatePending", err)
	}
}

func TestRequest_OtherInvestorsInvestmentNotFound(t *testing.T) {
	inv := approvedInvestment()
	inv.InvestorID = 99
	u, _ := newRequestFixture(t, inv, nil)

	_, err := u.Request(context.Background(), inv.InvestmentID, testInvestor().InvestorID)
	if !errors.Is(err, domainInvestment.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func newSettleFixture(t *testing.T, w *domainWithdrawal.WithdrawalRequest, inv *domainInvestment.Investment) *Usecase {
	t.Helper()

	investments := &investmentmock.Repo{
		GetByInternalIDForUpdateFn: func(ctx context.Context, internalID uint64) (*domainInvestment.Investment, error) {
			if inv == nil || internalID != inv.ID {
				return nil, gorm.ErrRecordNotFound
			}
			return inv, nil
		},
		SaveFn: func(ctx context.Context, _ *domainInvestment.Investment) error { return nil },
	}
	withdrawals := &withdrawalmock.Repo{
		GetByWithdrawalIDForUpdateFn: func(ctx context.Context, publicID string) (*domainWithdrawal.WithdrawalRequest, error) {
			if w == nil || publicID != w.WithdrawalID {
				return nil, gorm.ErrRecordNotFound
			}
			return w, nil
		},
		SaveFn: func(ctx context.Context, _ *domainWithdrawal.WithdrawalRequest) error { return nil },
	}
	investors := &investormock.Repo{
		GetByInvestorIDFn: func(ctx context.Context, publicID string) (*domainInvestor.Investor, error) {
			owner := testInvestor()
			if publicID != owner.InvestorID {
				return nil, gorm.ErrRecordNotFound
			}
			return owner, nil
		},
	}
	tx := &uowmock.UoW{Repos: uow.Repos{
		Investors:     investors,
		Investments:   investments,
		Withdrawals:   withdrawals,
		Notifications: &notificationmock.Repo{},
	}}
	u := NewUsecase(withdrawals, investors, tx, &notificationmock.Publisher{})
	u.now = func() time.Time { return inWindow }
	return u
}

func TestPay_SettlesRequestAndInvestment(t *testing.T) {
	inv := approvedInvestment()
	inv.Status = domainInvestment.StatusWithdrawalRequested
	w := &domainWithdrawal.WithdrawalRequest{
		WithdrawalID: "cccccccccccccccccccccccccccccccc",
		InvestmentID: inv.ID,
		InvestorID:   inv.InvestorID,
		Amount:       inv.ProjectedValue(),
		Status:       domainWithdrawal.StatusPending,
	}
	u := newSettleFixture(t, w, inv)

	dto, err := u.Pay(context.Background(), w.WithdrawalID, actor.RoleAdmin, "proofs/payout-31.pdf")
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if w.Status != domainWithdrawal.StatusPaid {
		t.Fatalf("withdrawal status = %s, want paid", w.Status)
	}
	if w.PaidAt == nil {
		t.Fatal("PaidAt not stamped")
	}
	if inv.Status != domainInvestment.StatusWithdrawn {
		t.Fatalf("investment status = %s, want withdrawn", inv.Status)
	}
	if inv.WithdrawalProofRef != "proofs/payout-31.pdf" {
		t.Fatalf("proof ref = %q", inv.WithdrawalProofRef)
	}
	if dto.Status != string(domainWithdrawal.StatusPaid) {
		t.Fatalf("dto status = %s", dto.Status)
	}
}

func TestPay_InvestorRoleForbidden(t *testing.T) {
	inv := approvedInvestment()
	inv.Status = domainInvestment.StatusWithdrawalRequested
	w := &domainWithdrawal.WithdrawalRequest{
		WithdrawalID: "cccccccccccccccccccccccccccccccc",
		InvestmentID: inv.ID,
		InvestorID:   inv.InvestorID,
		Status:       domainWithdrawal.StatusPending,
	}
	u := newSettleFixture(t, w, inv)

	_, err := u.Pay(context.Background(), w.WithdrawalID, actor.RoleInvestor, "x")
	if !errors.Is(err, domainWithdrawal.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestReject_RevertsInvestmentToApproved(t *testing.T) {
	inv := approvedInvestment()
	inv.Status = domainInvestment.StatusWithdrawalRequested
	w := &domainWithdrawal.WithdrawalRequest{
		WithdrawalID: "cccccccccccccccccccccccccccccccc",
		InvestmentID: inv.ID,
		InvestorID:   inv.InvestorID,
		Status:       domainWithdrawal.StatusPending,
	}
	u := newSettleFixture(t, w, inv)

	dto, err := u.Reject(context.Background(), w.WithdrawalID, actor.RoleAdmin, "bank details missing")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if w.Status != domainWithdrawal.StatusRejected {
		t.Fatalf("withdrawal status = %s, want rejected", w.Status)
	}
	if inv.Status != domainInvestment.StatusApproved {
		t.Fatalf("investment status = %s, want approved again", inv.Status)
	}
	if dto.AdminComment != "bank details missing" {
		t.Fatalf("comment = %q", dto.AdminComment)
	}
}

func TestConfirm_PaidToCompleted(t *testing.T) {
	w := &domainWithdrawal.WithdrawalRequest{
		WithdrawalID: "cccccccccccccccccccccccccccccccc",
		InvestmentID: 31,
		InvestorID:   7,
		Status:       domainWithdrawal.StatusPaid,
	}
	u := newSettleFixture(t, w, nil)

	dto, err := u.Confirm(context.Background(), w.WithdrawalID, testInvestor().InvestorID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if dto.Status != string(domainWithdrawal.StatusCompleted) {
		t.Fatalf("status = %s, want completed", dto.Status)
	}
}

func TestConfirm_OtherInvestorNotFound(t *testing.T) {
	w := &domainWithdrawal.WithdrawalRequest{
		WithdrawalID: "cccccccccccccccccccccccccccccccc",
		InvestmentID: 31,
		InvestorID:   99,
		Status:       domainWithdrawal.StatusPaid,
	}
	u := newSettleFixture(t, w, nil)

	_, err := u.Confirm(context.Background(), w.WithdrawalID, testInvestor().InvestorID)
	if !errors.Is(err, domainWithdrawal.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
