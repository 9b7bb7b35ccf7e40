package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "microfinance-backoffice/internal/domain/investment"
	investorDomain "microfinance-backoffice/internal/domain/investor"
	"microfinance-backoffice/internal/domain/uow"
	"microfinance-backoffice/internal/testutil/investmentmock"
	"microfinance-backoffice/internal/testutil/investormock"
	"microfinance-backoffice/internal/testutil/notificationmock"
	"microfinance-backoffice/internal/testutil/uowmock"
	uc "microfinance-backoffice/internal/usecase/investment"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func newInvestmentHandler(investments *investmentmock.Repo, investors *investormock.Repo) *InvestmentHandler {
	tx := &uowmock.UoW{Repos: uow.Repos{
		Investors:     investors,
		Investments:   investments,
		Notifications: &notificationmock.Repo{},
	}}
	return NewInvestmentHandler(uc.NewUsecase(investments, investors, tx, &notificationmock.Publisher{}))
}

func TestCreateInvestment_Success(t *testing.T) {
	e := newEchoWithValidator()

	investors := &investormock.Repo{
		GetByInvestorIDFn: func(ctx context.Context, publicID string) (*investorDomain.Investor, error) {
			return &investorDomain.Investor{
				ID:             7,
				InvestorID:     publicID,
				EmailConfirmed: true,
				IsApproved:     true,
			}, nil
		},
	}
	h := newInvestmentHandler(&investmentmock.Repo{}, investors)

	reqBody := map[string]any{
		"investor_id":     strings.Repeat("a", 32),
		"amount":          150,
		"duration_months": 12,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/investments", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	var got uc.InvestmentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Rate != 13 || got.Status != string(domain.StatusPending) {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestCreateInvestment_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := newInvestmentHandler(&investmentmock.Repo{}, &investormock.Repo{})

	reqBody := map[string]any{
		"investor_id":     "NOT_HEX",
		"amount":          150.009,
		"duration_months": 15,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/investments", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(er.Details, "InvestorID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Amount", "at most 2 decimal places") {
		t.Fatalf("missing dec2 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "DurationMonths", "less than or equal to 12") {
		t.Fatalf("missing lte detail: %+v", er.Details)
	}
}

func TestCreateInvestment_BelowBracket(t *testing.T) {
	e := newEchoWithValidator()
	investors := &investormock.Repo{
		GetByInvestorIDFn: func(ctx context.Context, publicID string) (*investorDomain.Investor, error) {
			return &investorDomain.Investor{ID: 7, EmailConfirmed: true, IsApproved: true}, nil
		},
	}
	h := newInvestmentHandler(&investmentmock.Repo{}, investors)

	reqBody := map[string]any{
		"investor_id":     strings.Repeat("a", 32),
		"amount":          27,
		"duration_months": 6,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/investments", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestApproveInvestment_RoleFromHeader(t *testing.T) {
	e := echo.New()

	inv := &domain.Investment{
		InvestmentID: strings.Repeat("b", 32),
		InvestorID:   7,
		Status:       domain.StatusPending,
	}
	investments := &investmentmock.Repo{
		GetByInvestmentIDForUpdateFn: func(ctx context.Context, publicID string) (*domain.Investment, error) {
			return inv, nil
		},
		SaveFn: func(ctx context.Context, _ *domain.Investment) error { return nil },
	}
	h := newInvestmentHandler(investments, &investormock.Repo{})

	// Default role is investor: forbidden transition → 409.
	req := httptest.NewRequest(stdhttp.MethodPost, "/admin/investments/x/approve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("investment_id")
	c.SetParamValues(inv.InvestmentID)

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409 for investor role", rec.Code)
	}

	// Admin header approves.
	req = httptest.NewRequest(stdhttp.MethodPost, "/admin/investments/x/approve", nil)
	req.Header.Set(roleHeader, "admin")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("investment_id")
	c.SetParamValues(inv.InvestmentID)

	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if inv.Status != domain.StatusApproved {
		t.Fatalf("status = %s", inv.Status)
	}
}

func TestGetInvestment_NotFound(t *testing.T) {
	e := echo.New()
	investments := &investmentmock.Repo{
		GetByInvestmentIDFn: func(ctx context.Context, publicID string) (*domain.Investment, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := newInvestmentHandler(investments, &investormock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/investments/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("investment_id")
	c.SetParamValues(strings.Repeat("e", 32))

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
