package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microfinance-backoffice/internal/usecase/investment"
)

type InvestmentHandler struct{ uc *investment.Usecase }

func NewInvestmentHandler(uc *investment.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

type createInvestmentReq struct {
	InvestorID     string  `json:"investor_id"          validate:"required,hex32"`
	Amount         float64 `json:"amount"               validate:"required,gte=1,dec2"`
	DurationMonths int     `json:"duration_months"      validate:"required,gte=1,lte=12"`
	ProofRef       string  `json:"proof_of_payment_ref"`
}

func (h *InvestmentHandler) Create(c echo.Context) error {
	var req createInvestmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), investment.CreateInput{
		InvestorID:     req.InvestorID,
		Amount:         req.Amount,
		DurationMonths: req.DurationMonths,
		ProofRef:       req.ProofRef,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvestmentHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("investment_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) ListByInvestor(c echo.Context) error {
	out, err := h.uc.ListByInvestor(c.Request().Context(), c.Param("investor_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InvestmentHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InvestmentHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("investment_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) Reject(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("investment_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) Reapprove(c echo.Context) error {
	dto, err := h.uc.Reapprove(c.Request().Context(), c.Param("investment_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
