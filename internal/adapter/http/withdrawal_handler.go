package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	withdrawalDomain "microfinance-backoffice/internal/domain/withdrawal"
	"microfinance-backoffice/internal/usecase/withdrawal"
)

type WithdrawalHandler struct{ uc *withdrawal.Usecase }

func NewWithdrawalHandler(uc *withdrawal.Usecase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

type requestWithdrawalReq struct {
	InvestmentID string `json:"investment_id" validate:"required,hex32"`
	InvestorID   string `json:"investor_id"   validate:"required,hex32"`
}

func (h *WithdrawalHandler) Request(c echo.Context) error {
	var req requestWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Request(c.Request().Context(), req.InvestmentID, req.InvestorID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type payWithdrawalReq struct {
	ProofRef string `json:"proof_of_payment_ref" validate:"required"`
}

func (h *WithdrawalHandler) Pay(c echo.Context) error {
	var req payWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Pay(c.Request().Context(), c.Param("withdrawal_id"), roleFrom(c), req.ProofRef)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectWithdrawalReq struct {
	Comment string `json:"comment"`
}

func (h *WithdrawalHandler) Reject(c echo.Context) error {
	var req rejectWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("withdrawal_id"), roleFrom(c), req.Comment)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type confirmWithdrawalReq struct {
	InvestorID string `json:"investor_id" validate:"required,hex32"`
}

func (h *WithdrawalHandler) Confirm(c echo.Context) error {
	var req confirmWithdrawalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Confirm(c.Request().Context(), c.Param("withdrawal_id"), req.InvestorID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WithdrawalHandler) ListByInvestor(c echo.Context) error {
	out, err := h.uc.ListByInvestor(c.Request().Context(), c.Param("investor_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WithdrawalHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListByStatus(c.Request().Context(), withdrawalDomain.StatusPending)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
