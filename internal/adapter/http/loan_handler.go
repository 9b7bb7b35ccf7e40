package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type submitLoanReq struct {
	InvestorID string  `json:"investor_id" validate:"required,hex32"`
	Amount     float64 `json:"amount"      validate:"required,gte=1,dec2"`
	Purpose    string  `json:"purpose"     validate:"required"`
}

func (h *LoanHandler) Submit(c echo.Context) error {
	var req submitLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), loan.SubmitInput{
		InvestorID: req.InvestorID,
		Amount:     req.Amount,
		Purpose:    req.Purpose,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListByInvestor(c echo.Context) error {
	out, err := h.uc.ListByInvestor(c.Request().Context(), c.Param("investor_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListByStatus(c.Request().Context(), loanDomain.StatusPending)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Reject(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type submitRepaymentReq struct {
	InvestorID string `json:"investor_id" validate:"required,hex32"`
	ProofRef   string `json:"proof_ref"   validate:"required"`
	Method     string `json:"method"`
}

func (h *LoanHandler) SubmitRepayment(c echo.Context) error {
	var req submitRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.SubmitRepayment(c.Request().Context(), loan.SubmitRepaymentInput{
		LoanID:     c.Param("loan_id"),
		InvestorID: req.InvestorID,
		ProofRef:   req.ProofRef,
		Method:     req.Method,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type approveRepaymentsReq struct {
	RepaymentIDs []string `json:"repayment_ids" validate:"required,min=1,dive,hex32"`
}

func (h *LoanHandler) ApproveRepayments(c echo.Context) error {
	var req approveRepaymentsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.ApproveRepayments(c.Request().Context(), req.RepaymentIDs, roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) RejectRepayment(c echo.Context) error {
	dto, err := h.uc.RejectRepayment(c.Request().Context(), c.Param("repayment_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListPendingRepayments(c echo.Context) error {
	out, err := h.uc.ListPendingRepayments(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListRepaymentsByInvestor(c echo.Context) error {
	out, err := h.uc.ListRepaymentsByInvestor(c.Request().Context(), c.Param("investor_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
