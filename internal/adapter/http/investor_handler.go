package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microfinance-backoffice/internal/usecase/investor"
)

type InvestorHandler struct{ uc *investor.Usecase }

func NewInvestorHandler(uc *investor.Usecase) *InvestorHandler {
	return &InvestorHandler{uc: uc}
}

type registerReq struct {
	FirstName         string `json:"first_name" validate:"required"`
	Surname           string `json:"surname"    validate:"required"`
	Username          string `json:"username"   validate:"required"`
	Email             string `json:"email"      validate:"required,email"`
	Password          string `json:"password"   validate:"required,min=8"`
	Phone             string `json:"phone"`
	IDNumber          string `json:"id_number"`
	Address           string `json:"address"`
	NextOfKin         string `json:"next_of_kin"`
	KinPhone          string `json:"kin_phone"`
	ResidenceProofRef string `json:"residence_proof_ref"`
	IDDocumentRef     string `json:"id_document_ref"`
	FacePhotoRef      string `json:"face_photo_ref"`
}

func (h *InvestorHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), investor.RegisterInput(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type tokenReq struct {
	Token string `json:"token" validate:"required"`
}

func (h *InvestorHandler) ConfirmEmail(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.ConfirmEmail(c.Request().Context(), req.Token)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type emailReq struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *InvestorHandler) ResendConfirmation(c echo.Context) error {
	var req emailReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.ResendConfirmation(c.Request().Context(), req.Email); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InvestorHandler) RequestPasswordReset(c echo.Context) error {
	var req emailReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeErr(c, err)
	}
	// Always 204: the endpoint must not reveal which emails exist.
	return c.NoContent(http.StatusNoContent)
}

type resetPasswordReq struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *InvestorHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InvestorHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("investor_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvestorHandler) Reject(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("investor_id"), roleFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvestorHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
