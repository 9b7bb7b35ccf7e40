package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"microfinance-backoffice/internal/domain/actor"
	investmentDomain "microfinance-backoffice/internal/domain/investment"
	investorDomain "microfinance-backoffice/internal/domain/investor"
	loanDomain "microfinance-backoffice/internal/domain/loan"
	notificationDomain "microfinance-backoffice/internal/domain/notification"
	repaymentDomain "microfinance-backoffice/internal/domain/repayment"
	withdrawalDomain "microfinance-backoffice/internal/domain/withdrawal"
	"microfinance-backoffice/internal/finance"
	investorUC "microfinance-backoffice/internal/usecase/investor"
	loanUC "microfinance-backoffice/internal/usecase/loan"
)

// roleHeader carries the caller's role; the gateway in front of this service
// authenticates and sets it.
const roleHeader = "X-Actor-Role"

func roleFrom(c echo.Context) actor.Role {
	switch c.Request().Header.Get(roleHeader) {
	case string(actor.RoleAdmin):
		return actor.RoleAdmin
	case string(actor.RoleSuperAdmin):
		return actor.RoleSuperAdmin
	default:
		return actor.RoleInvestor
	}
}

// statusFor maps domain errors to HTTP codes. Unknown errors are 500s.
func statusFor(err error) int {
	switch {
	case errors.Is(err, investorDomain.ErrNotFound),
		errors.Is(err, investmentDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, repaymentDomain.ErrNotFound),
		errors.Is(err, withdrawalDomain.ErrNotFound),
		errors.Is(err, notificationDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, investorDomain.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, investmentDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, repaymentDomain.ErrInvalidTransition),
		errors.Is(err, repaymentDomain.ErrAlreadyApproved),
		errors.Is(err, withdrawalDomain.ErrInvalidTransition),
		errors.Is(err, withdrawalDomain.ErrDuplicatePending),
		errors.Is(err, withdrawalDomain.ErrOutsideWindow),
		errors.Is(err, withdrawalDomain.ErrNotMatured),
		errors.Is(err, loanUC.ErrOutsideWindow),
		errors.Is(err, investorUC.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, finance.ErrNoApplicableRate),
		errors.Is(err, finance.ErrInvalidInput),
		errors.Is(err, investorUC.ErrInvalidInput),
		errors.Is(err, investorDomain.ErrBadToken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
