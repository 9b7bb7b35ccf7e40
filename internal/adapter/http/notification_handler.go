package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	investorDomain "microfinance-backoffice/internal/domain/investor"
	notificationDomain "microfinance-backoffice/internal/domain/notification"
)

// NotificationHandler serves per-investor notification feeds. It is thin
// enough to sit directly on the repositories.
type NotificationHandler struct {
	notifications notificationDomain.Repository
	investors     investorDomain.Repository
}

func NewNotificationHandler(notifications notificationDomain.Repository, investors investorDomain.Repository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, investors: investors}
}

func (h *NotificationHandler) owner(c echo.Context) (*investorDomain.Investor, error) {
	inv, err := h.investors.GetByInvestorID(c.Request().Context(), c.Param("investor_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investorDomain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (h *NotificationHandler) List(c echo.Context) error {
	inv, err := h.owner(c)
	if err != nil {
		return writeErr(c, err)
	}
	out, err := h.notifications.ListByInvestor(c.Request().Context(), inv.ID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	inv, err := h.owner(c)
	if err != nil {
		return writeErr(c, err)
	}
	id, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification id"})
	}
	if err := h.notifications.MarkRead(c.Request().Context(), id, inv.ID); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	inv, err := h.owner(c)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.notifications.MarkAllRead(c.Request().Context(), inv.ID); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
