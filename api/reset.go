package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/auth"
	"github.com/kaiyue77/arkledger/domain"
)

// WeeklyReset archives the caller's active run records into history.
// POST /v1/reset
func (h *Handler) WeeklyReset(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	count, err := h.service.WeeklyReset(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, domain.ResetResponse{Count: count})
}
