package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/auth"
	"github.com/kaiyue77/arkledger/domain"
)

// CreateGameAccount creates a game account.
// POST /v1/accounts
func (h *Handler) CreateGameAccount(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	var req domain.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	account, err := h.service.CreateGameAccount(c.Request().Context(), user.UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, account)
}

// ListGameAccounts retrieves the caller's game accounts.
// GET /v1/accounts
func (h *Handler) ListGameAccounts(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	accounts, err := h.service.ListGameAccounts(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if accounts == nil {
		accounts = []domain.GameAccount{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":    len(accounts),
		"accounts": accounts,
	})
}

// GetGameAccount retrieves one game account.
// GET /v1/accounts/:account_id
func (h *Handler) GetGameAccount(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	account, err := h.service.GetGameAccount(c.Request().Context(), user.UserID, c.Param("account_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateGameAccount updates a game account.
// PUT /v1/accounts/:account_id
func (h *Handler) UpdateGameAccount(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	var req domain.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	account, err := h.service.UpdateGameAccount(c.Request().Context(), user.UserID, c.Param("account_id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteGameAccount deletes a game account.
// DELETE /v1/accounts/:account_id
func (h *Handler) DeleteGameAccount(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	if err := h.service.DeleteGameAccount(c.Request().Context(), user.UserID, c.Param("account_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
