package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/auth"
	"github.com/kaiyue77/arkledger/domain"
	"github.com/kaiyue77/arkledger/store"
)

// CreateCharacter creates a character.
// POST /v1/characters
func (h *Handler) CreateCharacter(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	var req domain.CreateCharacterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	character, err := h.service.CreateCharacter(c.Request().Context(), user.UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, character)
}

// ListCharacters retrieves a page of the caller's characters, item level
// descending.
// GET /v1/characters?game_account_id=&min_item_level=&page=&limit=
func (h *Handler) ListCharacters(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	filter := store.CharacterFilter{
		GameAccountID: c.QueryParam("game_account_id"),
	}
	if v := c.QueryParam("min_item_level"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinItemLevel = n
		}
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	page, err := h.service.ListCharacters(c.Request().Context(), user.UserID, filter)
	if err != nil {
		return respondError(c, err)
	}
	if page.Characters == nil {
		page.Characters = []domain.Character{}
	}
	return c.JSON(http.StatusOK, page)
}

// GetCharacter retrieves one character.
// GET /v1/characters/:character_id
func (h *Handler) GetCharacter(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	character, err := h.service.GetCharacter(c.Request().Context(), user.UserID, c.Param("character_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, character)
}

// UpdateCharacter updates a character.
// PUT /v1/characters/:character_id
func (h *Handler) UpdateCharacter(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	var req domain.UpdateCharacterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	character, err := h.service.UpdateCharacter(c.Request().Context(), user.UserID, c.Param("character_id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, character)
}

// DeleteCharacter deletes a character.
// DELETE /v1/characters/:character_id
func (h *Handler) DeleteCharacter(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	if err := h.service.DeleteCharacter(c.Request().Context(), user.UserID, c.Param("character_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
