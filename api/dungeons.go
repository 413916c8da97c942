package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/auth"
	"github.com/kaiyue77/arkledger/domain"
)

// CreateDungeon creates a dungeon definition.
// POST /v1/dungeons
func (h *Handler) CreateDungeon(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	var req domain.CreateDungeonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	dungeon, err := h.service.CreateDungeon(c.Request().Context(), user.UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dungeon)
}

// ListDungeons retrieves the caller's dungeon definitions.
// GET /v1/dungeons
func (h *Handler) ListDungeons(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	dungeons, err := h.service.ListDungeons(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if dungeons == nil {
		dungeons = []domain.Dungeon{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":    len(dungeons),
		"dungeons": dungeons,
	})
}

// GetDungeon retrieves one dungeon definition.
// GET /v1/dungeons/:dungeon_id
func (h *Handler) GetDungeon(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	dungeon, err := h.service.GetDungeon(c.Request().Context(), user.UserID, c.Param("dungeon_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dungeon)
}

// UpdateDungeon replaces a dungeon definition.
// PUT /v1/dungeons/:dungeon_id
func (h *Handler) UpdateDungeon(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	var req domain.CreateDungeonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	dungeon, err := h.service.UpdateDungeon(c.Request().Context(), user.UserID, c.Param("dungeon_id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dungeon)
}

// DeleteDungeon deletes a dungeon definition.
// DELETE /v1/dungeons/:dungeon_id
func (h *Handler) DeleteDungeon(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	if err := h.service.DeleteDungeon(c.Request().Context(), user.UserID, c.Param("dungeon_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
