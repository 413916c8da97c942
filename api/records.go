package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/auth"
	"github.com/kaiyue77/arkledger/domain"
)

// CreateRecord creates a run record.
// POST /v1/records
func (h *Handler) CreateRecord(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	var req domain.CreateRecordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	record, err := h.service.CreateRecord(c.Request().Context(), user.UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

// ListRecords retrieves a character's run records, newest first.
// GET /v1/records/:character_id
func (h *Handler) ListRecords(c echo.Context) error {
	user := auth.PrincipalFrom(c)
	characterID := c.Param("character_id")

	records, err := h.service.ListRecords(c.Request().Context(), user.UserID, characterID)
	if err != nil {
		return respondError(c, err)
	}
	if records == nil {
		records = []domain.RunRecord{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// CompletedDungeons retrieves the distinct dungeon ids a character has
// records for.
// GET /v1/records/:character_id/completed
func (h *Handler) CompletedDungeons(c echo.Context) error {
	user := auth.PrincipalFrom(c)
	characterID := c.Param("character_id")

	ids, err := h.service.CompletedDungeons(c.Request().Context(), user.UserID, characterID)
	if err != nil {
		return respondError(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"dungeons": ids})
}

// RecordStats sums a character's stored rewards.
// GET /v1/records/:character_id/stats
func (h *Handler) RecordStats(c echo.Context) error {
	user := auth.PrincipalFrom(c)
	characterID := c.Param("character_id")

	stats, err := h.service.RecordStats(c.Request().Context(), user.UserID, characterID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// UpdateRecord replaces a record's mutable state and recomputes rewards.
// PUT /v1/records/:record_id
func (h *Handler) UpdateRecord(c echo.Context) error {
	user := auth.PrincipalFrom(c)
	recordID := c.Param("record_id")

	var req domain.UpdateRecordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	record, err := h.service.UpdateRecord(c.Request().Context(), user.UserID, recordID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// DeleteRecord deletes a run record.
// DELETE /v1/records/:record_id
func (h *Handler) DeleteRecord(c echo.Context) error {
	user := auth.PrincipalFrom(c)
	recordID := c.Param("record_id")

	if err := h.service.DeleteRecord(c.Request().Context(), user.UserID, recordID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
