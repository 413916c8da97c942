package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/auth"
	"github.com/kaiyue77/arkledger/domain"
)

// Statistics aggregates the caller's activity.
// GET /v1/statistics?game_account_id=&record_type=&start_date=&end_date=
func (h *Handler) Statistics(c echo.Context) error {
	user := auth.PrincipalFrom(c)

	q := domain.StatsQuery{
		GameAccountID: c.QueryParam("game_account_id"),
		RecordType:    c.QueryParam("record_type"),
	}

	if v := c.QueryParam("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return badRequest(c, "invalid start_date")
		}
		q.Start = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return badRequest(c, "invalid end_date")
		}
		// A bare date as the end of the window means end of that day.
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		q.End = &t
	}

	stats, err := h.service.Statistics(c.Request().Context(), user.UserID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
