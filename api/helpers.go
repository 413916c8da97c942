package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaiyue77/arkledger/domain"
)

// respondError maps the domain error taxonomy to HTTP statuses.
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrResetInProgress):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
