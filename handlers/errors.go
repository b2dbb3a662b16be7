package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/services"
)

// serviceError maps the service error taxonomy onto HTTP responses. Partial
// cascades return the per-step summary so the caller can re-issue the same
// idempotent call; anything unrecognized is treated as a transient store
// failure worth retrying.
func serviceError(c echo.Context, err error, fallback string) error {
	var cascade *services.PartialCascadeError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidRange), errors.Is(err, services.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrSaleClosed):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &cascade):
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": cascade.Error(),
			"steps": cascade.Summary(),
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}
