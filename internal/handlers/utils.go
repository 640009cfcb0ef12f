package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bucketview/internal/logger"
)

// okResponse is the body for mutations that have no payload to return
type okResponse struct {
	OK  bool   `json:"ok"`
	Key string `json:"key,omitempty"`
}

// storeError logs the provider failure and surfaces an opaque message to
// the caller. No retry, no backoff; the user re-invokes the action.
func storeError(c echo.Context, msg string, err error) error {
	logger.Log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("uri", c.Request().RequestURI).
		Msg(msg)
	return echo.NewHTTPError(http.StatusInternalServerError, msg)
}

// validationError rejects malformed input before any store call is made
func validationError(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
