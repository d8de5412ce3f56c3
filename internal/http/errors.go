package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	dto "task-store.com/task-store/internal/data_models"
	apperrors "task-store.com/task-store/internal/errors"
)

// ErrorHandler is the single place where errors become HTTP responses.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := apperrors.StatusCode(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		}

		if code >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
			message = http.StatusText(http.StatusInternalServerError)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, dto.MessageResponse{Message: message})
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
