package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"kb-assessor/models"
)

// ErrorResponse is the uniform failure payload for every endpoint.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// NewHTTPErrorHandler maps the service-level error categories onto HTTP
// statuses. Anything unrecognized is a 500; detailed messages are mirrored
// to the log only when the operator enables it.
func NewHTTPErrorHandler(logErrors bool, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()

		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
		case errors.Is(err, models.ErrArticleNotFound),
			errors.Is(err, models.ErrNoCompletedAssessment):
			status = http.StatusNotFound
		case errors.Is(err, models.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, models.ErrUpstreamRequest):
			status = http.StatusBadGateway
		case errors.Is(err, models.ErrModelOutput):
			status = http.StatusUnprocessableEntity
		}

		if logErrors {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"error", err)
		}

		if jsonErr := c.JSON(status, ErrorResponse{Error: message, Status: "error"}); jsonErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", jsonErr)
		}
	}
}
